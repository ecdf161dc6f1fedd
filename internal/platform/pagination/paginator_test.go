package pagination

import (
	"fmt"
	"net/url"
	"strings"
	"testing"
)

type testItem struct {
	ID   string
	Name string
}

func makeTestItems(count int) []testItem {
	items := make([]testItem, count)
	for i := range count {
		items[i] = testItem{
			ID:   fmt.Sprintf("item-%03d", i+1),
			Name: fmt.Sprintf("Item %03d", i+1),
		}
	}
	return items
}

func paginate(items []testItem, cursor Cursor, limit int, query url.Values) Result[testItem] {
	return Paginate(items, cursor, limit, "test",
		func(i testItem) string { return i.ID }, "/items", query)
}

func TestPaginateFirstPage(t *testing.T) {
	result := paginate(makeTestItems(30), Cursor{}, 10, nil)

	if len(result.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(result.Items))
	}
	if result.Total != 30 {
		t.Fatalf("expected total 30, got %d", result.Total)
	}
	if result.Items[0].ID != "item-001" {
		t.Fatalf("expected first item to be item-001, got %s", result.Items[0].ID)
	}
	if result.NextCursor == "" {
		t.Fatal("expected next cursor")
	}
	if result.PrevCursor != "" {
		t.Fatalf("expected no prev cursor, got %s", result.PrevCursor)
	}
}

func TestPaginateMiddlePage(t *testing.T) {
	result := paginate(makeTestItems(30), Cursor{Type: "test", Value: "item-010"}, 10, nil)

	if result.Items[0].ID != "item-011" {
		t.Fatalf("expected first item to be item-011, got %s", result.Items[0].ID)
	}
	if result.NextCursor == "" {
		t.Fatal("expected next cursor")
	}
	if result.PrevCursor == "" {
		t.Fatal("expected prev cursor")
	}

	prev, err := DecodeCursor(result.PrevCursor)
	if err != nil {
		t.Fatalf("decoding prev cursor: %v", err)
	}
	if prev.Value != "" {
		t.Fatalf("expected empty prev value for return to first page, got %s", prev.Value)
	}
}

func TestPaginateLastPage(t *testing.T) {
	result := paginate(makeTestItems(30), Cursor{Type: "test", Value: "item-020"}, 10, nil)

	if result.Items[0].ID != "item-021" {
		t.Fatalf("expected first item to be item-021, got %s", result.Items[0].ID)
	}
	if result.NextCursor != "" {
		t.Fatalf("expected no next cursor, got %s", result.NextCursor)
	}

	prev, err := DecodeCursor(result.PrevCursor)
	if err != nil {
		t.Fatalf("decoding prev cursor: %v", err)
	}
	if prev.Value != "item-010" {
		t.Fatalf("expected prev cursor at item-010, got %s", prev.Value)
	}
}

func TestPaginateEmptyItems(t *testing.T) {
	result := paginate(nil, Cursor{}, 10, nil)

	if len(result.Items) != 0 || result.Total != 0 {
		t.Fatalf("expected empty result, got %d items, total %d", len(result.Items), result.Total)
	}
	if result.NextCursor != "" || result.PrevCursor != "" {
		t.Fatal("expected no cursors for empty result")
	}
	if result.LinkHeader != "" {
		t.Fatalf("expected empty link header, got %s", result.LinkHeader)
	}
}

func TestPaginateCursorNotFound(t *testing.T) {
	result := paginate(makeTestItems(10), Cursor{Type: "test", Value: "nonexistent"}, 10, nil)

	if len(result.Items) != 10 {
		t.Fatalf("expected full page from the beginning, got %d items", len(result.Items))
	}
	if result.Items[0].ID != "item-001" {
		t.Fatalf("expected to start from the beginning, got %s", result.Items[0].ID)
	}
}

func TestPaginateLimitLargerThanItems(t *testing.T) {
	result := paginate(makeTestItems(5), Cursor{}, 20, nil)

	if len(result.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(result.Items))
	}
	if result.NextCursor != "" || result.PrevCursor != "" {
		t.Fatal("expected no cursors for a single page")
	}
}

func TestPaginateLinkHeaderPreservesQuery(t *testing.T) {
	query := url.Values{}
	query.Set("tag", "conference")

	result := paginate(makeTestItems(30), Cursor{}, 10, query)

	if !strings.Contains(result.LinkHeader, `rel="next"`) {
		t.Fatalf("expected next link, got %s", result.LinkHeader)
	}
	if !strings.Contains(result.LinkHeader, "tag=conference") {
		t.Fatalf("expected tag preserved in link header, got %s", result.LinkHeader)
	}
	if !strings.Contains(result.LinkHeader, "cursor="+result.NextCursor) {
		t.Fatalf("expected next cursor in link header, got %s", result.LinkHeader)
	}
}

func TestBuildLinkHeaderBothDirections(t *testing.T) {
	header := BuildLinkHeader("/contacts", nil, "next-token", "prev-token")

	if !strings.Contains(header, `</contacts?cursor=next-token>; rel="next"`) {
		t.Errorf("missing next link: %s", header)
	}
	if !strings.Contains(header, `</contacts?cursor=prev-token>; rel="prev"`) {
		t.Errorf("missing prev link: %s", header)
	}
}
