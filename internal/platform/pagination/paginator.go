package pagination

import (
	"net/url"
)

// Result holds the outcome of a pagination operation.
type Result[T any] struct {
	Items      []T
	Total      int
	LinkHeader string
	NextCursor string
	PrevCursor string
}

// Paginate applies cursor-based pagination to an already ordered slice.
//
//   - items: the full ordered slice to paginate
//   - cursor: the decoded cursor from the request
//   - limit: maximum items per page
//   - cursorType: type identifier for cursor validation (e.g., "contact")
//   - getID: extracts the ID from an item
//   - baseURL: base URL path for the Link header
//   - query: additional query parameters to preserve in links
func Paginate[T any](
	items []T,
	cursor Cursor,
	limit int,
	cursorType string,
	getID func(T) string,
	baseURL string,
	query url.Values,
) Result[T] {
	total := len(items)

	startIdx := 0
	if cursor.Value != "" {
		for i, item := range items {
			if getID(item) == cursor.Value {
				startIdx = i + 1
				break
			}
		}
	}

	endIdx := min(startIdx+limit, total)
	pageItems := items[startIdx:endIdx]

	var nextCursor, prevCursor string

	if endIdx < total && len(pageItems) > 0 {
		nextCursor = Cursor{Type: cursorType, Value: getID(pageItems[len(pageItems)-1])}.Encode()
	}
	if startIdx > 0 {
		prevValue := ""
		if startIdx > limit {
			prevValue = getID(items[startIdx-limit-1])
		}
		prevCursor = Cursor{Type: cursorType, Value: prevValue}.Encode()
	}

	return Result[T]{
		Items:      pageItems,
		Total:      total,
		LinkHeader: BuildLinkHeader(baseURL, query, nextCursor, prevCursor),
		NextCursor: nextCursor,
		PrevCursor: prevCursor,
	}
}
