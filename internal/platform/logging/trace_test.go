package logging

import "testing"

const validTraceparent = "00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01"

func TestTraceFieldsValidHeader(t *testing.T) {
	fields := traceFields(validTraceparent, "demo-project")
	if len(fields) != 3 {
		t.Fatalf("expected 3 trace fields, got %d", len(fields))
	}
	if fields[0].String != "projects/demo-project/traces/ab42124a3c573678d4d8b21ba52df3bf" {
		t.Fatalf("unexpected trace resource: %s", fields[0].String)
	}
}

func TestTraceFieldsInvalidHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"malformed", "not-a-traceparent"},
		{"short trace ID", "00-abcd-d21f7bc17caa5aba-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if fields := traceFields(tt.header, "demo-project"); fields != nil {
				t.Fatalf("expected no fields, got %d", len(fields))
			}
		})
	}
}

func TestTraceFieldsNoProject(t *testing.T) {
	if fields := traceFields(validTraceparent, ""); fields != nil {
		t.Fatal("expected no fields without a project ID")
	}
}

func TestTraceResource(t *testing.T) {
	got := traceResource(validTraceparent, "demo-project")
	want := "projects/demo-project/traces/ab42124a3c573678d4d8b21ba52df3bf"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got := traceResource("garbage", "demo-project"); got != "" {
		t.Fatalf("expected empty resource for invalid header, got %s", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "", "third"); got != "third" {
		t.Fatalf("expected third, got %q", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
