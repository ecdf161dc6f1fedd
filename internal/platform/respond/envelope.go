package respond

// Envelope is the structured error payload returned for every failure,
// regardless of which layer produced it.
type Envelope struct {
	Error *ErrorBody `json:"error"`
	Meta  Meta       `json:"meta"`
}

// Meta holds cross-cutting response metadata.
type Meta struct {
	TraceID *string `json:"traceId,omitempty"`
}

// ErrorBody describes an error in a predictable structured format.
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldIssue `json:"details,omitempty"`
}

// FieldIssue gives field-level or contextual error information.
type FieldIssue struct {
	Field string `json:"field,omitempty"`
	Issue string `json:"issue"`
}

// NewErrorEnvelope constructs an error envelope.
func NewErrorEnvelope(traceID *string, code, msg string, details []FieldIssue) Envelope {
	var cloned []FieldIssue
	if len(details) > 0 {
		cloned = make([]FieldIssue, len(details))
		copy(cloned, details)
	}
	return Envelope{
		Meta: Meta{TraceID: traceID},
		Error: &ErrorBody{
			Code:    code,
			Message: msg,
			Details: cloned,
		},
	}
}
