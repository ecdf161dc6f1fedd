package contacts

// ListData is the response body containing paginated contacts.
type ListData struct {
	Contacts []Contact `json:"contacts" doc:"List of contacts"`
	Total    int       `json:"total"    doc:"Total count of contacts matching the filter" example:"42"`
}

// ContactsListOutput is the response wrapper with pagination Link header.
type ContactsListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ListData
}

// ContactGetOutput for GET /contacts/{id}
type ContactGetOutput struct {
	Body Contact
}

// ContactUpdateOutput for PATCH /contacts/{id}
type ContactUpdateOutput struct {
	Body Contact
}

// SummaryGenerateOutput for POST /contacts/{id}/summary
type SummaryGenerateOutput struct {
	Body Contact
}

// FollowUpGenerateOutput for POST /contacts/{id}/followup
type FollowUpGenerateOutput struct {
	Body struct {
		Message string `json:"message" doc:"Drafted follow-up message" example:"Hi Bob, great meeting you at GopherCon!"`
	}
}
