package contacts

import "github.com/netwify/api/internal/platform/pagination"

// ContactsListInput for GET /contacts
type ContactsListInput struct {
	pagination.Params
	Tag string `query:"tag" maxLength:"50" doc:"Filter by tag" example:"conference"`
}

// ContactGetInput for GET /contacts/{id}
type ContactGetInput struct {
	ID string `path:"id" maxLength:"128" doc:"Contact identifier" example:"contact-123"`
}

// ContactUpdateInput for PATCH /contacts/{id}
type ContactUpdateInput struct {
	ID   string `path:"id" maxLength:"128" doc:"Contact identifier" example:"contact-123"`
	Body struct {
		Notes *string   `json:"notes,omitempty" maxLength:"2000"            doc:"Private notes" example:"Interested in our API platform."`
		Tags  *[]string `json:"tags,omitempty"  maxItems:"20"               doc:"Private tags"  example:"[\"conference\",\"partner\"]"`
		MetAt *string   `json:"metAt,omitempty" maxLength:"200"             doc:"Where you met" example:"GopherCon 2025"`
	}
}

// ContactDeleteInput for DELETE /contacts/{id}
type ContactDeleteInput struct {
	ID string `path:"id" maxLength:"128" doc:"Contact identifier" example:"contact-123"`
}

// SummaryGenerateInput for POST /contacts/{id}/summary
type SummaryGenerateInput struct {
	ID string `path:"id" maxLength:"128" doc:"Contact identifier" example:"contact-123"`
}

// FollowUpGenerateInput for POST /contacts/{id}/followup
type FollowUpGenerateInput struct {
	ID   string `path:"id" maxLength:"128" doc:"Contact identifier" example:"contact-123"`
	Body struct {
		Tone    string `json:"tone"    enum:"professional,friendly,casual" default:"professional" doc:"Tone of the message"    example:"friendly"`
		Channel string `json:"channel" enum:"Email,LinkedIn,SMS"           default:"Email"        doc:"Channel the message is for" example:"LinkedIn"`
	}
}
