package contacts

import (
	"github.com/netwify/api/internal/platform/timeutil"
)

// Contact represents a contact ledger row response.
type Contact struct {
	ID            string `json:"id"            doc:"Unique identifier"     example:"contact-123"`
	ContactUserID string `json:"contactUserId" doc:"The connected user ID" example:"user-456"`

	DisplayName string `json:"displayName" doc:"Display name at connection time"      example:"Bob Martinez"`
	PhotoURL    string `json:"photoURL"    doc:"Photo URL at connection time"         example:"https://storage.googleapis.com/bucket/profile-photos/user-456"`
	JobTitle    string `json:"jobTitle"    doc:"Job title at connection time"         example:"Product Manager"`
	Company     string `json:"company"     doc:"Company at connection time"           example:"Globex"`
	Email       string `json:"email"       doc:"Email at connection time"             example:"bob@example.com"`
	Phone       string `json:"phone"       doc:"Phone at connection time"             example:"+358401234567"`
	LinkedIn    string `json:"linkedIn"    doc:"LinkedIn URL at connection time"      example:"https://linkedin.com/in/bobmartinez"`
	Website     string `json:"website"     doc:"Website at connection time"           example:"https://bob.dev"`
	Bio         string `json:"bio"         doc:"Bio at connection time"               example:"Building developer tools."`

	Notes     string   `json:"notes"     doc:"Private notes"                     example:"Interested in our API platform."`
	Tags      []string `json:"tags"      doc:"Private tags"                      example:"[\"conference\",\"partner\"]"`
	MetAt     string   `json:"metAt"     doc:"Where you met"                     example:"GopherCon 2025"`
	AISummary string   `json:"aiSummary" doc:"Generated relationship summary"    example:"Bob leads product at Globex."`

	ConnectedAt       timeutil.Time  `json:"connectedAt"                 doc:"When the connection was accepted" example:"2024-01-15T10:30:00.000Z"`
	LastInteractionAt *timeutil.Time `json:"lastInteractionAt,omitempty" doc:"Last recorded interaction"        example:"2024-02-01T09:00:00.000Z"`
}
