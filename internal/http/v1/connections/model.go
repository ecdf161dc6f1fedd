package connections

import (
	"github.com/netwify/api/internal/platform/timeutil"
)

// SenderSnapshot is the sender's card as captured when the request was sent.
type SenderSnapshot struct {
	DisplayName string `json:"displayName" doc:"Display name"         example:"Jane Smith"`
	PhotoURL    string `json:"photoURL"    doc:"Profile photo URL"    example:"https://storage.googleapis.com/bucket/profile-photos/user-123"`
	JobTitle    string `json:"jobTitle"    doc:"Job title"            example:"Staff Engineer"`
	Company     string `json:"company"     doc:"Company name"         example:"Initech"`
}

// Request represents a connection request response.
type Request struct {
	ID          string         `json:"id"          doc:"Unique identifier"                  example:"req-123"`
	FromUserID  string         `json:"fromUserId"  doc:"Sender's user ID"                   example:"user-123"`
	ToUserID    string         `json:"toUserId"    doc:"Recipient's user ID"                example:"user-456"`
	FromUser    SenderSnapshot `json:"fromUser"    doc:"Sender's card at request time"`
	Status      string         `json:"status"      doc:"Request status"                     example:"pending" enum:"pending,accepted,declined"`
	Message     string         `json:"message,omitempty" doc:"Optional message to the recipient" example:"Great talking at the conference!"`
	CreatedAt   timeutil.Time  `json:"createdAt"   doc:"Creation timestamp"                 example:"2024-01-15T10:30:00.000Z"`
	RespondedAt *timeutil.Time `json:"respondedAt,omitempty" doc:"Acceptance or decline timestamp" example:"2024-01-15T11:00:00.000Z"`
}

// ScanTarget is the scanned user's card shown on the confirmation screen.
type ScanTarget struct {
	UserID      string `json:"userId"      doc:"User to connect with"   example:"user-456"`
	DisplayName string `json:"displayName" doc:"Display name"           example:"Bob Martinez"`
	PhotoURL    string `json:"photoURL"    doc:"Profile photo URL"      example:"https://storage.googleapis.com/bucket/profile-photos/user-456"`
	JobTitle    string `json:"jobTitle"    doc:"Job title"              example:"Product Manager"`
	Company     string `json:"company"     doc:"Company name"           example:"Globex"`
	Bio         string `json:"bio"         doc:"Short professional bio" example:"Building developer tools."`
}
