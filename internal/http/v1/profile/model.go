package profile

import (
	"github.com/netwify/api/internal/platform/timeutil"
)

// Profile represents a contact card response.
type Profile struct {
	ID          string        `json:"id"          doc:"Unique identifier"          example:"user-123"`
	DisplayName string        `json:"displayName" doc:"Display name"               example:"Jane Smith"`
	Email       string        `json:"email"       doc:"Email address"              example:"jane@example.com"`
	PhotoURL    string        `json:"photoURL"    doc:"Profile photo URL"          example:"https://storage.googleapis.com/bucket/profile-photos/user-123"`
	JobTitle    string        `json:"jobTitle"    doc:"Job title"                  example:"Staff Engineer"`
	Company     string        `json:"company"     doc:"Company name"               example:"Initech"`
	Phone       string        `json:"phone"       doc:"Phone number"               example:"+358401234567"`
	LinkedIn    string        `json:"linkedIn"    doc:"LinkedIn profile URL"       example:"https://linkedin.com/in/janesmith"`
	Website     string        `json:"website"     doc:"Personal website URL"       example:"https://janesmith.dev"`
	Bio         string        `json:"bio"         doc:"Short professional bio"     example:"Distributed systems engineer."`
	CreatedAt   timeutil.Time `json:"createdAt"   doc:"Creation timestamp"         example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt   timeutil.Time `json:"updatedAt"   doc:"Last update timestamp"      example:"2024-01-15T10:30:00.000Z"`
}
