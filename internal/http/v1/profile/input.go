package profile

// ProfileCreateInput for POST /profile
type ProfileCreateInput struct {
	Body struct {
		DisplayName string `json:"displayName" minLength:"1" maxLength:"100"  required:"true" doc:"Display name"           example:"Jane Smith"`
		Email       string `json:"email"       format:"email"                 required:"true" doc:"Email address"          example:"jane@example.com"`
		PhotoURL    string `json:"photoURL,omitempty"  format:"uri" maxLength:"2048"          doc:"Profile photo URL"      example:"https://example.com/me.jpg"`
		JobTitle    string `json:"jobTitle,omitempty"  maxLength:"100"                        doc:"Job title"              example:"Staff Engineer"`
		Company     string `json:"company,omitempty"   maxLength:"100"                        doc:"Company name"           example:"Initech"`
		Phone       string `json:"phone,omitempty"     maxLength:"32"                         doc:"Phone number"           example:"+358401234567"`
		LinkedIn    string `json:"linkedIn,omitempty"  format:"uri" maxLength:"2048"          doc:"LinkedIn profile URL"   example:"https://linkedin.com/in/janesmith"`
		Website     string `json:"website,omitempty"   format:"uri" maxLength:"2048"          doc:"Personal website URL"   example:"https://janesmith.dev"`
		Bio         string `json:"bio,omitempty"       maxLength:"1000"                       doc:"Short professional bio" example:"Distributed systems engineer."`
	}
}

// ProfileGetInput for GET /profile (no body needed)
type ProfileGetInput struct{}

// ProfileUpdateInput for PATCH /profile
type ProfileUpdateInput struct {
	Body struct {
		DisplayName *string `json:"displayName,omitempty" minLength:"1" maxLength:"100"  doc:"Display name"           example:"Jane Smith"`
		PhotoURL    *string `json:"photoURL,omitempty"    format:"uri" maxLength:"2048"  doc:"Profile photo URL"      example:"https://example.com/me.jpg"`
		JobTitle    *string `json:"jobTitle,omitempty"    maxLength:"100"                doc:"Job title"              example:"Staff Engineer"`
		Company     *string `json:"company,omitempty"     maxLength:"100"                doc:"Company name"           example:"Initech"`
		Phone       *string `json:"phone,omitempty"       maxLength:"32"                 doc:"Phone number"           example:"+358401234567"`
		LinkedIn    *string `json:"linkedIn,omitempty"    format:"uri" maxLength:"2048"  doc:"LinkedIn profile URL"   example:"https://linkedin.com/in/janesmith"`
		Website     *string `json:"website,omitempty"     format:"uri" maxLength:"2048"  doc:"Personal website URL"   example:"https://janesmith.dev"`
		Bio         *string `json:"bio,omitempty"         maxLength:"1000"               doc:"Short professional bio" example:"Distributed systems engineer."`
	}
}

// ProfileDeleteInput for DELETE /profile (no body needed)
type ProfileDeleteInput struct{}

// PhotoUploadInput for PUT /profile/photo. The image bytes are the raw
// request body.
type PhotoUploadInput struct {
	ContentType string `header:"Content-Type" doc:"Image MIME type" example:"image/jpeg"`
	RawBody     []byte
}

// PhotoDeleteInput for DELETE /profile/photo (no body needed)
type PhotoDeleteInput struct{}
