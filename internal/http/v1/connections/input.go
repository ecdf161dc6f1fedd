package connections

// ScanInput for POST /connections/scan
type ScanInput struct {
	Body struct {
		Data string `json:"data" minLength:"1" maxLength:"4096" required:"true" doc:"Raw scanned QR data" example:"{\"type\":\"netwify_connect\",\"userId\":\"user-456\",\"timestamp\":1700000000000}"`
	}
}

// RequestSendInput for POST /connections/requests
type RequestSendInput struct {
	Body struct {
		ToUserID string `json:"toUserId" minLength:"1" maxLength:"128" required:"true" doc:"Recipient's user ID"              example:"user-456"`
		Message  string `json:"message,omitempty"      maxLength:"500"                 doc:"Optional message to the recipient" example:"Great talking at the conference!"`
	}
}

// RequestListInput for GET /connections/requests
type RequestListInput struct {
	Direction string `query:"direction" enum:"incoming,outgoing" default:"incoming" doc:"Which side of the requests to list" example:"incoming"`
}

// RequestAcceptInput for POST /connections/requests/{id}/accept
type RequestAcceptInput struct {
	ID string `path:"id" maxLength:"128" doc:"Request identifier" example:"req-123"`
}

// RequestDeclineInput for POST /connections/requests/{id}/decline
type RequestDeclineInput struct {
	ID string `path:"id" maxLength:"128" doc:"Request identifier" example:"req-123"`
}
