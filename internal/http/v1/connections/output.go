package connections

// ScanOutput for POST /connections/scan
type ScanOutput struct {
	Body struct {
		Target ScanTarget `json:"target" doc:"The scanned user's current card"`
	}
}

// RequestSendOutput for POST /connections/requests (201 Created)
type RequestSendOutput struct {
	Location string `header:"Location" doc:"URL of the request collection"`
	Body     Request
}

// RequestListOutput for GET /connections/requests
type RequestListOutput struct {
	Body struct {
		Requests []Request `json:"requests" doc:"Pending requests, newest first"`
	}
}

// RequestRespondOutput for accept and decline
type RequestRespondOutput struct {
	Body Request
}
