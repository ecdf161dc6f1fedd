// Package qr implements the connect handshake payload exchanged through the
// QR surface. The payload is deliberately minimal: a protocol marker, the
// user ID to connect with, and an informational timestamp. It carries no
// signature and no expiry; every validation failure is recoverable by
// re-scanning.
package qr

import (
	"encoding/json"
	"errors"
	"time"
)

// Kind is the protocol marker every connect payload must carry.
const Kind = "netwify_connect"

var (
	// ErrInvalidPayload indicates the scanned data is not a connect payload.
	ErrInvalidPayload = errors.New("invalid connect payload")

	// ErrSelfConnect indicates a user scanned their own code.
	ErrSelfConnect = errors.New("cannot connect with yourself")
)

// Payload is the wire format rendered into a QR code by the client.
type Payload struct {
	Kind      string `json:"type"`
	UserID    string `json:"userId"`
	Timestamp int64  `json:"timestamp"` // epoch millis, informational only
}

// New creates a payload for the given user with the current timestamp.
func New(userID string) Payload {
	return Payload{
		Kind:      Kind,
		UserID:    userID,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Encode renders the payload as the JSON string embedded in the QR code.
func (p Payload) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses raw scanned data. Malformed JSON, a kind mismatch or a
// missing user ID all map to ErrInvalidPayload.
func Decode(raw string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Payload{}, ErrInvalidPayload
	}
	if p.Kind != Kind || p.UserID == "" {
		return Payload{}, ErrInvalidPayload
	}
	return p, nil
}

// Validate checks the payload against the scanning user. The timestamp is
// informational and not checked; stale codes still resolve.
func (p Payload) Validate(scannerID string) error {
	if p.Kind != Kind || p.UserID == "" {
		return ErrInvalidPayload
	}
	if p.UserID == scannerID {
		return ErrSelfConnect
	}
	return nil
}
