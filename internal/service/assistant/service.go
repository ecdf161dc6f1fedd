// Package assistant generates relationship summaries and follow-up messages
// through an OpenAI-compatible chat-completions endpoint. Calls are
// synchronous, uncached and unretried; a failure surfaces to the caller and
// leaves no state behind.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/netwify/api/internal/service/contact"
	"github.com/netwify/api/internal/service/profile"
)

// Service errors
var (
	ErrUnauthorized = errors.New("assistant credentials rejected")
	ErrRateLimited  = errors.New("assistant rate limit exceeded")
	ErrUpstream     = errors.New("assistant upstream error")
)

// UpstreamErrorKind classifies upstream failures.
type UpstreamErrorKind string

const (
	UpstreamErrorKindUnauthorized UpstreamErrorKind = "unauthorized"
	UpstreamErrorKindRateLimited  UpstreamErrorKind = "rate_limited"
	UpstreamErrorKindUpstream     UpstreamErrorKind = "upstream"
)

// UpstreamError includes response metadata for error mapping.
type UpstreamError struct {
	Kind       UpstreamErrorKind
	Status     int
	RetryAfter string
	cause      error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "assistant upstream error"
	}
	if e.cause == nil {
		return fmt.Sprintf("assistant upstream error (kind=%s status=%d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("assistant upstream error (kind=%s status=%d): %v", e.Kind, e.Status, e.cause)
}

// Unwrap enables errors.Is/As against sentinel service errors.
func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Tone of a generated follow-up message.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneCasual       Tone = "casual"
)

// Channel the follow-up message is written for.
type Channel string

const (
	ChannelEmail    Channel = "Email"
	ChannelLinkedIn Channel = "LinkedIn"
	ChannelSMS      Channel = "SMS"
)

// FollowUpParams for drafting a follow-up message.
type FollowUpParams struct {
	Sender  *profile.Profile
	Contact *contact.Contact
	Tone    Tone
	Channel Channel
}

// Service defines text generation operations.
type Service interface {
	// Summarize produces a two-sentence summary of why two people matter
	// to each other professionally.
	Summarize(ctx context.Context, a, b *profile.Profile) (string, error)

	// FollowUp drafts a message from the sender to the contact in the
	// requested tone and channel.
	FollowUp(ctx context.Context, params FollowUpParams) (string, error)
}
