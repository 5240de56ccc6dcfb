package telephony

import (
	"context"

	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/domain"
)

// CreateCallInput carries the parameters of one call-creation request. Exactly
// one of VoiceURL or TwiML is populated: either the provider fetches its
// instructions from the callback URL at connect time, or it receives the
// rendered prompt inline.
type CreateCallInput struct {
	To             string
	From           string
	VoiceURL       string
	TwiML          string
	StatusCallback string
}

// SendMessageInput carries the parameters of one outbound SMS.
type SendMessageInput struct {
	To   string
	From string
	Body string
}

// Provider abstracts the telephony API. Implementations make at most one
// attempt per invocation; retry policy is out of scope for the gateway.
type Provider interface {
	CreateCall(ctx context.Context, input CreateCallInput) (*domain.CallReceipt, error)
	SendMessage(ctx context.Context, input SendMessageInput) (*domain.MessageReceipt, error)
}
