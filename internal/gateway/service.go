// Package gateway implements the call dispatch component: it validates incoming
// requests, resolves provider credentials, and forwards at most one request per
// invocation to the telephony provider.
package gateway

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/config"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/domain"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/telephony"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/twiml"
	apperrors "github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/pkg/errors"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/pkg/logger"
)

// Service is the call dispatch gateway. It holds no mutable state: the
// configuration is read-only for the process lifetime and every request is an
// independent transaction.
type Service struct {
	provider telephony.Provider
	creds    config.ProviderConfig
	voice    config.VoiceConfig
	logger   *logger.Logger
}

// NewService builds the gateway with its collaborators injected.
func NewService(creds config.ProviderConfig, voice config.VoiceConfig, provider telephony.Provider, lg *logger.Logger) *Service {
	return &Service{
		provider: provider,
		creds:    creds,
		voice:    voice,
		logger:   lg,
	}
}

// InitiateCall validates the request, then places exactly one call through the
// provider. No retry is attempted on failure.
func (s *Service) InitiateCall(ctx context.Context, req domain.CallRequest) (*domain.CallReceipt, error) {
	if strings.TrimSpace(req.To) == "" {
		return nil, apperrors.Validation("Missing 'to' parameter")
	}
	if err := s.creds.Validate(); err != nil {
		return nil, err
	}

	from := req.CallerID
	if from == "" {
		from = s.creds.FromNumber
	}

	input := telephony.CreateCallInput{
		To:   req.To,
		From: from,
	}

	if s.creds.CallbackBaseURL != "" {
		input.VoiceURL = s.voiceURL(req.Message)
		input.StatusCallback = s.callbackURL("/twilio/status")
	} else {
		doc, err := s.RenderVoicePrompt(req.Message)
		if err != nil {
			return nil, err
		}
		input.TwiML = doc
	}

	dispatchID := uuid.New()
	s.logger.Info("placing outbound call",
		zap.String("dispatch_id", dispatchID.String()),
		zap.String("to", req.To),
		zap.String("from", from),
	)

	receipt, err := s.provider.CreateCall(ctx, input)
	if err != nil {
		s.logger.Warn("provider rejected call",
			zap.String("dispatch_id", dispatchID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return receipt, nil
}

// SendMessage validates the request, then sends exactly one SMS through the provider.
func (s *Service) SendMessage(ctx context.Context, req domain.MessageRequest) (*domain.MessageReceipt, error) {
	if strings.TrimSpace(req.To) == "" {
		return nil, apperrors.Validation("Missing 'to' parameter")
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, apperrors.Validation("Missing 'body' parameter")
	}
	if err := s.creds.Validate(); err != nil {
		return nil, err
	}

	from := req.CallerID
	if from == "" {
		from = s.creds.FromNumber
	}

	dispatchID := uuid.New()
	s.logger.Info("sending outbound message",
		zap.String("dispatch_id", dispatchID.String()),
		zap.String("to", req.To),
		zap.String("from", from),
	)

	receipt, err := s.provider.SendMessage(ctx, telephony.SendMessageInput{
		To:   req.To,
		From: from,
		Body: req.Body,
	})
	if err != nil {
		s.logger.Warn("provider rejected message",
			zap.String("dispatch_id", dispatchID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return receipt, nil
}

// RenderVoicePrompt produces the spoken-prompt document served to the provider
// at call-connect time. A non-empty override replaces the configured greeting.
// Pure function of its input.
func (s *Service) RenderVoicePrompt(override string) (string, error) {
	greeting := s.voice.Greeting
	if strings.TrimSpace(override) != "" {
		greeting = override
	}

	resp := twiml.NewResponse().
		Say(greeting, s.voice.VoiceName, s.voice.Language).
		Pause(s.voice.PauseSeconds).
		Say(s.voice.Farewell, s.voice.VoiceName, s.voice.Language)

	return resp.Render()
}

// AutoReply produces the auto-reply document for an inbound message and logs
// the sender and body.
func (s *Service) AutoReply(from, body string) (string, error) {
	s.logger.Info("inbound message received",
		zap.String("from", from),
		zap.String("body", body),
	)
	return twiml.NewResponse().Message(s.voice.SMSReply).Render()
}

// RecordCallStatus logs the provider's status callback fields and discards
// them. It never fails: the webhook must be acknowledged regardless of payload
// shape so the provider does not retry indefinitely.
func (s *Service) RecordCallStatus(fields map[string]string) {
	attrs := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, zap.String(k, v))
	}
	s.logger.Info("call status callback", attrs...)
}

// CheckCredentials reports whether the provider credentials are fully
// populated, returning the account identifier on success.
func (s *Service) CheckCredentials() (string, error) {
	if err := s.creds.Validate(); err != nil {
		return "", err
	}
	return s.creds.AccountSID, nil
}

func (s *Service) voiceURL(messageOverride string) string {
	u := s.callbackURL("/twilio/voice")
	if strings.TrimSpace(messageOverride) != "" {
		u += "?message=" + url.QueryEscape(messageOverride)
	}
	return u
}

func (s *Service) callbackURL(path string) string {
	return strings.TrimRight(s.creds.CallbackBaseURL, "/") + path
}
