package gateway

import (
	"context"
	"strings"
	"testing"

	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/config"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/domain"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/telephony"
	telephonyMock "github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/telephony/mock"
	apperrors "github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/pkg/errors"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/pkg/logger"
)

func testCreds() config.ProviderConfig {
	return config.ProviderConfig{
		Name:            "mock",
		AccountSID:      "AC123",
		AuthToken:       "secret",
		FromNumber:      "+15005550006",
		CallbackBaseURL: "https://example.com",
	}
}

func testVoice() config.VoiceConfig {
	return config.VoiceConfig{
		VoiceName:    "alice",
		Language:     "fr-CA",
		Greeting:     "Bonjour Michel.",
		Farewell:     "Au revoir.",
		PauseSeconds: 1,
		SMSReply:     "Merci pour votre message.",
	}
}

func newTestService(creds config.ProviderConfig) (*Service, *telephonyMock.Provider) {
	provider := telephonyMock.NewProvider()
	return NewService(creds, testVoice(), provider, logger.NewNop()), provider
}

func TestInitiateCallMissingDestination(t *testing.T) {
	svc, provider := newTestService(testCreds())

	_, err := svc.InitiateCall(context.Background(), domain.CallRequest{})
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Missing 'to' parameter" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if n := len(provider.Calls()); n != 0 {
		t.Errorf("expected no provider invocation, got %d", n)
	}
}

func TestInitiateCallMissingCredentials(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*config.ProviderConfig)
		missing string
	}{
		{"account sid", func(c *config.ProviderConfig) { c.AccountSID = "" }, "TWILIO_ACCOUNT_SID"},
		{"auth token", func(c *config.ProviderConfig) { c.AuthToken = "" }, "TWILIO_AUTH_TOKEN"},
		{"from number", func(c *config.ProviderConfig) { c.FromNumber = "" }, "TWILIO_FROM_NUMBER"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			creds := testCreds()
			tc.mutate(&creds)
			svc, provider := newTestService(creds)

			_, err := svc.InitiateCall(context.Background(), domain.CallRequest{To: "+15145551234"})
			if !apperrors.Is(err, apperrors.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.missing) {
				t.Errorf("error %q does not name %s", err.Error(), tc.missing)
			}
			if n := len(provider.Calls()); n != 0 {
				t.Errorf("expected no provider invocation, got %d", n)
			}
		})
	}
}

func TestInitiateCallUsesCallbackURL(t *testing.T) {
	svc, provider := newTestService(testCreds())

	receipt, err := svc.InitiateCall(context.Background(), domain.CallRequest{To: "+15145551234"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := provider.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one provider invocation, got %d", len(calls))
	}
	call := calls[0]
	if call.To != "+15145551234" || call.From != "+15005550006" {
		t.Errorf("unexpected call parameters: %+v", call)
	}
	if call.VoiceURL != "https://example.com/twilio/voice" {
		t.Errorf("unexpected voice url: %q", call.VoiceURL)
	}
	if call.TwiML != "" {
		t.Errorf("expected no inline document when a callback base is configured")
	}
	if call.StatusCallback != "https://example.com/twilio/status" {
		t.Errorf("unexpected status callback: %q", call.StatusCallback)
	}

	if receipt.Status != domain.CallStatusQueued {
		t.Errorf("expected queued receipt, got %q", receipt.Status)
	}
	if !strings.HasPrefix(receipt.SID, "CA") {
		t.Errorf("unexpected call sid: %q", receipt.SID)
	}
}

func TestInitiateCallMessageOverrideInVoiceURL(t *testing.T) {
	svc, provider := newTestService(testCreds())

	_, err := svc.InitiateCall(context.Background(), domain.CallRequest{To: "+15145551234", Message: "Allô à tous"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := provider.Calls()[0]
	if !strings.HasPrefix(call.VoiceURL, "https://example.com/twilio/voice?message=") {
		t.Fatalf("expected message parameter on voice url, got %q", call.VoiceURL)
	}
	if strings.ContainsAny(call.VoiceURL, " à") {
		t.Errorf("voice url not escaped: %q", call.VoiceURL)
	}
}

func TestInitiateCallInlinePromptWithoutCallbackBase(t *testing.T) {
	creds := testCreds()
	creds.CallbackBaseURL = ""
	svc, provider := newTestService(creds)

	_, err := svc.InitiateCall(context.Background(), domain.CallRequest{To: "+15145551234", Message: "Test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := provider.Calls()[0]
	if call.VoiceURL != "" {
		t.Errorf("expected no voice url, got %q", call.VoiceURL)
	}
	if !strings.Contains(call.TwiML, "<Say") || !strings.Contains(call.TwiML, "Test") {
		t.Errorf("inline prompt missing expected verbs: %q", call.TwiML)
	}
}

// stubProvider answers with a fixed SID, for echo assertions.
type stubProvider struct {
	sid string
}

func (s *stubProvider) CreateCall(_ context.Context, input telephony.CreateCallInput) (*domain.CallReceipt, error) {
	return &domain.CallReceipt{SID: s.sid, To: input.To, From: input.From, Status: domain.CallStatusQueued}, nil
}

func (s *stubProvider) SendMessage(_ context.Context, input telephony.SendMessageInput) (*domain.MessageReceipt, error) {
	return &domain.MessageReceipt{SID: s.sid, To: input.To, From: input.From, Status: "queued"}, nil
}

func TestInitiateCallEchoesProviderSID(t *testing.T) {
	svc := NewService(testCreds(), testVoice(), &stubProvider{sid: "CA123"}, logger.NewNop())

	receipt, err := svc.InitiateCall(context.Background(), domain.CallRequest{To: "+15145551234", Message: "Test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.SID != "CA123" {
		t.Errorf("expected provider sid echoed, got %q", receipt.SID)
	}
	if receipt.To != "+15145551234" || receipt.From != "+15005550006" {
		t.Errorf("unexpected receipt: %+v", receipt)
	}
}

func TestInitiateCallCallerIDOverride(t *testing.T) {
	svc, provider := newTestService(testCreds())

	_, err := svc.InitiateCall(context.Background(), domain.CallRequest{To: "+15145551234", CallerID: "+15140000000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from := provider.Calls()[0].From; from != "+15140000000" {
		t.Errorf("expected caller id override, got %q", from)
	}
}

func TestSendMessageValidation(t *testing.T) {
	svc, provider := newTestService(testCreds())

	if _, err := svc.SendMessage(context.Background(), domain.MessageRequest{Body: "hi"}); !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error for missing to, got %v", err)
	}
	if _, err := svc.SendMessage(context.Background(), domain.MessageRequest{To: "+15145551234"}); !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error for missing body, got %v", err)
	}
	if n := len(provider.Messages()); n != 0 {
		t.Errorf("expected no provider invocation, got %d", n)
	}
}

func TestSendMessageSuccess(t *testing.T) {
	svc, provider := newTestService(testCreds())

	receipt, err := svc.SendMessage(context.Background(), domain.MessageRequest{To: "+15145551234", Body: "Bonjour"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	messages := provider.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected exactly one provider invocation, got %d", len(messages))
	}
	if messages[0].Body != "Bonjour" || messages[0].From != "+15005550006" {
		t.Errorf("unexpected message input: %+v", messages[0])
	}
	if !strings.HasPrefix(receipt.SID, "SM") {
		t.Errorf("unexpected message sid: %q", receipt.SID)
	}
}

func TestRenderVoicePromptDefault(t *testing.T) {
	svc, _ := newTestService(testCreds())

	first, err := svc.RenderVoicePrompt("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.RenderVoicePrompt("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("prompt rendering is not idempotent")
	}
	for _, want := range []string{"<Response>", "Bonjour Michel.", "Au revoir.", `voice="alice"`, `language="fr-CA"`, `<Pause length="1">`} {
		if !strings.Contains(first, want) {
			t.Errorf("prompt missing %q: %s", want, first)
		}
	}
}

func TestRenderVoicePromptOverride(t *testing.T) {
	svc, _ := newTestService(testCreds())

	doc, err := svc.RenderVoicePrompt("Rappel: rendez-vous à 15h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc, "Rappel: rendez-vous à 15h") {
		t.Errorf("override missing from prompt: %s", doc)
	}
	if strings.Contains(doc, "Bonjour Michel.") {
		t.Errorf("override should replace the greeting: %s", doc)
	}
	if !strings.Contains(doc, "Au revoir.") {
		t.Errorf("farewell should survive the override: %s", doc)
	}
}

func TestAutoReply(t *testing.T) {
	svc, _ := newTestService(testCreds())

	doc, err := svc.AutoReply("+15145551234", "Allô")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc, "<Message>Merci pour votre message.</Message>") {
		t.Errorf("unexpected auto-reply document: %s", doc)
	}
}

func TestCheckCredentials(t *testing.T) {
	svc, _ := newTestService(testCreds())

	sid, err := svc.CheckCredentials()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sid != "AC123" {
		t.Errorf("unexpected account sid: %q", sid)
	}

	creds := testCreds()
	creds.AuthToken = ""
	svc, _ = newTestService(creds)
	if _, err := svc.CheckCredentials(); !apperrors.Is(err, apperrors.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}
