// Package twilio implements the telephony provider against the Twilio REST API.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/config"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/domain"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/telephony"
	apperrors "github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/pkg/errors"
)

const apiVersion = "2010-04-01"

// Client talks to the Twilio REST API over form-encoded HTTP.
type Client struct {
	accountSID string
	authToken  string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Twilio client from provider configuration.
func NewClient(cfg config.ProviderConfig) *Client {
	return &Client{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// callResource mirrors the subset of the Calls resource the gateway reads back.
type callResource struct {
	SID    string `json:"sid"`
	To     string `json:"to"`
	From   string `json:"from"`
	Status string `json:"status"`
}

// messageResource mirrors the subset of the Messages resource the gateway reads back.
type messageResource struct {
	SID    string `json:"sid"`
	To     string `json:"to"`
	From   string `json:"from"`
	Status string `json:"status"`
}

// apiError is Twilio's error envelope for non-2xx responses.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// CreateCall places one outbound call. At most one attempt is made.
func (c *Client) CreateCall(ctx context.Context, input telephony.CreateCallInput) (*domain.CallReceipt, error) {
	form := url.Values{}
	form.Set("To", input.To)
	form.Set("From", input.From)
	if input.TwiML != "" {
		form.Set("Twiml", input.TwiML)
	} else {
		form.Set("Url", input.VoiceURL)
	}
	if input.StatusCallback != "" {
		form.Set("StatusCallback", input.StatusCallback)
	}

	var res callResource
	if err := c.post(ctx, "Calls.json", form, &res); err != nil {
		return nil, err
	}

	return &domain.CallReceipt{
		SID:    res.SID,
		To:     res.To,
		From:   res.From,
		Status: domain.CallStatus(res.Status),
	}, nil
}

// SendMessage sends one outbound SMS. At most one attempt is made.
func (c *Client) SendMessage(ctx context.Context, input telephony.SendMessageInput) (*domain.MessageReceipt, error) {
	form := url.Values{}
	form.Set("To", input.To)
	form.Set("From", input.From)
	form.Set("Body", input.Body)

	var res messageResource
	if err := c.post(ctx, "Messages.json", form, &res); err != nil {
		return nil, err
	}

	return &domain.MessageReceipt{
		SID:    res.SID,
		To:     res.To,
		From:   res.From,
		Status: res.Status,
	}, nil
}

func (c *Client) post(ctx context.Context, resource string, form url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/%s/Accounts/%s/%s", c.baseURL, apiVersion, c.accountSID, resource)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio: build request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Provider(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Provider(fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.Provider(providerMessage(body, resp.StatusCode))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Provider(fmt.Sprintf("decode response: %v", err))
	}
	return nil
}

// providerMessage extracts Twilio's error message verbatim, falling back to the
// raw body when the envelope does not parse.
func providerMessage(body []byte, statusCode int) string {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return fmt.Sprintf("unexpected provider response (status %d): %s", statusCode, string(body))
}
