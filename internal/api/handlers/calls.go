package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/domain"
)

type callRequest struct {
	To         string `json:"to"`
	Message    string `json:"message"`
	MessageTTS string `json:"message_tts"`
	From       string `json:"from"`
}

type messageRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
	From string `json:"from"`
}

// initiateCall accepts the destination via query string, form field, or JSON
// body, and places one outbound call.
func (h *HandlerSet) initiateCall(ctx *fiber.Ctx) error {
	var req callRequest
	if isJSON(ctx) {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	if req.To == "" {
		req.To = param(ctx, "to")
	}
	if req.Message == "" {
		req.Message = param(ctx, "message")
	}
	if req.Message == "" {
		req.Message = req.MessageTTS
	}
	if req.Message == "" {
		req.Message = param(ctx, "message_tts")
	}
	if req.From == "" {
		req.From = param(ctx, "from")
	}

	receipt, err := h.gateway.InitiateCall(ctx.Context(), domain.CallRequest{
		To:       req.To,
		Message:  req.Message,
		CallerID: req.From,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"status":   receipt.Status,
		"call_sid": receipt.SID,
		"to":       receipt.To,
		"from":     receipt.From,
	})
}

// sendMessage forwards one outbound SMS to the provider.
func (h *HandlerSet) sendMessage(ctx *fiber.Ctx) error {
	var req messageRequest
	if isJSON(ctx) {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	if req.To == "" {
		req.To = param(ctx, "to")
	}
	if req.Body == "" {
		req.Body = param(ctx, "body")
	}
	if req.From == "" {
		req.From = param(ctx, "from")
	}

	receipt, err := h.gateway.SendMessage(ctx.Context(), domain.MessageRequest{
		To:       req.To,
		Body:     req.Body,
		CallerID: req.From,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"status":      receipt.Status,
		"message_sid": receipt.SID,
		"to":          receipt.To,
		"from":        receipt.From,
	})
}

// param reads a request value from the query string first, then the form body.
func param(ctx *fiber.Ctx, key string) string {
	if v := ctx.Query(key); v != "" {
		return v
	}
	return ctx.FormValue(key)
}

func isJSON(ctx *fiber.Ctx) bool {
	return strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
}
