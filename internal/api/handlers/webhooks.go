package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const contentTypeXML = "application/xml"

// voicePrompt serves the call instructions the provider fetches at connect
// time. The optional message parameter overrides the configured greeting.
func (h *HandlerSet) voicePrompt(ctx *fiber.Ctx) error {
	doc, err := h.gateway.RenderVoicePrompt(param(ctx, "message"))
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, contentTypeXML)
	return ctx.SendString(doc)
}

// callStatus acknowledges the provider's asynchronous status callback. It
// always answers 200, whatever the payload looks like, so the provider never
// retries the delivery.
func (h *HandlerSet) callStatus(ctx *fiber.Ctx) error {
	fields := make(map[string]string)
	ctx.Request().PostArgs().VisitAll(func(key, value []byte) {
		fields[string(key)] = string(value)
	})

	h.gateway.RecordCallStatus(fields)
	return ctx.SendString("")
}

// inboundSMS answers an inbound message notification with the auto-reply
// document. Like the status callback, it never fails the provider's delivery.
func (h *HandlerSet) inboundSMS(ctx *fiber.Ctx) error {
	doc, err := h.gateway.AutoReply(ctx.FormValue("From"), ctx.FormValue("Body"))
	if err != nil {
		h.container.Logger.Warn("auto-reply rendering failed", zap.Error(err))
		return ctx.SendString("")
	}

	ctx.Set(fiber.HeaderContentType, contentTypeXML)
	return ctx.SendString(doc)
}
