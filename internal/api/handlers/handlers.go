package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/app"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/gateway"
)

// HandlerSet bundles all HTTP handlers.
type HandlerSet struct {
	container *app.Container
	gateway   *gateway.Service
}

// NewHandlerSet creates a new handler bundle.
func NewHandlerSet(container *app.Container) *HandlerSet {
	return &HandlerSet{
		container: container,
		gateway:   container.Gateway(),
	}
}

// Register wires all routes onto the fiber app. Several routes carry aliases so
// existing provider console configurations keep working.
func (h *HandlerSet) Register(app *fiber.App) {
	app.Get("/", h.index)
	app.Get("/hello", h.hello)
	app.Get("/health", h.health)
	app.Get("/healthz", h.health)

	app.Get("/twilio/check", h.checkCredentials)

	for _, path := range []string{"/call", "/api/call", "/twilio/call"} {
		app.Get(path, h.initiateCall)
		app.Post(path, h.initiateCall)
	}
	app.Post("/twilio/message", h.sendMessage)

	for _, path := range []string{"/voice", "/twilio/voice"} {
		app.Post(path, h.voicePrompt)
	}
	for _, path := range []string{"/status", "/twilio/status", "/webhook/call-status"} {
		app.Post(path, h.callStatus)
	}
	for _, path := range []string{"/sms", "/twilio/sms"} {
		app.Post(path, h.inboundSMS)
	}
}

func (h *HandlerSet) index(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"service": h.container.Config.App.Name,
		"endpoints": []string{
			"/hello",
			"/twilio/check",
			"/twilio/call?to=+1XXXXXXXXXX",
			"/twilio/message",
			"/twilio/voice",
			"/twilio/status",
			"/twilio/sms",
		},
	})
}

func (h *HandlerSet) hello(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"message": "Hello from Excel Backend!"})
}

func (h *HandlerSet) health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

func (h *HandlerSet) checkCredentials(ctx *fiber.Ctx) error {
	accountSID, err := h.gateway.CheckCredentials()
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"status":      "ok",
		"account_sid": accountSID,
	})
}
