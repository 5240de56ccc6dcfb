package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/pkg/errors"
)

// ErrorHandler converts gateway errors to the JSON envelopes of the error
// taxonomy. Validation failures return a bare error field; configuration and
// provider failures return a status/error pair with the message verbatim.
func (h *HandlerSet) ErrorHandler(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrConfiguration), errors.Is(err, apperrors.ErrProvider):
		h.container.Logger.Error("request failed", zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error",
			"error":  err.Error(),
		})
	}

	code := fiber.StatusInternalServerError
	message := err.Error()
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code == fiber.StatusInternalServerError {
		h.container.Logger.Error("request failed", zap.Error(err))
		return ctx.Status(code).JSON(fiber.Map{
			"status": "error",
			"error":  message,
		})
	}

	return ctx.Status(code).JSON(fiber.Map{"error": message})
}
