package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/logbookhq/logbook/internal/interpreter"
	"github.com/logbookhq/logbook/internal/types"
)

// ChatHandler handles the natural-language command endpoint
type ChatHandler struct {
	engine *interpreter.Engine
}

// NewChatHandler creates a new instance of ChatHandler
func NewChatHandler(engine *interpreter.Engine) *ChatHandler {
	return &ChatHandler{
		engine: engine,
	}
}

// Chat handles interpreting a free-form message or meeting transcript. The
// engine never fails past its boundary; the reply is always a report string.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req types.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput("invalid request body"))
	}
	if req.Mensaje == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput("mensaje is required"))
	}

	report := h.engine.Interpret(c.Context(), req.Mensaje)
	return c.JSON(types.ChatResponse{Respuesta: report})
}
