package handlers_fiber

import (
	"net/http"

	"loopedin/internal/mapper"
	"loopedin/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetStats returns dashboard aggregates; admin only.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIStats(stats))
}

// GetLoopStats returns activity aggregates for one loop.
func (h *Handler) GetLoopStats(c *fiber.Ctx) error {
	loopID, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	stats, err := h.uc.LoopStats(c.Context(), middleware.SessionFrom(c), loopID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPILoopStats(stats))
}
