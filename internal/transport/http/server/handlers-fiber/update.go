package handlers_fiber

import (
	"net/http"

	"loopedin/internal/api"
	"loopedin/internal/mapper"
	"loopedin/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetUpdates lists a loop's updates.
func (h *Handler) GetUpdates(c *fiber.Ctx) error {
	loopID, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	updates, err := h.uc.UpdatesForLoop(c.Context(), loopID)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(struct {
		Updates []api.Update `json:"updates"`
	}{Updates: mapper.ToAPIUpdateList(updates)})
}

// DeleteUpdate removes an update; permitted for the author or loop creator.
func (h *Handler) DeleteUpdate(c *fiber.Ctx) error {
	updateID, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.DeleteUpdate(c.Context(), middleware.SessionFrom(c), updateID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
