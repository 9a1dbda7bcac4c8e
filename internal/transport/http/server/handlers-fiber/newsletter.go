package handlers_fiber

import (
	"net/http"

	"loopedin/internal/api"
	"loopedin/internal/entities"
	"loopedin/internal/mapper"
	"loopedin/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// PostCompileNewsletter compiles a draft from the loop's pending updates.
func (h *Handler) PostCompileNewsletter(c *fiber.Ctx) error {
	loopID, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var body api.CompileNewsletterRequest
	if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALID, "invalid body"))
	}

	n, err := h.uc.CompileNewsletter(c.Context(), middleware.SessionFrom(c), loopID, entities.CompileOptions{
		CustomHeader:  body.CustomHeader,
		CustomClosing: body.CustomClosing,
	})
	if err != nil {
		h.log.Errorw("failed to compile newsletter", "error", err.Error(), "loop_id", loopID)
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(struct {
		Newsletter api.Newsletter `json:"newsletter"`
	}{Newsletter: mapper.ToAPINewsletter(*n)})
}

// GetNewslettersForLoop lists a loop's newsletters.
func (h *Handler) GetNewslettersForLoop(c *fiber.Ctx) error {
	loopID, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	newsletters, err := h.uc.NewslettersForLoop(c.Context(), loopID)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(struct {
		Newsletters []api.Newsletter `json:"newsletters"`
	}{Newsletters: mapper.ToAPINewsletterList(newsletters)})
}

// GetNewsletter returns one newsletter by id.
func (h *Handler) GetNewsletter(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	n, err := h.uc.Newsletter(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPINewsletter(*n))
}

// PutNewsletterContent replaces draft content in full.
func (h *Handler) PutNewsletterContent(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var body api.EditNewsletterRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALID, "invalid body"))
	}

	n, err := h.uc.EditNewsletter(c.Context(), middleware.SessionFrom(c), id, body.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPINewsletter(*n))
}

// PostFinalizeNewsletter moves a draft to finalized.
func (h *Handler) PostFinalizeNewsletter(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	n, err := h.uc.FinalizeNewsletter(c.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPINewsletter(*n))
}

// PostSendNewsletter fans the newsletter link out to loop members.
func (h *Handler) PostSendNewsletter(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	n, result, err := h.uc.SendNewsletter(c.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		h.log.Errorw("failed to send newsletter", "error", err.Error(), "newsletter_id", id)
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(struct {
		Newsletter api.Newsletter `json:"newsletter"`
		Result     api.SendResult `json:"result"`
	}{
		Newsletter: mapper.ToAPINewsletter(*n),
		Result: api.SendResult{
			Attempted: result.Attempted,
			Succeeded: result.Succeeded,
			Failed:    result.Failed,
		},
	})
}
