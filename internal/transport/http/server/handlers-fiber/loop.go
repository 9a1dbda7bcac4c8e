package handlers_fiber

import (
	"net/http"

	"loopedin/internal/api"
	"loopedin/internal/entities"
	"loopedin/internal/mapper"
	"loopedin/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// PostLoop creates a loop; the caller becomes its creator and first member.
func (h *Handler) PostLoop(c *fiber.Ctx) error {
	var body api.CreateLoopRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALID, "invalid body"))
	}

	session := middleware.SessionFrom(c)
	loop, err := h.uc.CreateLoop(c.Context(), mapper.FromAPICreateLoop(body, session.UserID))
	if err != nil {
		h.log.Errorw("failed to create loop", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(struct {
		Loop api.Loop `json:"loop"`
	}{Loop: mapper.ToAPILoop(*loop)})
}

// GetMyLoops lists the caller's loops.
func (h *Handler) GetMyLoops(c *fiber.Ctx) error {
	session := middleware.SessionFrom(c)
	loops, err := h.uc.MyLoops(c.Context(), session.UserID)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(struct {
		Loops []api.Loop `json:"loops"`
	}{Loops: mapper.ToAPILoopList(loops)})
}

// GetLoop returns one loop by id.
func (h *Handler) GetLoop(c *fiber.Ctx) error {
	loopID, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	loop, err := h.uc.Loop(c.Context(), loopID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPILoop(*loop))
}

// PostMember adds a member to a loop, creating the user on first contact.
func (h *Handler) PostMember(c *fiber.Ctx) error {
	loopID, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var body api.AddMemberRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALID, "invalid body"))
	}

	member, err := h.uc.AddMember(c.Context(), middleware.SessionFrom(c), loopID, entities.User{
		PhoneNumber: body.PhoneNumber,
		Email:       body.Email,
		GivenName:   body.GivenName,
		FamilyName:  body.FamilyName,
	}, body.Context)
	if err != nil {
		h.log.Errorw("failed to add member", "error", err.Error(), "loop_id", loopID)
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(struct {
		Member api.Member `json:"member"`
	}{Member: mapper.ToAPIMember(*member)})
}

// GetMembers lists loop members.
func (h *Handler) GetMembers(c *fiber.Ctx) error {
	loopID, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	members, err := h.uc.Members(c.Context(), loopID)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(struct {
		Members []api.Member `json:"members"`
	}{Members: mapper.ToAPIMemberList(members)})
}
