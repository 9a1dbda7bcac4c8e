package handlers_fiber

import (
	"net/http"

	"loopedin/internal/api"
	"loopedin/internal/entities"
	"loopedin/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// PostRegister creates an account and returns a session token.
func (h *Handler) PostRegister(c *fiber.Ctx) error {
	var body api.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALID, "invalid body"))
	}

	user, token, err := h.uc.Register(c.Context(), entities.User{
		PhoneNumber: body.PhoneNumber,
		Email:       body.Email,
		GivenName:   body.GivenName,
		FamilyName:  body.FamilyName,
	}, body.Password)
	if err != nil {
		h.log.Errorw("failed to register", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(api.AuthResponse{
		Token: token,
		User:  mapper.ToAPIUser(*user),
	})
}

// PostLogin verifies credentials and returns a session token.
func (h *Handler) PostLogin(c *fiber.Ctx) error {
	var body api.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALID, "invalid body"))
	}

	user, token, err := h.uc.Login(c.Context(), body.PhoneNumber, body.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(api.AuthResponse{
		Token: token,
		User:  mapper.ToAPIUser(*user),
	})
}
