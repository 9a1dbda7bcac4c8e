package handlers_fiber

import (
	"errors"
	"net/http"
	"strconv"

	"loopedin/internal/api"
	"loopedin/internal/entities"

	"github.com/gofiber/fiber/v2"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := api.INTERNAL
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = api.INVALID
		msg = err.Error()
	case errors.Is(err, entities.ErrUnauthorized):
		status = http.StatusUnauthorized
		code = api.UNAUTHORIZED
		msg = "unauthorized"
	case errors.Is(err, entities.ErrForbidden):
		status = http.StatusForbidden
		code = api.FORBIDDEN
		msg = "forbidden"
	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrLoopNotFound),
		errors.Is(err, entities.ErrUpdateNotFound),
		errors.Is(err, entities.ErrNewsletterNotFound):
		status = http.StatusNotFound
		code = api.NOTFOUND
		msg = "resource not found"
	case errors.Is(err, entities.ErrNoMemberships):
		status = http.StatusNotFound
		code = api.NOMEMBERSHIPS
		msg = "sender has no loops"
	case errors.Is(err, entities.ErrUnknownLoopToken):
		status = http.StatusBadRequest
		code = api.UNKNOWNTOKEN
		msg = "loop token matches none of your loops"
	case errors.Is(err, entities.ErrUserExists), errors.Is(err, entities.ErrMembershipExists):
		status = http.StatusConflict
		code = api.CONFLICT
		msg = err.Error()
	case errors.Is(err, entities.ErrNoUpdates):
		status = http.StatusBadRequest
		code = api.NOUPDATES
		msg = "loop has no updates to compile"
	case errors.Is(err, entities.ErrInvalidTransition):
		status = http.StatusConflict
		code = api.INVALIDTRANSITION
		msg = "newsletter status does not permit this action"
	case errors.Is(err, entities.ErrGeneration):
		status = http.StatusInternalServerError
		code = api.GENERATIONFAILED
		msg = "failed to generate newsletter"
	default:
		msg = err.Error()
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code api.ErrorCode, msg string) api.ErrorResponse {
	var resp api.ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = msg
	return resp
}

func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, entities.ErrInvalidArgument
	}
	return id, nil
}
