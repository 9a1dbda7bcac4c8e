package handlers_fiber

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loopedin/internal/api"
	"loopedin/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorNotFoundMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, entities.ErrLoopNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, api.NOTFOUND, body.Error.Code)
	require.Equal(t, "resource not found", body.Error.Message)
}

func TestWriteErrorMappings(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   api.ErrorCode
	}{
		{name: "invalid", err: entities.ErrInvalidArgument, status: http.StatusBadRequest, code: api.INVALID},
		{name: "unauthorized", err: entities.ErrUnauthorized, status: http.StatusUnauthorized, code: api.UNAUTHORIZED},
		{name: "forbidden", err: entities.ErrForbidden, status: http.StatusForbidden, code: api.FORBIDDEN},
		{name: "no_memberships", err: entities.ErrNoMemberships, status: http.StatusNotFound, code: api.NOMEMBERSHIPS},
		{name: "unknown_token", err: entities.ErrUnknownLoopToken, status: http.StatusBadRequest, code: api.UNKNOWNTOKEN},
		{name: "user_exists", err: entities.ErrUserExists, status: http.StatusConflict, code: api.CONFLICT},
		{name: "membership_exists", err: entities.ErrMembershipExists, status: http.StatusConflict, code: api.CONFLICT},
		{name: "no_updates", err: entities.ErrNoUpdates, status: http.StatusBadRequest, code: api.NOUPDATES},
		{name: "invalid_transition", err: entities.ErrInvalidTransition, status: http.StatusConflict, code: api.INVALIDTRANSITION},
		{name: "generation", err: entities.ErrGeneration, status: http.StatusInternalServerError, code: api.GENERATIONFAILED},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)

			var body api.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tt.code, body.Error.Code)
		})
	}
}
