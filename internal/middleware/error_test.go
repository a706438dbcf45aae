package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-alerts/internal/domain"
	"org-alerts/internal/middleware"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"Alert not found", fmt.Errorf("load: %w", domain.ErrAlertNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"User not found", domain.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"Pass in progress", domain.ErrPassInProgress, http.StatusConflict, "CONFLICT"},
		{"Bad request", middleware.BadRequest("Invalid alert ID"), http.StatusBadRequest, "BAD_REQUEST"},
		{"Validation failed", middleware.ValidationFailed("audience invalid"), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"Unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body middleware.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.TraceID)
		})
	}
}
