package utils_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/mrnewton/activity-api/internal/utils"
)

func perform(t *testing.T, handler fiber.Handler) (int, utils.APIResponse) {
	t.Helper()

	app := fiber.New()
	app.Get("/test", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload utils.APIResponse
	require.NoError(t, json.Unmarshal(raw, &payload))

	return resp.StatusCode, payload
}

func TestSendSuccess(t *testing.T) {
	status, payload := perform(t, func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "done", map[string]string{"key": "value"})
	})

	require.Equal(t, http.StatusOK, status)
	require.True(t, payload.Success)
	require.Equal(t, "done", payload.Message)
	require.Nil(t, payload.Errors)
}

func TestSendSuccessWithStatus(t *testing.T) {
	status, payload := perform(t, func(c *fiber.Ctx) error {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "created", nil)
	})

	require.Equal(t, http.StatusCreated, status)
	require.True(t, payload.Success)
	require.Equal(t, "created", payload.Message)
}

func TestSendSuccessDefaultsMessage(t *testing.T) {
	_, payload := perform(t, func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "", nil)
	})

	require.Equal(t, "success", payload.Message)
}

func TestSendError(t *testing.T) {
	status, payload := perform(t, func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusNotFound, "missing")
	})

	require.Equal(t, http.StatusNotFound, status)
	require.False(t, payload.Success)
	require.Equal(t, "missing", payload.Message)
}

func TestSendValidationErrorCarriesAllMessages(t *testing.T) {
	violations := map[string][]string{
		"grade": {"school grade must be 10, 11 or 12"},
		"exercises": {
			"exercise 1 must include a question",
			"exercise 2 must define correct_answer",
		},
	}

	status, payload := perform(t, func(c *fiber.Ctx) error {
		return utils.SendValidationError(c, violations)
	})

	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, payload.Success)
	require.Equal(t, "activity configuration is invalid", payload.Message)
	require.Equal(t, violations, payload.Errors)
}
