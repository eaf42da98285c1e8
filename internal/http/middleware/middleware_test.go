package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(RequestIDLocalKey).(string))
	})

	t.Run("generates an id when absent", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest("GET", "/test", nil))

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		header := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, header)

		// Handlers see the same id that goes out on the wire
		body := new(bytes.Buffer)
		body.ReadFrom(resp.Body)
		assert.Equal(t, header, body.String())
	})

	t.Run("propagates an incoming id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, "upstream-id-42")

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "upstream-id-42", resp.Header.Get(RequestIDHeader))

		body := new(bytes.Buffer)
		body.ReadFrom(resp.Body)
		assert.Equal(t, "upstream-id-42", body.String())
	})
}

func TestNoop(t *testing.T) {
	app := fiber.New()
	app.Use(Noop())

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := new(bytes.Buffer)
	body.ReadFrom(resp.Body)
	assert.Equal(t, "ok", body.String())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	// request_id in the log line comes from the RequestID middleware
	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, time.UTC))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.NotEmpty(t, line["request_id"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/test", line["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), line["status"])
	assert.NotNil(t, line["latency"])
	assert.NotEmpty(t, line["ts"])
}
