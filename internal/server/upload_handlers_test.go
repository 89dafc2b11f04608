package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"regexp"
	"testing"

	"aerohub/internal/featureflags"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUploadHandler(t *testing.T) {
	s := newTestServer(t)
	user := seedUser(t, s, "uploader")

	app := fiber.New()
	app.Post("/api/uploads", authAs(user.ID), s.CreateUpload)

	t.Run("mints key and presigned url", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"content_type": "image/webp"})
		req := httptest.NewRequest("POST", "/api/uploads", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var out struct {
			Key       string `json:"key"`
			UploadURL string `json:"upload_url"`
		}
		decodeBody(t, resp, &out)
		assert.Regexp(t,
			regexp.MustCompile(fmt.Sprintf(`^uploads/%d/[0-9a-f-]{36}\.webp$`, user.ID)),
			out.Key)
		assert.NotEmpty(t, out.UploadURL)
	})

	t.Run("rejects non-image content type", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"content_type": "application/pdf"})
		req := httptest.NewRequest("POST", "/api/uploads", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("kill switch disables uploads", func(t *testing.T) {
		flagged := newTestServer(t)
		flagged.flags = featureflags.NewManager("uploads=off")
		flaggedUser := seedUser(t, flagged, "blocked")

		blockedApp := fiber.New()
		blockedApp.Post("/api/uploads", authAs(flaggedUser.ID), flagged.CreateUpload)

		body, _ := json.Marshal(map[string]string{"content_type": "image/webp"})
		req := httptest.NewRequest("POST", "/api/uploads", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := blockedApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("jpeg maps to jpg extension", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"content_type": "image/jpeg"})
		req := httptest.NewRequest("POST", "/api/uploads", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var out struct {
			Key string `json:"key"`
		}
		decodeBody(t, resp, &out)
		assert.Regexp(t, `\.jpg$`, out.Key)
	})
}

func TestHealthChecks(t *testing.T) {
	s := newTestServer(t)

	app := fiber.New()
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["database"])
	assert.Equal(t, "unavailable", body.Checks["redis"])
}
