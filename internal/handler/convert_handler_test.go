package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eolymp/go-texmath"
	"github.com/eolymp/go-texmath/internal/config"
	"github.com/eolymp/go-texmath/internal/handler"
	"github.com/eolymp/go-texmath/internal/render"
	"github.com/eolymp/go-texmath/internal/server"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingConverter struct{}

func (failingConverter) Convert(context.Context, render.Request) (*render.Result, error) {
	return nil, errors.New("storage is down")
}

func newApp(converter handler.Converter) *fiber.App {
	cfg := &config.Config{App: config.AppConfig{Port: "0", CorsAllowedOrigins: "*"}}
	return server.New(cfg, handler.NewConvertHandler(converter, nil), nil).GetApp()
}

func post(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/convert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &out), string(data))

	return resp.StatusCode, out
}

func TestConvert(t *testing.T) {
	app := newApp(render.New(texmath.Options{}, time.Minute, nil, nil))

	tt := []struct {
		name   string
		body   string
		status int
		check  func(t *testing.T, out map[string]any)
	}{
		{
			name:   "converts expression",
			body:   `{"source":"x^2","display_mode":true}`,
			status: fiber.StatusOK,
			check: func(t *testing.T, out map[string]any) {
				assert.Contains(t, out["mathml"], "<msup>")
				assert.Contains(t, out["mathml"], `display="block"`)
				assert.NotEmpty(t, out["request_id"])
			},
		},
		{
			name:   "reports parse error position",
			body:   `{"source":"a^b^c","throw_on_error":true}`,
			status: fiber.StatusUnprocessableEntity,
			check: func(t *testing.T, out map[string]any) {
				assert.Equal(t, "Double superscript", out["error"])
				assert.Equal(t, float64(3), out["position"])
			},
		},
		{
			name:   "renders error inline by default",
			body:   `{"source":"a^b^c"}`,
			status: fiber.StatusOK,
			check: func(t *testing.T, out map[string]any) {
				assert.Contains(t, out["mathml"], "<merror")
			},
		},
		{
			name:   "requires source",
			body:   `{}`,
			status: fiber.StatusBadRequest,
		},
		{
			name:   "rejects malformed body",
			body:   `{"source":`,
			status: fiber.StatusBadRequest,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			status, out := post(t, app, tc.body)

			assert.Equal(t, tc.status, status)
			if tc.check != nil {
				tc.check(t, out)
			}
		})
	}
}

func TestConvertServiceFailure(t *testing.T) {
	status, out := post(t, newApp(failingConverter{}), `{"source":"x"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "storage is down", out["error"])
}

func TestHealth(t *testing.T) {
	resp, err := newApp(failingConverter{}).Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPreviewRequiresUpgrade(t *testing.T) {
	resp, err := newApp(failingConverter{}).Test(httptest.NewRequest("GET", "/ws/preview", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
