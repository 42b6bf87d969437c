package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jamxon/Korxona/internal/infrastructure/metrics"
)

func TestRecordYShortfall(t *testing.T) {
	m := metrics.New()
	m.Record("reserve", "ok")
	m.Record("reserve", "ok")
	m.Record("consume", "insufficient")
	m.ObserveShortfall("Mato A", decimal.NewFromInt(10))
	m.ObserveShortfall("Mato A", decimal.Zero)

	n, err := testutil.GatherAndCount(m.Registry(), "korxona_material_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = testutil.GatherAndCount(m.Registry(), "korxona_material_shortfall_units_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMiddlewareYHandler(t *testing.T) {
	m := metrics.New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/warehouse", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/warehouse", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `korxona_http_requests_total{method="GET",route="/api/warehouse",status="200"} 1`)
}
