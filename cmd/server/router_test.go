package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/growthcast-api/internal/api"
	"github.com/phrazzld/growthcast-api/internal/config"
	"github.com/phrazzld/growthcast-api/internal/platform/logger"
	"github.com/phrazzld/growthcast-api/internal/platform/migrations"
	"github.com/phrazzld/growthcast-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the application against a migrated SQLite file.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Server:   config.ServerConfig{Port: 8080, LogLevel: "debug"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, URL: filepath.Join(t.TempDir(), "growthcast.db")},
		Prediction: config.PredictionConfig{
			DefaultMonths:         3,
			MaxMonths:             12,
			NutritionWindowMonths: 3,
		},
	}
	l, _ := logger.NewTestLogger()
	ctx := logger.WithLogger(context.Background(), l)

	db, src, err := openDatabase(ctx, cfg.Database, l)
	require.NoError(t, err)
	require.NoError(t, migrations.Run(ctx, db, src, migrations.CommandUp))

	app, err := newApplication(cfg, l, db)
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(func() {
		srv.Close()
		app.cleanup()
	})
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "growthcast_http_requests_total")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestChildLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/children", `{"name":"Ada","birth_date":"2024-01-01"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var child api.ChildResponse
	decode(t, resp, &child)
	require.NotEmpty(t, child.ID)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

	base := "/api/children/" + child.ID

	resp = do(t, srv, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("ETag"))

	logs := []string{
		`{"date":"2024-01-01","weight_kg":3.3,"height_cm":49.9,"head_cm":34.5}`,
		`{"date":"2024-02-01","weight_kg":4.5,"height_cm":54.7,"head_cm":37.3}`,
		`{"date":"2024-03-01","weight_kg":5.6,"height_cm":58.4,"head_cm":39.1}`,
	}
	for _, l := range logs {
		resp = do(t, srv, http.MethodPost, base+"/growth-logs", l)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp = do(t, srv, http.MethodPost, base+"/growth-logs", logs[0])
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, base+"/nutrition-logs", `{"date":"2024-03-01","deficiencies":["iron"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, base+"/growth-logs", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var measured []api.GrowthLogResponse
	decode(t, resp, &measured)
	require.Len(t, measured, 3)
	require.NotNil(t, measured[2].Percentiles)
	assert.Equal(t, 2, *measured[2].AgeMonths)
	assert.InDelta(t, 50, measured[2].Percentiles.Weight, 1e-9)

	resp = do(t, srv, http.MethodGet, base+"/predictions?months=2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var forecast service.Forecast
	decode(t, resp, &forecast)
	assert.Equal(t, 2, forecast.Months)
	require.Len(t, forecast.Predictions, 2)
	assert.Equal(t, 3, forecast.Predictions[0].AgeMonths)
	assert.NotEmpty(t, forecast.Predictions[0].Assessment.Status)
	require.NotNil(t, forecast.DataThrough)

	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)
	req, err := http.NewRequest(http.MethodGet, srv.URL+base+"/predictions?months=2", nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)
	cached, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer cached.Body.Close()
	assert.Equal(t, http.StatusNotModified, cached.StatusCode, "unchanged records keep the same ETag")

	resp = do(t, srv, http.MethodGet, base+"/predictions?months=0", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, base+"/predictions?months=13", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/children/00000000-0000-0000-0000-000000000001/predictions", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResponsesAreCompressed(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"birth_date": "2024-01-01",
		"months": 6,
		"now": "2024-03-15T00:00:00Z",
		"growth_logs": [
			{"date": "2024-01-01", "weight_kg": 3.3, "height_cm": 49.9, "head_cm": 34.5},
			{"date": "2024-03-01", "weight_kg": 5.6, "height_cm": 58.4, "head_cm": 39.1}
		]
	}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/predictions", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	zr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)

	var forecast service.Forecast
	require.NoError(t, json.NewDecoder(bytes.NewReader(raw)).Decode(&forecast))
	assert.Len(t, forecast.Predictions, 6)
}

func TestRunMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfgYAML := "server:\n  log_level: error\ndatabase:\n  driver: sqlite\n  url: " + filepath.Join(dir, "growthcast.db") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o600))

	require.NoError(t, run(context.Background(), cfgPath, migrations.CommandUp))
	require.NoError(t, run(context.Background(), cfgPath, migrations.CommandStatus))

	err := run(context.Background(), cfgPath, "sideways")
	assert.ErrorIs(t, err, migrations.ErrUnknownCommand)
}
