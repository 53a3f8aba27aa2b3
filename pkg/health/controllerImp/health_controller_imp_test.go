package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evergraze/database"
	"evergraze/pkg/export/sink"
)

type healthBody struct {
	Status struct {
		OK bool `json:"ok"`
	} `json:"status"`
	Checks map[string]check `json:"checks"`
}

func getHealth(t *testing.T, h *HealthCtrl) (int, healthBody) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, h.Health(c))
	var body healthBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthReportsSinkFailure(t *testing.T) {
	dir := t.TempDir()
	db, err := database.Bootstrap(filepath.Join(dir, "farm.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	exports := filepath.Join(dir, "exports")
	fs, err := sink.NewFilesystem(exports)
	require.NoError(t, err)
	h := NewHealthCtrl(db, fs)

	code, body := getHealth(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, body.Status.OK)
	assert.Equal(t, check{OK: true, Driver: "fs"}, body.Checks["export"])

	require.NoError(t, os.RemoveAll(exports))
	code, body = getHealth(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, body.Status.OK)
	assert.True(t, body.Checks["database"].OK)
	assert.False(t, body.Checks["export"].OK)
	assert.NotEmpty(t, body.Checks["export"].Err)
}

func TestHealthWithoutDatabase(t *testing.T) {
	code, body := getHealth(t, NewHealthCtrl(nil, sink.NewMemory()))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, body.Checks["database"].OK)
	assert.True(t, body.Checks["export"].OK)
}
