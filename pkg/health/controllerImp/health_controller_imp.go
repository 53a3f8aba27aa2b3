package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"evergraze/pkg/export/sink"
)

var appStart = time.Now()

type check struct {
	OK     bool   `json:"ok"`
	Err    string `json:"err,omitempty"`
	Driver string `json:"driver,omitempty"`
}

type HealthCtrl struct {
	db  *gorm.DB
	out sink.Sink
}

func NewHealthCtrl(db *gorm.DB, out sink.Sink) *HealthCtrl {
	return &HealthCtrl{db: db, out: out}
}

// Health pings the database and asks the export sink whether it can take files.
// Either failing answers 503.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.checkDB(ctx)
	exp := h.checkSink(ctx)

	status := http.StatusOK
	if !db.OK || !exp.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": db.OK && exp.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": db,
			"export":   exp,
		},
		"time": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) checkDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

func (h *HealthCtrl) checkSink(ctx context.Context) check {
	if h.out == nil {
		return check{Err: "no export sink"}
	}
	if err := h.out.Check(ctx); err != nil {
		return check{Err: err.Error(), Driver: h.out.Driver()}
	}
	return check{OK: true, Driver: h.out.Driver()}
}
