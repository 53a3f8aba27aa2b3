package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	exportController "evergraze/pkg/export/controller"
	"evergraze/pkg/metrics"
	"evergraze/pkg/middleware"
	recordController "evergraze/pkg/record/controller"
)

func New(
	e *echo.Echo,
	recordCtrl recordController.RecordController,
	exportCtrl exportController.ExportController,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog())

	e.GET("/health", healthCtrl.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api")
	api.GET("/manage", recordCtrl.Manage)
	api.GET("/records/:kind", recordCtrl.ListRecent)
	api.GET("/records/:kind/all", recordCtrl.ListAll)
	api.POST("/records/:kind", recordCtrl.Create)
	api.GET("/records/:kind/:id", recordCtrl.Get)
	api.PUT("/records/:kind/:id", recordCtrl.Update)
	api.PATCH("/records/:kind/:id", recordCtrl.Update)
	api.DELETE("/records/:kind/:id", recordCtrl.Delete)

	// form-post routes used by the html pages
	e.GET("/edit/:kind/:id", recordCtrl.Get)
	e.POST("/edit/:kind/:id", recordCtrl.Update)
	e.POST("/delete/:kind/:id", recordCtrl.Delete)

	e.GET("/export/excel/:animal_id", exportCtrl.Workbook)
	e.GET("/export/pdf/:animal_id", exportCtrl.Document)
	e.POST("/export_select", exportCtrl.Select)
	return e
}
