package controllerImp

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"evergraze/pkg/apperr"
	"evergraze/pkg/export/controller"
	"evergraze/pkg/export/service"
)

type ExportCtrl struct{ s service.ExportService }

var _ controller.ExportController = (*ExportCtrl)(nil)

func New(s service.ExportService) *ExportCtrl { return &ExportCtrl{s} }

func (h *ExportCtrl) Workbook(c echo.Context) error {
	art, err := h.s.Workbook(c.Request().Context(), c.Param("animal_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return attachment(c, art)
}

func (h *ExportCtrl) Document(c echo.Context) error {
	art, err := h.s.Document(c.Request().Context(), c.Param("animal_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return attachment(c, art)
}

// Select redirects the export form (animal_id + export_type) to the matching download.
func (h *ExportCtrl) Select(c echo.Context) error {
	animalID := strings.TrimSpace(c.FormValue("animal_id"))
	if animalID == "" {
		return writeErr(c, apperr.Validation("animal_id is required"))
	}
	var target string
	switch strings.ToLower(c.FormValue("export_type")) {
	case "pdf":
		target = "/export/pdf/"
	case "excel", "xlsx":
		target = "/export/excel/"
	default:
		return writeErr(c, apperr.Validation("export_type must be pdf or excel"))
	}
	return c.Redirect(http.StatusSeeOther, target+url.PathEscape(animalID))
}

func attachment(c echo.Context, art *service.Artifact) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", art.Name))
	return c.Blob(http.StatusOK, art.ContentType, art.Data)
}

func writeErr(c echo.Context, err error) error {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
