package controllerImp

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"evergraze/entities"
	"evergraze/pkg/apperr"
	"evergraze/pkg/record/controller"
	"evergraze/pkg/record/service"
)

type RecordCtrl struct{ s service.RecordService }

var _ controller.RecordController = (*RecordCtrl)(nil)

func New(s service.RecordService) *RecordCtrl { return &RecordCtrl{s} }

func (h *RecordCtrl) ListRecent(c echo.Context) error {
	k, err := kindParam(c)
	if err != nil {
		return writeErr(c, err)
	}
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
			return writeErr(c, apperr.Validation("limit must be a non-negative integer"))
		}
	}
	out, err := h.s.ListRecent(c.Request().Context(), k, limit)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecordCtrl) ListAll(c echo.Context) error {
	k, err := kindParam(c)
	if err != nil {
		return writeErr(c, err)
	}
	out, err := h.s.ListAll(c.Request().Context(), k)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecordCtrl) Manage(c echo.Context) error {
	out, err := h.s.Manage(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecordCtrl) Create(c echo.Context) error {
	k, err := kindParam(c)
	if err != nil {
		return writeErr(c, err)
	}
	fields, err := readFields(c)
	if err != nil {
		return writeErr(c, err)
	}
	rec, err := h.s.Create(c.Request().Context(), k, fields)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// Get serves the edit form data: the row plus its column names.
func (h *RecordCtrl) Get(c echo.Context) error {
	k, id, err := kindAndID(c)
	if err != nil {
		return writeErr(c, err)
	}
	rec, err := h.s.Get(c.Request().Context(), k, id)
	if err != nil {
		return writeErr(c, err)
	}
	s, _ := entities.SchemaOf(k)
	return c.JSON(http.StatusOK, echo.Map{
		"kind":    s.Name,
		"columns": append([]string{"id"}, s.ColumnNames()...),
		"record":  rec,
	})
}

func (h *RecordCtrl) Update(c echo.Context) error {
	k, id, err := kindAndID(c)
	if err != nil {
		return writeErr(c, err)
	}
	fields, err := readFields(c)
	if err != nil {
		return writeErr(c, err)
	}
	// edit forms post the id back; it is never writable
	delete(fields, "id")
	rec, err := h.s.Update(c.Request().Context(), k, id, fields)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *RecordCtrl) Delete(c echo.Context) error {
	k, id, err := kindAndID(c)
	if err != nil {
		return writeErr(c, err)
	}
	if err := h.s.Delete(c.Request().Context(), k, id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- helpers ---

func kindParam(c echo.Context) (entities.Kind, error) {
	raw := c.Param("kind")
	k, ok := entities.ParseKind(raw)
	if !ok {
		return 0, apperr.Validation("unknown record kind %q", raw)
	}
	return k, nil
}

func kindAndID(c echo.Context) (entities.Kind, uint, error) {
	k, err := kindParam(c)
	if err != nil {
		return 0, 0, err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, 0, apperr.Validation("invalid id %q", c.Param("id"))
	}
	return k, uint(id), nil
}

// readFields accepts an html form or a flat JSON object of strings/numbers.
func readFields(c echo.Context) (map[string]string, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, echo.MIMEApplicationForm) || strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		form, err := c.FormParams()
		if err != nil {
			return nil, apperr.Validation("bad form: %v", err)
		}
		out := make(map[string]string, len(form))
		for k, v := range form {
			if len(v) > 0 {
				out[k] = v[0]
			}
		}
		return out, nil
	}

	var body map[string]any
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperr.Validation("empty body")
		}
		return nil, apperr.Validation("bad json: %v", err)
	}
	out := make(map[string]string, len(body))
	for k, v := range body {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = t
		case json.Number:
			out[k] = t.String()
		default:
			return nil, apperr.Validation("field %q must be a string or number", k)
		}
	}
	return out, nil
}

func writeErr(c echo.Context, err error) error {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
