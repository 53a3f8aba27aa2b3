package controller

import "github.com/labstack/echo/v4"

type ExportController interface {
	Workbook(c echo.Context) error
	Document(c echo.Context) error
	Select(c echo.Context) error
}
