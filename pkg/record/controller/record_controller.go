package controller

import "github.com/labstack/echo/v4"

type RecordController interface {
	ListRecent(c echo.Context) error
	ListAll(c echo.Context) error
	Manage(c echo.Context) error
	Create(c echo.Context) error
	Get(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}
