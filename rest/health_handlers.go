package rest

import (
	"feedcore/di"
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerHealthRoutes(v1 *echo.Group, container *di.ApplicationComponents) {
	v1.GET("/health", func(c echo.Context) error {
		status := map[string]string{"status": "ok", "database": "ok"}
		if container.HistoryDBRepository != nil {
			if err := container.HistoryDBRepository.Ping(c.Request().Context()); err != nil {
				status["database"] = "unavailable"
			}
		}
		return c.JSON(http.StatusOK, status)
	})
}
