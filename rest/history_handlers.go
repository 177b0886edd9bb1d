package rest

import (
	"feedcore/di"
	"feedcore/domain"
	"feedcore/utils/rate_limiter"
	"net/http"

	"github.com/labstack/echo/v4"
)

type historyUpsertRequest struct {
	Items []*domain.HistoryItem `json:"items"`
}

func registerHistoryRoutes(v1 *echo.Group, container *di.ApplicationComponents) {
	history := v1.Group("/feeds/:id/history")
	history.POST("", handleHistoryUpsert(container))
	history.GET("", handleHistoryRead(container))
}

func handleHistoryUpsert(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req historyUpsertRequest
		if err := c.Bind(&req); err != nil {
			return handleValidationError(c, "request body must be {\"items\": [...]}", "items", nil)
		}

		identity := rate_limiter.ClientIdentity(c.Request())
		result, err := container.HistoryUpsertUsecase.Execute(c.Request().Context(), identity, c.Param("id"), req.Items)
		if err != nil {
			return handleError(c, err, "upsert_history")
		}
		return c.JSON(http.StatusOK, result)
	}
}

func handleHistoryRead(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit, offset, field, ok := parsePaging(c)
		if !ok {
			return handleValidationError(c, field+" must be a non-negative integer", field, c.QueryParam(field))
		}

		page, err := container.HistoryReadUsecase.Execute(c.Request().Context(), c.Param("id"), limit, offset)
		if err != nil {
			return handleError(c, err, "read_history")
		}
		return c.JSON(http.StatusOK, page)
	}
}
