package rest

import (
	"feedcore/config"
	"feedcore/di"
	"feedcore/usecase/feed_items_usecase"
	"feedcore/utils/relay"
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerFeedRoutes(v1 *echo.Group, container *di.ApplicationComponents, cfg *config.Config) {
	feedRelay := relay.NewStreamRelay("feed_raw", cfg.Fetch.FeedMaxBytes, cfg.MediaProxy.ChunkSize)

	feeds := v1.Group("/feeds")
	feeds.GET("/:id/raw", handleFeedRaw(container, feedRelay))
	feeds.GET("/:id/items", handleFeedItems(container))
}

func handleFeedRaw(container *di.ApplicationComponents, feedRelay *relay.StreamRelay) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp, err := container.FeedFetchUsecase.Execute(c.Request().Context(), c.Param("id"))
		if err != nil {
			return handleError(c, err, "fetch_feed_raw")
		}
		return relayResponse(c, feedRelay, resp, func(h http.Header) {
			h.Set("Cache-Control", "no-store")
		}, "fetch_feed_raw")
	}
}

func handleFeedItems(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit, offset, field, ok := parsePaging(c)
		if !ok {
			return handleValidationError(c, field+" must be a non-negative integer", field, c.QueryParam(field))
		}

		page, err := container.FeedItemsUsecase.Execute(c.Request().Context(), feed_items_usecase.Query{
			FeedID: c.Param("id"),
			Limit:  limit,
			Offset: offset,
			Mode:   c.QueryParam("mode"),
		})
		if err != nil {
			return handleError(c, err, "fetch_feed_items")
		}
		return c.JSON(http.StatusOK, page)
	}
}
