package rest

import (
	"feedcore/config"
	"feedcore/di"
	"feedcore/utils/relay"
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerMediaRoutes(v1 *echo.Group, container *di.ApplicationComponents, cfg *config.Config) {
	mediaRelay := relay.NewStreamRelay("media_proxy", cfg.MediaProxy.MaxBytes, cfg.MediaProxy.ChunkSize)
	v1.GET("/media/proxy", handleMediaProxy(container, mediaRelay, cfg.MediaProxy.CacheControl))
}

func handleMediaProxy(container *di.ApplicationComponents, mediaRelay *relay.StreamRelay, cacheControl string) echo.HandlerFunc {
	return func(c echo.Context) error {
		feedID := c.QueryParam("feed")
		if feedID == "" {
			return handleValidationError(c, "feed is required", "feed", feedID)
		}

		resp, err := container.MediaProxyUsecase.Execute(c.Request().Context(), feedID, c.QueryParam("url"))
		if err != nil {
			return handleError(c, err, "proxy_media")
		}

		return relayResponse(c, mediaRelay, resp, func(h http.Header) {
			h.Set("Cache-Control", cacheControl)
			h.Set("Cross-Origin-Resource-Policy", "cross-origin")
			h.Set("Content-Security-Policy", "default-src 'none'; sandbox")
		}, "proxy_media")
	}
}

