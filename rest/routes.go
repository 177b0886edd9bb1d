package rest

import (
	"feedcore/config"
	"feedcore/di"
	middleware_custom "feedcore/middleware"
	"feedcore/utils/logger"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func RegisterRoutes(e *echo.Echo, container *di.ApplicationComponents, cfg *config.Config) {
	// 1. Request ID first so every later log line carries it
	e.Use(middleware_custom.RequestIDMiddleware())

	// 2. Recovery middleware early
	e.Use(middleware.Recover())

	// 3. Security headers
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'none'; img-src 'self'; media-src 'self'",
	}))

	// 4. CORS
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
		MaxAge:       86400,
	}))

	// 5. Request body ceiling for the history write path
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// 6. Tracing, then span status from the final response
	e.Use(otelecho.Middleware(cfg.Telemetry.ServiceName, otelecho.WithSkipper(func(c echo.Context) bool {
		return c.Path() == "/metrics" || c.Path() == "/v1/health"
	})))
	e.Use(middleware_custom.OTelStatusMiddleware())

	// 7. Logging
	e.Use(middleware_custom.LoggingMiddleware(logger.Logger))

	// 8. Compression last; relayed bodies are passed through untouched
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/v1/media/") ||
				strings.HasSuffix(c.Path(), "/raw") ||
				strings.Contains(c.Path(), "/health")
		},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1")
	registerHealthRoutes(v1, container)
	registerFeedRoutes(v1, container, cfg)
	registerMediaRoutes(v1, container, cfg)
	registerHistoryRoutes(v1, container)
}
