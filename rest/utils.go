package rest

import (
	"context"
	stderrors "errors"
	"feedcore/domain"
	"feedcore/utils/errors"
	"feedcore/utils/logger"
	"feedcore/utils/relay"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// handleError converts errors to HTTP responses, enriched with REST context.
func handleError(c echo.Context, err error, operation string) error {
	requestContext := map[string]interface{}{
		"path":       c.Request().URL.Path,
		"method":     c.Request().Method,
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	}

	var enrichedErr *errors.AppContextError
	var appContextErr *errors.AppContextError
	if stderrors.As(err, &appContextErr) {
		enrichedErr = errors.EnrichWithContext(appContextErr, "rest", "RESTHandler", operation, requestContext)
	} else if stderrors.Is(err, context.DeadlineExceeded) {
		enrichedErr = errors.NewOperationTimeoutError("rest", "RESTHandler", operation, err, requestContext)
	} else {
		enrichedErr = errors.NewUnknownContextError("internal server error", "rest", "RESTHandler", operation, err, requestContext)
	}

	ctx := c.Request().Context()
	log := logger.Logger.ErrorContext
	if enrichedErr.HTTPStatusCode() < http.StatusInternalServerError {
		log = logger.Logger.WarnContext
	}
	log(ctx, "REST handler error",
		"error", enrichedErr.Error(),
		"error_code", enrichedErr.Code,
		"operation", enrichedErr.Operation,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"is_retryable", enrichedErr.IsRetryable(),
	)

	return c.JSON(enrichedErr.HTTPStatusCode(), enrichedErr.ToHTTPResponse())
}

// handleValidationError creates a validation error response
func handleValidationError(c echo.Context, message string, field string, value interface{}) error {
	validationErr := errors.NewValidationContextError(
		message,
		"rest",
		"RESTHandler",
		"validateInput",
		map[string]interface{}{
			"field":      field,
			"value":      value,
			"path":       c.Request().URL.Path,
			"method":     c.Request().Method,
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		},
	)

	logger.Logger.WarnContext(c.Request().Context(), "REST validation error",
		"field", field,
		"value", value,
		"path", c.Request().URL.Path,
	)
	return c.JSON(validationErr.HTTPStatusCode(), validationErr.ToHTTPResponse())
}

// parsePaging reads limit and offset. Absent values are zero, and a zero
// limit means no cap.
func parsePaging(c echo.Context) (limit, offset int, field string, ok bool) {
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, 0, "limit", false
		}
		limit = n
	}
	if raw := c.QueryParam("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, 0, "offset", false
		}
		offset = n
	}
	return limit, offset, "", true
}

// relayResponse streams an upstream body to the client. Once the status line
// is out a failure can only be signalled by dropping the connection, so a
// committed relay that fails aborts the handler.
func relayResponse(c echo.Context, r *relay.StreamRelay, resp *domain.UpstreamResponse, prepare func(http.Header), operation string) error {
	ctx := c.Request().Context()
	res, err := r.Relay(ctx, c.Response(), resp, prepare)
	if err == nil {
		return nil
	}

	if res.Committed {
		logger.Logger.WarnContext(ctx, "aborting partially relayed response",
			"operation", operation,
			"written", res.Written,
			"error", err,
		)
		panic(http.ErrAbortHandler)
	}

	if stderrors.Is(err, context.Canceled) {
		logger.Logger.InfoContext(ctx, "client went away before relay started", "operation", operation)
		return nil
	}
	return handleError(c, err, operation)
}
