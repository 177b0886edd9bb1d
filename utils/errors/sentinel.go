package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors usable with errors.Is() across layers.
var (
	ErrInvalidTarget       = errors.New("invalid target")
	ErrInvalidInput        = errors.New("invalid input")
	ErrPrivateHost         = errors.New("private host")
	ErrMediaHostNotAllowed = errors.New("media host not allowed")
	ErrFeedNotFound        = errors.New("feed not found")
	ErrSizeLimitExceeded   = errors.New("size limit exceeded")
	ErrBatchTooLarge       = errors.New("batch too large")
	ErrRateLimitExceeded   = errors.New("rate limit exceeded")
	ErrFetch               = errors.New("upstream fetch failed")
	ErrMalformedUpstream   = errors.New("malformed upstream body")
	ErrOperationTimeout    = errors.New("operation timeout")
	ErrDatabaseUnavailable = errors.New("database unavailable")
)

// wrap builds a cause chain that keeps both the sentinel and the original cause.
func wrap(sentinel, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %w", sentinel, cause)
	}
	return fmt.Errorf("%w", sentinel)
}

func IsInvalidTarget(err error) bool { return errors.Is(err, ErrInvalidTarget) }

func IsPrivateHost(err error) bool { return errors.Is(err, ErrPrivateHost) }

func IsFeedNotFound(err error) bool { return errors.Is(err, ErrFeedNotFound) }

func IsSizeLimitExceeded(err error) bool { return errors.Is(err, ErrSizeLimitExceeded) }

func IsRateLimitError(err error) bool { return errors.Is(err, ErrRateLimitExceeded) }

func IsFetchError(err error) bool { return errors.Is(err, ErrFetch) }

func IsTimeoutError(err error) bool { return errors.Is(err, ErrOperationTimeout) }

func IsMalformedUpstream(err error) bool { return errors.Is(err, ErrMalformedUpstream) }

// IsRetryableError reports whether the caller may retry with backoff.
func IsRetryableError(err error) bool {
	return IsRateLimitError(err) || IsTimeoutError(err) || IsFetchError(err)
}

// NewInvalidTargetError rejects a URL before any network I/O.
func NewInvalidTargetError(layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeInvalidTarget, "invalid target URL", layer, component, operation, wrap(ErrInvalidTarget, cause), context)
}

// NewPrivateHostError signals that the SSRF guard tripped.
func NewPrivateHostError(layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodePrivateHost, "target resolves to a private or reserved address", layer, component, operation, wrap(ErrPrivateHost, cause), context)
}

func NewMediaHostNotAllowedError(layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeMediaHostNotAllowed, "media host not allowed for this feed", layer, component, operation, wrap(ErrMediaHostNotAllowed, nil), context)
}

func NewFeedNotFoundError(layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeFeedNotFound, "feed not found", layer, component, operation, wrap(ErrFeedNotFound, nil), context)
}

func NewSizeLimitExceededError(layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeSizeLimitExceeded, "response exceeds size limit", layer, component, operation, wrap(ErrSizeLimitExceeded, nil), context)
}

func NewBatchTooLargeError(layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeBatchTooLarge, "batch exceeds item limit", layer, component, operation, wrap(ErrBatchTooLarge, nil), context)
}

func NewRateLimitExceededError(layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeRateLimit, "rate limit exceeded", layer, component, operation, wrap(ErrRateLimitExceeded, nil), context)
}

// NewFetchError covers transport failures and non-success upstream statuses.
func NewFetchError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeFetch, message, layer, component, operation, wrap(ErrFetch, cause), context)
}

func NewMalformedUpstreamError(layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeMalformedUpstream, "upstream feed could not be parsed", layer, component, operation, wrap(ErrMalformedUpstream, cause), context)
}

func NewOperationTimeoutError(layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeTimeout, "operation timeout", layer, component, operation, wrap(ErrOperationTimeout, cause), context)
}
