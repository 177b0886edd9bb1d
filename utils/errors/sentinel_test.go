package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelConstructors(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name     string
		err      *AppContextError
		sentinel error
		code     string
	}{
		{"invalid target", NewInvalidTargetError("usecase", "SafeFetchUsecase", "parse", cause, nil), ErrInvalidTarget, CodeInvalidTarget},
		{"private host", NewPrivateHostError("usecase", "SafeFetchUsecase", "guard", cause, nil), ErrPrivateHost, CodePrivateHost},
		{"media host", NewMediaHostNotAllowedError("usecase", "MediaProxyUsecase", "allowlist", nil), ErrMediaHostNotAllowed, CodeMediaHostNotAllowed},
		{"feed not found", NewFeedNotFoundError("usecase", "FeedFetchUsecase", "find", nil), ErrFeedNotFound, CodeFeedNotFound},
		{"size limit", NewSizeLimitExceededError("rest", "RESTHandler", "relay", nil), ErrSizeLimitExceeded, CodeSizeLimitExceeded},
		{"batch", NewBatchTooLargeError("usecase", "HistoryUpsertUsecase", "Execute", nil), ErrBatchTooLarge, CodeBatchTooLarge},
		{"rate limit", NewRateLimitExceededError("usecase", "HistoryUpsertUsecase", "Execute", nil), ErrRateLimitExceeded, CodeRateLimit},
		{"fetch", NewFetchError("request failed", "gateway", "UpstreamFetchGateway", "Fetch", cause, nil), ErrFetch, CodeFetch},
		{"malformed", NewMalformedUpstreamError("usecase", "FeedItemsUsecase", "parse", cause, nil), ErrMalformedUpstream, CodeMalformedUpstream},
		{"timeout", NewOperationTimeoutError("gateway", "UpstreamFetchGateway", "Fetch", cause, nil), ErrOperationTimeout, CodeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
			if tt.err.Context == nil {
				t.Error("context should never be nil")
			}
		})
	}
}

func TestSentinelChainKeepsCause(t *testing.T) {
	cause := errors.New("i/o timeout")
	err := NewOperationTimeoutError("gateway", "UpstreamFetchGateway", "Fetch", cause, nil)

	if !errors.Is(err, cause) {
		t.Error("original cause lost from chain")
	}
	if !IsTimeoutError(err) || !IsRetryableError(err) {
		t.Error("timeout should be detected and retryable")
	}
}

func TestIsHelpers_WrappedByFmt(t *testing.T) {
	err := fmt.Errorf("history read: %w", NewFeedNotFoundError("usecase", "HistoryReadUsecase", "Execute", nil))

	if !IsFeedNotFound(err) {
		t.Error("IsFeedNotFound should see through fmt wrapping")
	}
	if IsPrivateHost(err) || IsRetryableError(err) {
		t.Error("unexpected classification")
	}

	var appErr *AppContextError
	if !errors.As(err, &appErr) || appErr.Code != CodeFeedNotFound {
		t.Error("errors.As should recover the AppContextError")
	}
}
