package domain

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ResolvedTarget is the validated destination of one outbound request.
// It only lives for the request that produced it.
type ResolvedTarget struct {
	OriginalURL     *url.URL
	Hostname        string
	ResolvedAddress string
	Port            string
	Protocol        string
}

// FetchOptions controls one outbound request.
type FetchOptions struct {
	Timeout time.Duration
	Method  string
	Headers http.Header
}

// UpstreamResponse is a successful (or redirecting) upstream response whose
// body has not been read yet. Callers must close Body.
type UpstreamResponse struct {
	StatusCode    int
	Header        http.Header
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
	Location      string
	FinalURL      string
}

// IsRedirect reports whether the response asks the caller to follow Location.
func (r *UpstreamResponse) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400 && r.Location != ""
}

// MaxExcerptBytes bounds the upstream body kept for diagnostics.
const MaxExcerptBytes = 200

// UpstreamStatusError carries a non-success upstream status and a short excerpt.
type UpstreamStatusError struct {
	StatusCode int
	URL        string
	Excerpt    string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.URL, e.StatusCode)
}

// HopCheck is consulted for every URL a fetch visits, including redirect
// targets. A non-nil error stops the fetch.
type HopCheck func(u *url.URL) error
