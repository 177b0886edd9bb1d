package upstream_fetch_gateway

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	stderrors "errors"
	"feedcore/domain"
	"feedcore/gateway/network_guard_gateway"
	"feedcore/utils/errors"
	"feedcore/utils/logger"
	"feedcore/utils/security"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"
)

const defaultFetchTimeout = 15 * time.Second

// ConnectionValidator is a net.Dialer Control hook.
type ConnectionValidator func(network, address string, c syscall.RawConn) error

// Options tunes the transport built for each request.
type Options struct {
	DialTimeout         time.Duration
	TLSHandshakeTimeout time.Duration
	UserAgent           string
}

// UpstreamFetchGateway implements the UpstreamFetchPort interface.
// Every request dials the address the guard pinned, never the hostname.
type UpstreamFetchGateway struct {
	validateConn ConnectionValidator
	opts         Options
	rootCAs      *x509.CertPool
}

func NewUpstreamFetchGateway(validateConn ConnectionValidator, opts Options) *UpstreamFetchGateway {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 10 * time.Second
	}
	if opts.TLSHandshakeTimeout <= 0 {
		opts.TLSHandshakeTimeout = 10 * time.Second
	}
	return &UpstreamFetchGateway{validateConn: validateConn, opts: opts}
}

// Fetch issues a single request. Redirects are returned to the caller, not
// followed. The returned body releases the request deadline when closed.
func (g *UpstreamFetchGateway) Fetch(ctx context.Context, target *domain.ResolvedTarget, opts domain.FetchOptions) (*domain.UpstreamResponse, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if target == nil || target.OriginalURL == nil || target.ResolvedAddress == "" {
		return nil, errors.NewValidationContextError("fetch requires a resolved target", "gateway", "UpstreamFetchGateway", "Fetch", nil)
	}

	rawURL := target.OriginalURL.String()
	// The pinned address is logged, never returned; error context reaches clients.
	errCtx := map[string]interface{}{
		"url": rawURL,
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)

	req, err := http.NewRequestWithContext(reqCtx, method, rawURL, nil)
	if err != nil {
		cancel()
		return nil, errors.NewFetchError("failed to create HTTP request", "gateway", "UpstreamFetchGateway", "create_request", err, errCtx)
	}
	for key, values := range opts.Headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if req.Header.Get("User-Agent") == "" && g.opts.UserAgent != "" {
		req.Header.Set("User-Agent", g.opts.UserAgent)
	}
	req.Host = target.OriginalURL.Host

	resp, err := g.clientFor(target).Do(req)
	if err != nil {
		cancel()
		logFailure(ctx, target, rawURL, err)
		return nil, g.classify(ctx, reqCtx, target, err, errCtx, timeout)
	}

	upstream := &domain.UpstreamResponse{
		StatusCode:    resp.StatusCode,
		Header:        resp.Header,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		FinalURL:      rawURL,
	}

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		if loc, locErr := resp.Location(); locErr == nil {
			_ = resp.Body.Close()
			cancel()
			upstream.Location = loc.String()
			upstream.Body = http.NoBody
			upstream.ContentLength = 0
			return upstream, nil
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, domain.MaxExcerptBytes))
		_ = resp.Body.Close()
		cancel()

		statusErr := &domain.UpstreamStatusError{
			StatusCode: resp.StatusCode,
			URL:        rawURL,
			Excerpt:    strings.ToValidUTF8(string(excerpt), ""),
		}
		errCtx["status_code"] = resp.StatusCode
		errCtx["excerpt"] = statusErr.Excerpt
		logFailure(ctx, target, rawURL, statusErr)
		return nil, errors.NewFetchError("upstream returned a non-success status", "gateway", "UpstreamFetchGateway", "http_response", statusErr, errCtx)
	}

	upstream.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return upstream, nil
}

func (g *UpstreamFetchGateway) classify(parent, reqCtx context.Context, target *domain.ResolvedTarget, err error, errCtx map[string]interface{}, timeout time.Duration) error {
	if security.IsGuardRejection(err) {
		network_guard_gateway.ReportRejection(parent, target.Hostname, err)
		return errors.NewPrivateHostError("gateway", "UpstreamFetchGateway", "dial", err, errCtx)
	}

	var netErr net.Error
	timedOut := stderrors.Is(reqCtx.Err(), context.DeadlineExceeded) ||
		(stderrors.As(err, &netErr) && netErr.Timeout())
	if timedOut && parent.Err() == nil {
		errCtx["timeout"] = timeout.String()
		return errors.NewOperationTimeoutError("gateway", "UpstreamFetchGateway", "http_request", err, errCtx)
	}
	if stderrors.Is(parent.Err(), context.DeadlineExceeded) {
		return errors.NewOperationTimeoutError("gateway", "UpstreamFetchGateway", "http_request", err, errCtx)
	}
	return errors.NewFetchError("HTTP request failed", "gateway", "UpstreamFetchGateway", "http_request", err, errCtx)
}

func logFailure(ctx context.Context, target *domain.ResolvedTarget, rawURL string, err error) {
	logger.NewContextLogger(logger.Logger).WithContext(ctx).WarnContext(ctx, "upstream fetch failed",
		"url", rawURL,
		"host", target.Hostname,
		"resolved_ip", target.ResolvedAddress,
		"error", err,
	)
}

// clientFor builds a single-use client whose dialer ignores the requested
// address and connects to the pinned one. Host header and SNI stay on the
// original hostname so virtual hosting and certificate checks still work.
func (g *UpstreamFetchGateway) clientFor(target *domain.ResolvedTarget) *http.Client {
	dialer := &net.Dialer{
		Timeout: g.opts.DialTimeout,
	}
	if g.validateConn != nil {
		dialer.Control = g.validateConn
	}
	pinned := net.JoinHostPort(target.ResolvedAddress, target.Port)

	transport := &http.Transport{
		Proxy: nil,
		DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, pinned)
		},
		TLSClientConfig: &tls.Config{
			ServerName: target.Hostname,
			MinVersion: tls.VersionTLS12,
			RootCAs:    g.rootCAs,
		},
		TLSHandshakeTimeout:    g.opts.TLSHandshakeTimeout,
		DisableKeepAlives:      true,
		MaxResponseHeaderBytes: 1 << 20,
		ExpectContinueTimeout:  1 * time.Second,
		ForceAttemptHTTP2:      false,
	}

	return &http.Client{
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
