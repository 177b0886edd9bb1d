package relay

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"feedcore/domain"
	"feedcore/utils/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackingBody struct {
	r      io.Reader
	reads  int
	closed bool
	err    error
}

func (b *trackingBody) Read(p []byte) (int, error) {
	b.reads++
	n, err := b.r.Read(p)
	if err == io.EOF && b.err != nil {
		return n, b.err
	}
	return n, err
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func upstream(body *trackingBody, declared int64) *domain.UpstreamResponse {
	return &domain.UpstreamResponse{
		StatusCode:    http.StatusOK,
		ContentType:   "image/png",
		ContentLength: declared,
		Body:          body,
	}
}

func cacheHeaders(h http.Header) {
	h.Set("Cache-Control", "public, max-age=43200, immutable")
}

func TestRelay_WithinLimit(t *testing.T) {
	payload := bytes.Repeat([]byte("a"), 64)
	body := &trackingBody{r: bytes.NewReader(payload)}
	rec := httptest.NewRecorder()

	res, err := NewStreamRelay("media", 64, 16).Relay(context.Background(), rec, upstream(body, -1), cacheHeaders)
	require.NoError(t, err)

	assert.Equal(t, int64(64), res.Written)
	assert.True(t, res.Committed)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.Bytes())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=43200, immutable", rec.Header().Get("Cache-Control"))
	assert.True(t, body.closed)
}

func TestRelay_DeclaredLengthTooLarge(t *testing.T) {
	body := &trackingBody{r: strings.NewReader("irrelevant")}
	rec := httptest.NewRecorder()

	res, err := NewStreamRelay("media", 50, 16).Relay(context.Background(), rec, upstream(body, 100), cacheHeaders)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSizeLimitExceeded)

	assert.Zero(t, res.Written)
	assert.False(t, res.Committed)
	assert.Zero(t, body.reads, "upstream must not be read")
	assert.Zero(t, rec.Body.Len())
	assert.Empty(t, rec.Header().Get("Cache-Control"))
	assert.True(t, body.closed)
}

func TestRelay_UndeclaredStreamOverCap(t *testing.T) {
	const limit = 64
	const chunk = 16
	body := &trackingBody{r: bytes.NewReader(bytes.Repeat([]byte("b"), limit+1))}
	rec := httptest.NewRecorder()

	res, err := NewStreamRelay("media", limit, chunk).Relay(context.Background(), rec, upstream(body, -1), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSizeLimitExceeded)

	assert.LessOrEqual(t, res.Written, int64(limit+chunk))
	assert.LessOrEqual(t, res.Written, int64(limit))
	assert.Equal(t, res.Written, int64(rec.Body.Len()))
	assert.True(t, res.Committed, "status was already sent; caller must abort the connection")
	assert.True(t, body.closed)
}

func TestRelay_LyingDeclaredLength(t *testing.T) {
	body := &trackingBody{r: bytes.NewReader(bytes.Repeat([]byte("c"), 200))}
	rec := httptest.NewRecorder()

	res, err := NewStreamRelay("media", 50, 32).Relay(context.Background(), rec, upstream(body, 10), nil)
	require.Error(t, err)
	assert.True(t, errors.IsSizeLimitExceeded(err))
	assert.LessOrEqual(t, res.Written, int64(50))
}

func TestRelay_FirstChunkOverCapWritesNothing(t *testing.T) {
	body := &trackingBody{r: bytes.NewReader(bytes.Repeat([]byte("d"), 40))}
	rec := httptest.NewRecorder()

	res, err := NewStreamRelay("media", 10, 32).Relay(context.Background(), rec, upstream(body, -1), cacheHeaders)
	require.Error(t, err)
	assert.False(t, res.Committed)
	assert.Zero(t, rec.Body.Len())
}

func TestRelay_EmptyBody(t *testing.T) {
	body := &trackingBody{r: strings.NewReader("")}
	rec := httptest.NewRecorder()

	res, err := NewStreamRelay("feed", 10, 4).Relay(context.Background(), rec, upstream(body, 0), nil)
	require.NoError(t, err)
	assert.True(t, res.Committed)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRelay_UpstreamReadError(t *testing.T) {
	body := &trackingBody{r: strings.NewReader("partial"), err: stderrors.New("connection reset by peer")}
	rec := httptest.NewRecorder()

	res, err := NewStreamRelay("feed", 1024, 4).Relay(context.Background(), rec, upstream(body, -1), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFetch)
	assert.True(t, res.Committed)
}

func TestRelay_CancelledContext(t *testing.T) {
	body := &trackingBody{r: strings.NewReader("data")}
	rec := httptest.NewRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewStreamRelay("media", 1024, 4).Relay(ctx, rec, upstream(body, -1), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, res.Committed)
	assert.True(t, body.closed)
}
