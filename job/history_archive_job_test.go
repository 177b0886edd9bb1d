package job

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"feedcore/domain"
	"feedcore/gateway/rate_limiter_gateway"
	"feedcore/mocks"
	"feedcore/utils/rate_limiter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingWriter struct {
	mu      sync.Mutex
	batches map[string][]int
	err     error
}

func (w *recordingWriter) Execute(_ context.Context, identity, feedID string, items []*domain.HistoryItem) (*domain.UpsertResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return nil, w.err
	}
	if identity != ArchiveIdentity {
		return nil, fmt.Errorf("unexpected identity %q", identity)
	}
	w.batches[feedID] = append(w.batches[feedID], len(items))
	return &domain.UpsertResult{Added: len(items), Total: len(items)}, nil
}

func rss(n int) string {
	var b strings.Builder
	b.WriteString(`<rss version="2.0"><channel><title>t</title>`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<item><guid>g-%d</guid><title>%d</title></item>`, i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func ok(body string) *domain.UpstreamResponse {
	return &domain.UpstreamResponse{StatusCode: http.StatusOK, ContentLength: -1, Body: io.NopCloser(strings.NewReader(body))}
}

func TestHistoryArchiveJob_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	sources := mocks.NewMockFeedSourcePort(ctrl)
	fetcher := mocks.NewMockSafeFetchPort(ctrl)
	writer := &recordingWriter{batches: map[string][]int{}}

	sources.EXPECT().ListFeedSources(gomock.Any()).Return([]*domain.FeedSource{
		{ID: "a", RemoteURL: "https://a.example.com/rss"},
		{ID: "b", RemoteURL: "https://b.example.com/rss"},
		{ID: "unset"},
	}, nil)
	fetcher.EXPECT().Fetch(gomock.Any(), "https://a.example.com/rss", gomock.Any(), gomock.Nil()).Return(ok(rss(5)), nil)
	fetcher.EXPECT().Fetch(gomock.Any(), "https://b.example.com/rss", gomock.Any(), gomock.Nil()).Return(ok(rss(1)), nil)

	job := NewHistoryArchiveJob(sources, fetcher, writer, rate_limiter_gateway.NewRateLimiterGateway(nil, rate_limiter.NewHostRateLimiter(0)), ArchiveOptions{MaxBatchItems: 2})
	require.NoError(t, job.Run(context.Background()))

	assert.Equal(t, []int{2, 2, 1}, writer.batches["a"])
	assert.Equal(t, []int{1}, writer.batches["b"])
	assert.NotContains(t, writer.batches, "unset")
}

func TestHistoryArchiveJob_OneFeedFailingDoesNotStopOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	sources := mocks.NewMockFeedSourcePort(ctrl)
	fetcher := mocks.NewMockSafeFetchPort(ctrl)
	writer := &recordingWriter{batches: map[string][]int{}}

	sources.EXPECT().ListFeedSources(gomock.Any()).Return([]*domain.FeedSource{
		{ID: "bad", RemoteURL: "https://bad.example.com/rss"},
		{ID: "garbled", RemoteURL: "https://garbled.example.com/rss"},
		{ID: "good", RemoteURL: "https://good.example.com/rss"},
	}, nil)
	fetcher.EXPECT().Fetch(gomock.Any(), "https://bad.example.com/rss", gomock.Any(), gomock.Any()).
		Return(nil, stderrors.New("connection refused"))
	fetcher.EXPECT().Fetch(gomock.Any(), "https://garbled.example.com/rss", gomock.Any(), gomock.Any()).
		Return(ok("not xml at all"), nil)
	fetcher.EXPECT().Fetch(gomock.Any(), "https://good.example.com/rss", gomock.Any(), gomock.Any()).
		Return(ok(rss(3)), nil)

	err := NewHistoryArchiveJob(sources, fetcher, writer, nil, ArchiveOptions{Concurrency: 1}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 feeds")
	assert.Equal(t, []int{3}, writer.batches["good"])
}

func TestHistoryArchiveJob_ListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sources := mocks.NewMockFeedSourcePort(ctrl)

	sources.EXPECT().ListFeedSources(gomock.Any()).Return(nil, stderrors.New("db down"))

	err := NewHistoryArchiveJob(sources, mocks.NewMockSafeFetchPort(ctrl), &recordingWriter{}, nil, ArchiveOptions{}).Run(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestChunk(t *testing.T) {
	items := make([]*domain.HistoryItem, 5)
	assert.Len(t, chunk(items, 2), 3)
	assert.Len(t, chunk(items, 5), 1)
	assert.Empty(t, chunk(nil, 3))
}

type countingSweeper struct{ calls int }

func (c *countingSweeper) Sweep() int {
	c.calls++
	return 2
}

func TestLimiterSweepJob(t *testing.T) {
	s := &countingSweeper{}
	require.NoError(t, LimiterSweepJob(s)(context.Background()))
	assert.Equal(t, 1, s.calls)
}
