package media_proxy_usecase

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"feedcore/domain"
	"feedcore/mocks"
	"feedcore/utils/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

var blogSource = &domain.FeedSource{
	ID:                "blog",
	RemoteURL:         "https://blog.example.com/rss",
	AllowedMediaHosts: []string{"cdn.example.net"},
}

func TestMediaProxyUsecase_Execute(t *testing.T) {
	t.Run("hop check enforces the allowlist", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sources := mocks.NewMockFeedSourcePort(ctrl)
		fetcher := mocks.NewMockSafeFetchPort(ctrl)

		sources.EXPECT().FindFeedSource(gomock.Any(), "blog").Return(blogSource, nil)
		fetcher.EXPECT().Fetch(gomock.Any(), "https://img.cdn.example.net/a.jpg", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, opts domain.FetchOptions, hopCheck domain.HopCheck) (*domain.UpstreamResponse, error) {
				require.NotNil(t, hopCheck)
				assert.NoError(t, hopCheck(&url.URL{Scheme: "https", Host: "img.cdn.example.net"}))
				assert.NoError(t, hopCheck(&url.URL{Scheme: "https", Host: "blog.example.com"}))

				err := hopCheck(&url.URL{Scheme: "https", Host: "evil.example.org"})
				assert.ErrorIs(t, err, errors.ErrMediaHostNotAllowed)

				assert.Contains(t, opts.Headers.Get("Accept"), "image/*")
				return &domain.UpstreamResponse{
					StatusCode:  http.StatusOK,
					ContentType: "image/jpeg",
					Body:        io.NopCloser(strings.NewReader("jpeg")),
				}, nil
			})

		resp, err := NewMediaProxyUsecase(sources, fetcher, 0).Execute(context.Background(), "blog", "https://img.cdn.example.net/a.jpg")
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", resp.ContentType)
	})

	t.Run("missing url", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		_, err := NewMediaProxyUsecase(mocks.NewMockFeedSourcePort(ctrl), mocks.NewMockSafeFetchPort(ctrl), 0).
			Execute(context.Background(), "blog", "")
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("unknown feed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sources := mocks.NewMockFeedSourcePort(ctrl)

		sources.EXPECT().FindFeedSource(gomock.Any(), "nope").
			Return(nil, errors.NewFeedNotFoundError("gateway", "FeedSourceGateway", "FindFeedSource", nil))

		_, err := NewMediaProxyUsecase(sources, mocks.NewMockSafeFetchPort(ctrl), 0).
			Execute(context.Background(), "nope", "https://cdn.example.net/a.jpg")
		assert.ErrorIs(t, err, errors.ErrFeedNotFound)
	})

	t.Run("html response is refused and closed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sources := mocks.NewMockFeedSourcePort(ctrl)
		fetcher := mocks.NewMockSafeFetchPort(ctrl)
		body := &closeTracker{Reader: strings.NewReader("<html>")}

		sources.EXPECT().FindFeedSource(gomock.Any(), "blog").Return(blogSource, nil)
		fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.UpstreamResponse{StatusCode: http.StatusOK, ContentType: "text/html; charset=utf-8", Body: body}, nil)

		_, err := NewMediaProxyUsecase(sources, fetcher, 0).Execute(context.Background(), "blog", "https://cdn.example.net/page")
		assert.ErrorIs(t, err, errors.ErrFetch)
		assert.True(t, body.closed)
	})
}

func TestIsMediaContentType(t *testing.T) {
	tests := map[string]bool{
		"image/png":                  true,
		"image/jpeg; charset=binary": true,
		"audio/mpeg":                 true,
		"video/mp4":                  true,
		"application/octet-stream":   true,
		"image/svg+xml":              false,
		"text/html":                  false,
		"application/json":           false,
		"":                           false,
	}
	for contentType, want := range tests {
		assert.Equal(t, want, IsMediaContentType(contentType), contentType)
	}
}
