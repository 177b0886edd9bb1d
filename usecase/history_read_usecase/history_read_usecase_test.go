package history_read_usecase

import (
	"context"
	"testing"
	"time"

	"feedcore/domain"
	"feedcore/mocks"
	"feedcore/utils/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHistoryReadUsecase_Execute(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cutoff := now.Add(-30 * 24 * time.Hour)

	t.Run("page and full total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sources := mocks.NewMockFeedSourcePort(ctrl)
		history := mocks.NewMockHistoryPort(ctrl)

		page := []*domain.HistoryItem{{GUID: "21"}, {GUID: "22"}}
		sources.EXPECT().FindFeedSource(gomock.Any(), "blog").Return(&domain.FeedSource{ID: "blog"}, nil)
		history.EXPECT().ListHistory(gomock.Any(), "blog", cutoff, 10, 20).Return(page, nil)
		history.EXPECT().CountHistory(gomock.Any(), "blog", cutoff).Return(57, nil)

		u := NewHistoryReadUsecase(sources, history, 30*24*time.Hour)
		u.now = func() time.Time { return now }

		got, err := u.Execute(context.Background(), "blog", 10, 20)
		require.NoError(t, err)
		assert.Equal(t, page, got.Items)
		assert.Equal(t, 57, got.Total)
	})

	t.Run("negative paging is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		u := NewHistoryReadUsecase(mocks.NewMockFeedSourcePort(ctrl), mocks.NewMockHistoryPort(ctrl), 0)

		_, err := u.Execute(context.Background(), "blog", -1, 0)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
		_, err = u.Execute(context.Background(), "blog", 0, -5)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("unknown feed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sources := mocks.NewMockFeedSourcePort(ctrl)
		sources.EXPECT().FindFeedSource(gomock.Any(), "nope").
			Return(nil, errors.NewFeedNotFoundError("gateway", "FeedSourceGateway", "FindFeedSource", nil))

		_, err := NewHistoryReadUsecase(sources, mocks.NewMockHistoryPort(ctrl), 0).Execute(context.Background(), "nope", 0, 0)
		assert.ErrorIs(t, err, errors.ErrFeedNotFound)
	})

	t.Run("count failure surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sources := mocks.NewMockFeedSourcePort(ctrl)
		history := mocks.NewMockHistoryPort(ctrl)

		sources.EXPECT().FindFeedSource(gomock.Any(), "blog").Return(&domain.FeedSource{ID: "blog"}, nil)
		history.EXPECT().ListHistory(gomock.Any(), "blog", gomock.Any(), 0, 0).Return([]*domain.HistoryItem{}, nil)
		history.EXPECT().CountHistory(gomock.Any(), "blog", gomock.Any()).
			Return(0, errors.NewDatabaseContextError("failed to count history", "gateway", "HistoryGateway", "CountHistory", nil, nil))

		_, err := NewHistoryReadUsecase(sources, history, 0).Execute(context.Background(), "blog", 0, 0)
		assert.ErrorIs(t, err, errors.ErrDatabaseUnavailable)
	})
}
