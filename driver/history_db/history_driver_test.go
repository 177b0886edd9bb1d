package history_db

import (
	"context"
	"errors"
	"feedcore/domain"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var historyRowColumns = []string{
	"feed_id", "guid", "link", "title", "pub_date",
	"content", "description", "thumbnail", "author",
	"enclosure_url", "enclosure_type", "enclosure_length", "feed_title", "last_seen_at",
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *HistoryDBRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, &HistoryDBRepository{pool: mock}
}

func TestDeleteExpiredHistory(t *testing.T) {
	mock, repo := newMockRepo(t)
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(deleteExpiredQuery)).
		WithArgs("feed-1", cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	deleted, err := repo.DeleteExpiredHistory(context.Background(), "feed-1", cutoff)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredHistory_Error(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteExpiredQuery)).
		WithArgs("feed-1", pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.DeleteExpiredHistory(context.Background(), "feed-1", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertHistoryItemIfAbsent_NewRow(t *testing.T) {
	mock, repo := newMockRepo(t)
	seenAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	item := &domain.HistoryItem{
		FeedID:    "feed-1",
		GUID:      "guid-1",
		Link:      "https://example.com/a",
		Title:     "A",
		PubDate:   "Mon, 01 Jan 2024 10:00:00 GMT",
		Enclosure: &domain.Enclosure{URL: "https://cdn.example.com/a.mp3", Type: "audio/mpeg", Length: "123"},
		FeedTitle: "Example",
	}

	mock.ExpectQuery(regexp.QuoteMeta(insertIfAbsentQuery)).
		WithArgs("feed-1", "guid-1", "guid-1", "https://example.com/a", "A", item.PubDate, pgxmock.AnyArg(),
			"", "", "", "", "https://cdn.example.com/a.mp3", "audio/mpeg", "123", "Example", seenAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	added, err := repo.InsertHistoryItemIfAbsent(context.Background(), item, seenAt)
	require.NoError(t, err)
	assert.True(t, added)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertHistoryItemIfAbsent_ExistingRowRefreshesLastSeen(t *testing.T) {
	mock, repo := newMockRepo(t)
	seenAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	item := &domain.HistoryItem{FeedID: "feed-1", Link: "https://example.com/a", Title: "changed title"}

	mock.ExpectQuery(regexp.QuoteMeta(insertIfAbsentQuery)).
		WithArgs("feed-1", "https://example.com/a", "", "https://example.com/a", "changed title", "", pgxmock.AnyArg(),
			"", "", "", "", "", "", "", "", seenAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectExec(regexp.QuoteMeta(refreshLastSeenQuery)).
		WithArgs("feed-1", "https://example.com/a", "", "https://example.com/a", seenAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	added, err := repo.InsertHistoryItemIfAbsent(context.Background(), item, seenAt)
	require.NoError(t, err)
	assert.False(t, added)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertHistoryItemIfAbsent_NoKey(t *testing.T) {
	mock, repo := newMockRepo(t)

	added, err := repo.InsertHistoryItemIfAbsent(context.Background(), &domain.HistoryItem{FeedID: "feed-1", Title: "x"}, time.Now())
	require.Error(t, err)
	assert.False(t, added)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertHistoryItemIfAbsent_InsertError(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertIfAbsentQuery)).
		WillReturnError(errors.New("disk full"))

	_, err := repo.InsertHistoryItemIfAbsent(context.Background(), &domain.HistoryItem{FeedID: "feed-1", GUID: "g"}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert history item")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountHistory(t *testing.T) {
	mock, repo := newMockRepo(t)
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(countHistoryQuery)).
		WithArgs("feed-1", cutoff).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountHistory(context.Background(), "feed-1", cutoff)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListHistory_WithLimit(t *testing.T) {
	mock, repo := newMockRepo(t)
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(historyRowColumns).
		AddRow("feed-1", "guid-2", "https://example.com/b", "B", "2024-02-02T00:00:00Z",
			"", "", "", "", "https://cdn.example.com/b.mp3", "audio/mpeg", "9", "Example", seen).
		AddRow("feed-1", "", "https://example.com/a", "A", "",
			"", "", "", "", "", "", "", "Example", seen)

	mock.ExpectQuery(regexp.QuoteMeta(listHistoryQuery)).
		WithArgs("feed-1", cutoff, 2, 4).
		WillReturnRows(rows)

	items, err := repo.ListHistory(context.Background(), "feed-1", cutoff, 2, 4)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "guid-2", items[0].IdentityKey())
	require.NotNil(t, items[0].Enclosure)
	assert.Equal(t, "audio/mpeg", items[0].Enclosure.Type)
	assert.Equal(t, "https://example.com/a", items[1].IdentityKey())
	assert.Nil(t, items[1].Enclosure)
	assert.True(t, seen.Equal(items[1].LastSeenAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListHistory_ZeroLimitIsUnbounded(t *testing.T) {
	mock, repo := newMockRepo(t)
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(listHistoryUnboundedQuery)).
		WithArgs("feed-1", cutoff, 0).
		WillReturnRows(pgxmock.NewRows(historyRowColumns))

	items, err := repo.ListHistory(context.Background(), "feed-1", cutoff, 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryDriver_NilPool(t *testing.T) {
	repo := &HistoryDBRepository{pool: nil}
	ctx := context.Background()

	_, err := repo.CountHistory(ctx, "feed-1", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database connection not available")

	_, err = repo.ListHistory(ctx, "feed-1", time.Now(), 10, 0)
	require.Error(t, err)

	_, err = repo.InsertHistoryItemIfAbsent(ctx, &domain.HistoryItem{GUID: "g"}, time.Now())
	require.Error(t, err)

	require.Error(t, repo.EnsureSchema(ctx))
	require.Error(t, repo.Ping(ctx))
}
