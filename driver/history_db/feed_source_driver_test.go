package history_db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var feedSourceColumns = []string{"id", "remote_url", "allowed_media_hosts", "sort_order"}

func TestFindFeedSource(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(findFeedSourceQuery)).
		WithArgs("blog").
		WillReturnRows(pgxmock.NewRows(feedSourceColumns).
			AddRow("blog", "https://blog.example.com/feed.xml", []string{"cdn.example.com"}, 2))

	source, err := repo.FindFeedSource(context.Background(), "blog")
	require.NoError(t, err)
	require.NotNil(t, source)
	assert.Equal(t, "https://blog.example.com/feed.xml", source.RemoteURL)
	assert.Equal(t, []string{"cdn.example.com"}, source.AllowedMediaHosts)
	assert.Equal(t, 2, source.SortOrder)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFeedSource_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(findFeedSourceQuery)).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(feedSourceColumns))

	source, err := repo.FindFeedSource(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, source)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFeedSource_Error(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(findFeedSourceQuery)).
		WithArgs("blog").
		WillReturnError(errors.New("too many connections"))

	_, err := repo.FindFeedSource(context.Background(), "blog")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListFeedSources(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(listFeedSourcesQuery)).
		WillReturnRows(pgxmock.NewRows(feedSourceColumns).
			AddRow("a", "https://a.example.com/rss", []string{}, 0).
			AddRow("b", "https://b.example.com/rss", []string{"img.example.net"}, 1))

	sources, err := repo.ListFeedSources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "a", sources[0].ID)
	assert.Equal(t, "b", sources[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	mock, repo := newMockRepo(t)

	for _, stmt := range schemaStatements {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	}

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_StopsOnFailure(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(schemaStatements[0])).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(regexp.QuoteMeta(schemaStatements[1])).WillReturnError(errors.New("permission denied"))

	err := repo.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema statement 1")
	require.NoError(t, mock.ExpectationsWereMet())
}
