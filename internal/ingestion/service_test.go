package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raulgutierrezyuno/ZenithPay/internal/repository"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := repository.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(repository.NewTransactionRepo(db))
}

func TestImportFeedJSON(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.ImportFeed([]byte(validJSONFeed), "json")
	require.NoError(t, err)

	assert.Equal(t, 2, res.RecordsParsed)
	assert.Equal(t, 2, res.RecordsImported)
	assert.Zero(t, res.DuplicatesSkipped)
	assert.False(t, res.AlreadyImported)
}

func TestImportFeedSameFileSkipped(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ImportFeed([]byte(validCSVFeed), "csv")
	require.NoError(t, err)

	res, err := svc.ImportFeed([]byte(validCSVFeed), "csv")
	require.NoError(t, err)
	assert.True(t, res.AlreadyImported)
	assert.Zero(t, res.RecordsImported)
}

func TestImportFeedDuplicateRecordsAcrossFeeds(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ImportFeed([]byte(validJSONFeed), "json")
	require.NoError(t, err)

	// Different bytes, overlapping ids: row-level dedupe kicks in.
	overlapping := validCSVFeed
	res, err := svc.ImportFeed([]byte(overlapping), "csv")
	require.NoError(t, err)
	assert.Equal(t, 2, res.RecordsParsed)
	assert.Zero(t, res.RecordsImported)
	assert.Equal(t, 2, res.DuplicatesSkipped)
}

func TestImportFeedUnsupportedFormat(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ImportFeed([]byte("{}"), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
