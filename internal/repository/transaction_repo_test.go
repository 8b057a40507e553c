package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raulgutierrezyuno/ZenithPay/internal/domain"
)

func newTestRepo(t *testing.T) *TransactionRepo {
	t.Helper()
	db, err := InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTransactionRepo(db)
}

func sampleTxn(id string, ts time.Time) domain.Transaction {
	return domain.Transaction{
		ID:            id,
		Timestamp:     ts,
		MerchantID:    "merchant_test",
		CustomerID:    "cust_1",
		Amount:        25,
		Currency:      "USD",
		Country:       "US",
		PaymentMethod: "credit_card",
		Processor:     "StripeConnect",
		Status:        domain.StatusApproved,
		BIN:           "411111",
	}
}

func TestInsertAndCount(t *testing.T) {
	repo := newTestRepo(t)

	ts := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ptr(sampleTxn("t1", ts))))
	// Re-inserting the same id is ignored, not an error.
	require.NoError(t, repo.Insert(ptr(sampleTxn("t1", ts))))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBulkInsertRoundTripsDeclineFields(t *testing.T) {
	repo := newTestRepo(t)

	ts := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	declined := sampleTxn("t2", ts)
	declined.Status = domain.StatusDeclined
	declined.DeclineReason = domain.ReasonInsufficientFunds
	declined.DeclineCategory = domain.CategorySoftDecline
	declined.IsRecoverable = true
	declined.IsReturningCustomer = true

	n, err := repo.BulkInsert([]domain.Transaction{sampleTxn("t1", ts), declined})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	txns, err := repo.GetFiltered(TransactionFilter{Status: "declined"})
	require.NoError(t, err)
	require.Len(t, txns, 1)

	got := txns[0]
	assert.Equal(t, "t2", got.ID)
	assert.Equal(t, domain.ReasonInsufficientFunds, got.DeclineReason)
	assert.Equal(t, domain.CategorySoftDecline, got.DeclineCategory)
	assert.True(t, got.IsRecoverable)
	assert.True(t, got.IsReturningCustomer)
	assert.Equal(t, ts, got.Timestamp)
	require.NoError(t, got.Validate())
}

func TestGetFilteredComposesFilters(t *testing.T) {
	repo := newTestRepo(t)
	ts := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	us := sampleTxn("us1", ts)
	brazil := sampleTxn("br1", ts.Add(time.Hour))
	brazil.Country = "Brazil"
	brazil.Processor = "PayUBrasil"
	brazilAdyen := sampleTxn("br2", ts.Add(2*time.Hour))
	brazilAdyen.Country = "Brazil"
	brazilAdyen.Processor = "AdyenLatam"

	_, err := repo.BulkInsert([]domain.Transaction{us, brazil, brazilAdyen})
	require.NoError(t, err)

	txns, err := repo.GetFiltered(TransactionFilter{Country: "Brazil", Processor: "PayUBrasil"})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "br1", txns[0].ID)

	from := ts.Add(30 * time.Minute)
	txns, err = repo.GetFiltered(TransactionFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestListPaging(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	var txns []domain.Transaction
	for i := 0; i < 25; i++ {
		txns = append(txns, sampleTxn(string(rune('a'+i))+"-txn", base.Add(time.Duration(i)*time.Minute)))
	}
	_, err := repo.BulkInsert(txns)
	require.NoError(t, err)

	page1, total, err := repo.List(TransactionFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, page1, 10)

	page3, _, err := repo.List(TransactionFilter{Page: 3, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page3, 5)

	// No overlap between pages.
	seen := map[string]bool{}
	for _, tx := range page1 {
		seen[tx.ID] = true
	}
	for _, tx := range page3 {
		assert.False(t, seen[tx.ID])
	}
}

func TestScanRejectsMalformedTimestamp(t *testing.T) {
	repo := newTestRepo(t)

	// Write a corrupt row bypassing the repo's own formatting.
	_, err := repo.db.Exec(
		`INSERT INTO transactions (`+transactionColumns+`)
		VALUES ('bad1','not-a-time','m','c',10,'USD','US','credit_card','StripeConnect','approved',NULL,NULL,0,0,NULL)`)
	require.NoError(t, err)

	_, err = repo.GetFiltered(TransactionFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad1")
}

func TestImportHashTracking(t *testing.T) {
	repo := newTestRepo(t)

	seen, err := repo.ImportSeen("abc123")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, repo.RecordImport("abc123", 10))

	seen, err = repo.ImportSeen("abc123")
	require.NoError(t, err)
	assert.True(t, seen)
}

func ptr(t domain.Transaction) *domain.Transaction {
	return &t
}
