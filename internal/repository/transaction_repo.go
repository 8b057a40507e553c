package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/raulgutierrezyuno/ZenithPay/internal/domain"
)

const transactionColumns = `id, timestamp, merchant_id, customer_id, amount,
	currency, country, payment_method, processor, status, decline_reason,
	decline_category, is_recoverable, is_returning_customer, bin`

type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

func (r *TransactionRepo) Insert(t *domain.Transaction) error {
	_, err := r.db.Exec(
		`INSERT OR IGNORE INTO transactions
		(`+transactionColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.ID, t.Timestamp.UTC().Format(time.RFC3339), t.MerchantID, t.CustomerID,
		t.Amount, t.Currency, t.Country, t.PaymentMethod, t.Processor,
		string(t.Status), nullableString(string(t.DeclineReason)),
		nullableString(string(t.DeclineCategory)), t.IsRecoverable,
		t.IsReturningCustomer, nullableString(t.BIN),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) BulkInsert(txns []domain.Transaction) (int, error) {
	sqlTx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback()

	stmt, err := sqlTx.Prepare(
		`INSERT OR IGNORE INTO transactions
		(` + transactionColumns + `)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i := range txns {
		t := &txns[i]
		res, err := stmt.Exec(
			t.ID, t.Timestamp.UTC().Format(time.RFC3339), t.MerchantID, t.CustomerID,
			t.Amount, t.Currency, t.Country, t.PaymentMethod, t.Processor,
			string(t.Status), nullableString(string(t.DeclineReason)),
			nullableString(string(t.DeclineCategory)), t.IsRecoverable,
			t.IsReturningCustomer, nullableString(t.BIN),
		)
		if err != nil {
			return inserted, fmt.Errorf("insert row %d: %w", i, err)
		}
		ra, _ := res.RowsAffected()
		inserted += int(ra)
	}

	if err := sqlTx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func (r *TransactionRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}

// TransactionFilter narrows the record set before it reaches the analytics
// pipeline. Zero values mean "no constraint".
type TransactionFilter struct {
	Country       string
	PaymentMethod string
	Processor     string
	Status        string
	From          *time.Time
	To            *time.Time
	Page          int
	Limit         int
}

// GetFiltered returns every transaction matching the filter, ordered by
// timestamp. This is the record set handed to the analytics pipeline;
// paging does not apply.
func (r *TransactionRepo) GetFiltered(f TransactionFilter) ([]domain.Transaction, error) {
	where, args := buildWhere(f)

	rows, err := r.db.Query(
		"SELECT "+transactionColumns+" FROM transactions"+where+" ORDER BY timestamp", args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// List returns one page of matching transactions plus the total match count.
func (r *TransactionRepo) List(f TransactionFilter) ([]domain.Transaction, int, error) {
	where, args := buildWhere(f)

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM transactions"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	offset := (f.Page - 1) * f.Limit

	args = append(args, f.Limit, offset)
	rows, err := r.db.Query(
		"SELECT "+transactionColumns+" FROM transactions"+where+
			" ORDER BY timestamp LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	txns, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// ImportSeen reports whether a feed file with this hash was already ingested.
func (r *TransactionRepo) ImportSeen(fileHash string) (bool, error) {
	var n int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM feed_imports WHERE file_hash = ?", fileHash).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check import hash: %w", err)
	}
	return n > 0, nil
}

// RecordImport remembers a processed feed file for idempotency.
func (r *TransactionRepo) RecordImport(fileHash string, recordCount int) error {
	_, err := r.db.Exec(
		"INSERT OR IGNORE INTO feed_imports (file_hash, record_count, imported_at) VALUES (?,?,?)",
		fileHash, recordCount, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record import: %w", err)
	}
	return nil
}

// --- helpers ---

func buildWhere(f TransactionFilter) (string, []any) {
	var clauses []string
	var args []any

	if f.Country != "" {
		clauses = append(clauses, "country = ?")
		args = append(args, f.Country)
	}
	if f.PaymentMethod != "" {
		clauses = append(clauses, "payment_method = ?")
		args = append(args, f.PaymentMethod)
	}
	if f.Processor != "" {
		clauses = append(clauses, "processor = ?")
		args = append(args, f.Processor)
	}
	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, f.Status)
	}
	if f.From != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var ts, status string
		var reason, category, bin sql.NullString

		err := rows.Scan(
			&t.ID, &ts, &t.MerchantID, &t.CustomerID, &t.Amount,
			&t.Currency, &t.Country, &t.PaymentMethod, &t.Processor, &status,
			&reason, &category, &t.IsRecoverable, &t.IsReturningCustomer, &bin,
		)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		t.Timestamp, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp for %s: %w", t.ID, err)
		}
		t.Status = domain.TransactionStatus(status)
		if reason.Valid {
			t.DeclineReason = domain.DeclineReason(reason.String)
		}
		if category.Valid {
			t.DeclineCategory = domain.DeclineCategory(category.String)
		}
		if bin.Valid {
			t.BIN = bin.String
		}

		txns = append(txns, t)
	}
	return txns, rows.Err()
}
