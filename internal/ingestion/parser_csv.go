package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/raulgutierrezyuno/ZenithPay/internal/domain"
)

// ParseCSVFeed parses the CSV transaction feed format.
//
// Expected header:
//
//	id,timestamp,merchant_id,customer_id,amount,currency,country,payment_method,processor,status,decline_reason,is_returning_customer,bin
//
// Decline category and the recoverable flag are not columns: they are
// derived from the reason, which keeps them consistent by construction.
func ParseCSVFeed(data []byte) ([]domain.Transaction, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 13 {
		return nil, fmt.Errorf("expected 13 columns, got %d", len(header))
	}

	var txns []domain.Transaction
	lineNum := 1

	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if len(row) < 13 {
			continue
		}

		ts, err := time.Parse(time.RFC3339, strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d timestamp: %w", lineNum, err)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d amount: %w", lineNum, err)
		}
		returning, err := strconv.ParseBool(strings.TrimSpace(row[11]))
		if err != nil {
			return nil, fmt.Errorf("line %d is_returning_customer: %w", lineNum, err)
		}

		t := domain.Transaction{
			ID:                  strings.TrimSpace(row[0]),
			Timestamp:           ts,
			MerchantID:          strings.TrimSpace(row[2]),
			CustomerID:          strings.TrimSpace(row[3]),
			Amount:              amount,
			Currency:            strings.TrimSpace(row[5]),
			Country:             strings.TrimSpace(row[6]),
			PaymentMethod:       strings.TrimSpace(row[7]),
			Processor:           strings.TrimSpace(row[8]),
			Status:              domain.TransactionStatus(strings.TrimSpace(row[9])),
			IsReturningCustomer: returning,
			BIN:                 strings.TrimSpace(row[12]),
		}

		if reason := strings.TrimSpace(row[10]); reason != "" {
			r := domain.DeclineReason(reason)
			t.DeclineReason = r
			t.DeclineCategory = r.Category()
			t.IsRecoverable = r.Recoverable()
		}

		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		txns = append(txns, t)
	}

	return txns, nil
}
