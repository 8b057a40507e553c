package ingestion

import (
	"encoding/json"
	"fmt"

	"github.com/raulgutierrezyuno/ZenithPay/internal/domain"
)

// ParseJSONFeed parses a JSON array of transaction records. Each record is
// validated against the domain invariants; the first violation aborts the
// whole feed with its record index.
func ParseJSONFeed(data []byte) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	if err := json.Unmarshal(data, &txns); err != nil {
		return nil, fmt.Errorf("unmarshal feed: %w", err)
	}

	for i := range txns {
		if err := txns[i].Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return txns, nil
}
