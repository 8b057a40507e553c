package ingestion

import (
	"crypto/sha256"
	"fmt"
	"log"

	"github.com/raulgutierrezyuno/ZenithPay/internal/domain"
	"github.com/raulgutierrezyuno/ZenithPay/internal/repository"
)

// ImportResult is returned from a successful feed import.
type ImportResult struct {
	RecordsParsed     int  `json:"records_parsed"`
	RecordsImported   int  `json:"records_imported"`
	DuplicatesSkipped int  `json:"duplicates_skipped"`
	AlreadyImported   bool `json:"already_imported"`
}

// Service ingests externally produced transaction feeds. Records that break
// the decline-field invariant are rejected here, before they can reach the
// analytics pipeline.
type Service struct {
	txnRepo *repository.TransactionRepo
}

func NewService(txnRepo *repository.TransactionRepo) *Service {
	return &Service{txnRepo: txnRepo}
}

// ImportFeed parses and stores a transaction feed. Re-uploads of the same
// file are detected by content hash and skipped.
//
// format must be one of: json, csv
func (s *Service) ImportFeed(data []byte, format string) (*ImportResult, error) {
	hash := fmt.Sprintf("%x", sha256.Sum256(data))
	seen, err := s.txnRepo.ImportSeen(hash)
	if err != nil {
		return nil, fmt.Errorf("check hash: %w", err)
	}
	if seen {
		return &ImportResult{AlreadyImported: true}, nil
	}

	var txns []domain.Transaction
	switch format {
	case "json":
		txns, err = ParseJSONFeed(data)
	case "csv":
		txns, err = ParseCSVFeed(data)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}

	inserted, err := s.txnRepo.BulkInsert(txns)
	if err != nil {
		return nil, fmt.Errorf("insert records: %w", err)
	}

	if err := s.txnRepo.RecordImport(hash, len(txns)); err != nil {
		return nil, err
	}

	log.Printf("[ingestion] Imported feed: %d records (%d new)", len(txns), inserted)

	return &ImportResult{
		RecordsParsed:     len(txns),
		RecordsImported:   inserted,
		DuplicatesSkipped: len(txns) - inserted,
	}, nil
}
