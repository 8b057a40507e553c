package domain

import (
	"fmt"
	"time"
)

type TransactionStatus string

const (
	StatusApproved TransactionStatus = "approved"
	StatusDeclined TransactionStatus = "declined"
)

type DeclineCategory string

const (
	CategorySoftDecline     DeclineCategory = "soft_decline"
	CategoryHardDecline     DeclineCategory = "hard_decline"
	CategoryProcessingError DeclineCategory = "processing_error"
)

type DeclineReason string

const (
	ReasonInsufficientFunds DeclineReason = "insufficient_funds"
	ReasonDoNotHonor        DeclineReason = "do_not_honor"
	ReasonExpiredCard       DeclineReason = "expired_card"
	ReasonFraudSuspected    DeclineReason = "fraud_suspected"
	Reason3DSFailed         DeclineReason = "3ds_failed"
	ReasonGatewayTimeout    DeclineReason = "gateway_timeout"
	ReasonStolenCard        DeclineReason = "stolen_card"
	ReasonIssuerUnavailable DeclineReason = "issuer_unavailable"
	ReasonInvalidCard       DeclineReason = "invalid_card"
	ReasonVelocityLimit     DeclineReason = "velocity_limit"
)

// DeclineReasons lists every reason the platform emits, in weight-table order.
var DeclineReasons = []DeclineReason{
	ReasonInsufficientFunds, ReasonDoNotHonor, ReasonExpiredCard,
	ReasonFraudSuspected, Reason3DSFailed, ReasonGatewayTimeout,
	ReasonStolenCard, ReasonIssuerUnavailable, ReasonInvalidCard,
	ReasonVelocityLimit,
}

var declineReasonLabels = map[DeclineReason]string{
	ReasonInsufficientFunds: "Insufficient Funds",
	ReasonDoNotHonor:        "Do Not Honor",
	ReasonExpiredCard:       "Expired Card",
	ReasonFraudSuspected:    "Fraud Suspected",
	Reason3DSFailed:         "3DS Authentication Failed",
	ReasonGatewayTimeout:    "Gateway Timeout",
	ReasonStolenCard:        "Stolen Card",
	ReasonIssuerUnavailable: "Issuer Unavailable",
	ReasonInvalidCard:       "Invalid Card",
	ReasonVelocityLimit:     "Velocity Limit Exceeded",
}

// declineCategories is the static reason -> category derivation. A record's
// category is never set independently of this table.
var declineCategories = map[DeclineReason]DeclineCategory{
	ReasonInsufficientFunds: CategorySoftDecline,
	ReasonDoNotHonor:        CategorySoftDecline,
	ReasonExpiredCard:       CategoryHardDecline,
	ReasonFraudSuspected:    CategoryHardDecline,
	Reason3DSFailed:         CategorySoftDecline,
	ReasonGatewayTimeout:    CategoryProcessingError,
	ReasonStolenCard:        CategoryHardDecline,
	ReasonIssuerUnavailable: CategoryProcessingError,
	ReasonInvalidCard:       CategoryHardDecline,
	ReasonVelocityLimit:     CategorySoftDecline,
}

var recoverableReasons = map[DeclineReason]bool{
	ReasonInsufficientFunds: true,
	ReasonDoNotHonor:        true,
	Reason3DSFailed:         true,
	ReasonGatewayTimeout:    true,
	ReasonIssuerUnavailable: true,
	ReasonVelocityLimit:     true,
}

// Label returns the human-readable name for the reason, falling back to the
// raw code for reasons outside the known set.
func (r DeclineReason) Label() string {
	if label, ok := declineReasonLabels[r]; ok {
		return label
	}
	return string(r)
}

// Category returns the decline category derived from the reason.
func (r DeclineReason) Category() DeclineCategory {
	return declineCategories[r]
}

// Recoverable reports whether declines for this reason are believed
// transient (retryable) rather than permanent.
func (r DeclineReason) Recoverable() bool {
	return recoverableReasons[r]
}

// Valid reports whether the reason is one of the known decline codes.
func (r DeclineReason) Valid() bool {
	_, ok := declineCategories[r]
	return ok
}

// Transaction is a single payment attempt as produced by the upstream feed.
// The decline fields (reason, category, recoverable flag) are present iff
// the status is declined; Validate enforces this at ingestion.
type Transaction struct {
	ID                  string            `json:"id"`
	Timestamp           time.Time         `json:"timestamp"`
	MerchantID          string            `json:"merchant_id"`
	CustomerID          string            `json:"customer_id"`
	Amount              float64           `json:"amount"`
	Currency            string            `json:"currency"`
	Country             string            `json:"country"`
	PaymentMethod       string            `json:"payment_method"`
	Processor           string            `json:"processor"`
	Status              TransactionStatus `json:"status"`
	DeclineReason       DeclineReason     `json:"decline_reason,omitempty"`
	DeclineCategory     DeclineCategory   `json:"decline_category,omitempty"`
	IsRecoverable       bool              `json:"is_recoverable"`
	IsReturningCustomer bool              `json:"is_returning_customer"`
	BIN                 string            `json:"bin,omitempty"`
}

// Approved reports whether the attempt succeeded.
func (t *Transaction) Approved() bool {
	return t.Status == StatusApproved
}

// Validate checks the structural invariants of a feed record. Violations are
// producer contract breaches and must be rejected before the record reaches
// the analytics pipeline.
func (t *Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction missing id")
	}
	if t.Timestamp.IsZero() {
		return fmt.Errorf("transaction %s: missing timestamp", t.ID)
	}
	if t.Amount < 0 {
		return fmt.Errorf("transaction %s: negative amount %.2f", t.ID, t.Amount)
	}

	switch t.Status {
	case StatusApproved:
		if t.DeclineReason != "" || t.DeclineCategory != "" || t.IsRecoverable {
			return fmt.Errorf("transaction %s: approved but carries decline fields", t.ID)
		}
	case StatusDeclined:
		if t.DeclineReason == "" {
			return fmt.Errorf("transaction %s: declined without a decline reason", t.ID)
		}
		if !t.DeclineReason.Valid() {
			return fmt.Errorf("transaction %s: unknown decline reason %q", t.ID, t.DeclineReason)
		}
		if t.DeclineCategory != t.DeclineReason.Category() {
			return fmt.Errorf("transaction %s: decline category %q does not match reason %q",
				t.ID, t.DeclineCategory, t.DeclineReason)
		}
		if t.IsRecoverable != t.DeclineReason.Recoverable() {
			return fmt.Errorf("transaction %s: recoverable flag inconsistent with reason %q",
				t.ID, t.DeclineReason)
		}
	default:
		return fmt.Errorf("transaction %s: unknown status %q", t.ID, t.Status)
	}

	return nil
}
