package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEvent is the payload published for every committed ledger posting.
type LedgerEvent struct {
	Type       string          `json:"type"`
	EntityID   string          `json:"entity_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency,omitempty"`
	OperatorID string          `json:"operator_id,omitempty"`
	Detail     string          `json:"detail,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
