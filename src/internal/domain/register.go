package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Register is a physical cash drawer. Its currency is always PYG.
type Register struct {
	ID               int64
	Description      string
	Branch           string
	Balance          decimal.Decimal
	IsOpen           bool
	OpenedAt         *time.Time
	LastReconciledAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RegisterSession binds an operator to an open register. A register has at
// most one session with ClosedAt == nil.
type RegisterSession struct {
	ID         string
	RegisterID int64
	OperatorID string
	OpenedAt   time.Time
	ClosedAt   *time.Time
}

type RegisterClosing struct {
	Register       Register
	SessionID      string
	ClosingBalance decimal.Decimal
	TotalIn        decimal.Decimal
	TotalOut       decimal.Decimal
	MovementCount  int
	ClosedAt       time.Time
}
