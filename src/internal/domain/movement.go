package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementKind string

const (
	MovementIngress  MovementKind = "INGRESS"
	MovementEgress   MovementKind = "EGRESS"
	MovementTransfer MovementKind = "TRANSFER"
)

// Inflow reports whether the movement adds to the register balance.
// TRANSFER movements carry cash out of the drawer to a bank account.
func (k MovementKind) Inflow() bool {
	return k == MovementIngress
}

// Movement is an immutable register ledger line. Amount is always positive.
type Movement struct {
	ID         int64
	RegisterID int64
	Kind       MovementKind
	Amount     decimal.Decimal
	Concept    string
	OccurredAt time.Time
	PaymentID  *int64
	OperatorID string
	SessionID  string
}

// Signed returns the amount with the direction applied to the register balance.
func (m Movement) Signed() decimal.Decimal {
	if m.Kind.Inflow() {
		return m.Amount
	}
	return m.Amount.Neg()
}

// MovementTotals aggregates a set of movements.
type MovementTotals struct {
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal
	Count    int
}

func SumMovements(movements []Movement) MovementTotals {
	totals := MovementTotals{TotalIn: decimal.Zero, TotalOut: decimal.Zero}
	for _, m := range movements {
		if m.Kind.Inflow() {
			totals.TotalIn = totals.TotalIn.Add(m.Amount)
		} else {
			totals.TotalOut = totals.TotalOut.Add(m.Amount)
		}
		totals.Count++
	}
	return totals
}
