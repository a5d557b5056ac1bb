package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type CreateRegisterRequest struct {
	Description string `json:"description"`
	Branch      string `json:"branch"`
}

func (r CreateRegisterRequest) Validate() error {
	var v validation
	v.required("description", r.Description)
	return v.result()
}

type RegisterResponse struct {
	ID               int64           `json:"id"`
	Description      string          `json:"description"`
	Branch           string          `json:"branch"`
	Balance          decimal.Decimal `json:"balance"`
	IsOpen           bool            `json:"isOpen"`
	OpenedAt         string          `json:"openedAt,omitempty"`
	LastReconciledAt string          `json:"lastReconciledAt,omitempty"`
}

type OpenRegisterRequest struct {
	RegisterID    int64  `json:"-"`
	OpeningAmount string `json:"openingAmount"`
	OperatorID    string `json:"-"`
}

func (r OpenRegisterRequest) Validate() error {
	var v validation
	v.positiveID("registerId", r.RegisterID)
	v.nonNegativeAmount("openingAmount", r.OpeningAmount)
	return v.result()
}

type OpenRegisterResponse struct {
	Register     RegisterResponse `json:"register"`
	SessionID    string           `json:"sessionId"`
	SessionToken string           `json:"sessionToken"`
	ExpiresAt    string           `json:"expiresAt"`
}

type CloseRegisterRequest struct {
	RegisterID int64  `json:"-"`
	SessionID  string `json:"-"`
}

func (r CloseRegisterRequest) Validate() error {
	var v validation
	v.positiveID("registerId", r.RegisterID)
	return v.result()
}

type ClosingSummaryResponse struct {
	Register       RegisterResponse `json:"register"`
	SessionID      string           `json:"sessionId"`
	ClosingBalance decimal.Decimal  `json:"closingBalance"`
	TotalIn        decimal.Decimal  `json:"totalIn"`
	TotalOut       decimal.Decimal  `json:"totalOut"`
	MovementCount  int              `json:"movementCount"`
	ClosedAt       string           `json:"closedAt"`
}

type RegisterStatusResponse struct {
	Register  RegisterResponse `json:"register"`
	SessionID string           `json:"sessionId"`
	OpenedAt  string           `json:"openedAt"`
	TotalIn   decimal.Decimal  `json:"totalIn"`
	TotalOut  decimal.Decimal  `json:"totalOut"`
}

type ManualMovementRequest struct {
	SessionID  string `json:"-"`
	OperatorID string `json:"-"`
	Kind       string `json:"kind"`
	Amount     string `json:"amount"`
	Concept    string `json:"concept"`
}

func (r ManualMovementRequest) Validate() error {
	var v validation
	kind := strings.ToUpper(strings.TrimSpace(r.Kind))
	if kind != "INGRESS" && kind != "EGRESS" {
		v.add("kind must be INGRESS or EGRESS")
	}
	v.positiveAmount("amount", r.Amount)
	v.required("concept", r.Concept)
	return v.result()
}

type MovementResponse struct {
	ID         int64           `json:"id"`
	RegisterID int64           `json:"registerId"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Concept    string          `json:"concept"`
	OccurredAt string          `json:"occurredAt"`
	PaymentID  *int64          `json:"paymentId,omitempty"`
	OperatorID string          `json:"operatorId,omitempty"`
}

type CashCountRequest struct {
	RegisterID int64  `json:"-"`
	From       string `json:"from"`
	To         string `json:"to"`
}

func (r CashCountRequest) Validate() error {
	var v validation
	v.positiveID("registerId", r.RegisterID)
	v.date("from", r.From)
	v.date("to", r.To)
	return v.result()
}

type CashCountResponse struct {
	RegisterID int64              `json:"registerId"`
	From       string             `json:"from,omitempty"`
	To         string             `json:"to,omitempty"`
	Movements  []MovementResponse `json:"movements"`
	TotalIn    decimal.Decimal    `json:"totalIn"`
	TotalOut   decimal.Decimal    `json:"totalOut"`
	Net        decimal.Decimal    `json:"net"`
}
