package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractStatus string

const (
	ContractActive    ContractStatus = "ACTIVE"
	ContractCancelled ContractStatus = "CANCELLED"
	ContractFinished  ContractStatus = "FINISHED"
	ContractRescinded ContractStatus = "RESCINDED"
)

type Contract struct {
	ID                int64
	ContractNumber    string
	ClientName        string
	ClientDocument    string
	LotLabel          string
	SubdivisionID     *int64
	Currency          Currency
	ContractDate      time.Time
	TotalValue        decimal.Decimal
	DownPayment       decimal.Decimal
	InstallmentCount  int
	InstallmentAmount decimal.Decimal
	Status            ContractStatus
	CreatedAt         time.Time
}

// Subdivision is a land development whose lots are sold under contracts.
// Commission percentages split each collected payment between the agency
// and the land owner.
type Subdivision struct {
	ID               int64
	Name             string
	AgencyCommission decimal.Decimal
	OwnerCommission  decimal.Decimal
}
