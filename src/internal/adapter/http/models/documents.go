package models

import "github.com/shopspring/decimal"

// The document structs below are handed to the rendering collaborator. They
// carry primitive fields only and never reference ledger types.

type CompanyIdentity struct {
	Name    string `json:"name"`
	TaxID   string `json:"taxId"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type ReceiptDocument struct {
	Company           CompanyIdentity `json:"company"`
	PaymentID         int64           `json:"paymentId"`
	PaymentDate       string          `json:"paymentDate"`
	ClientName        string          `json:"clientName"`
	ClientDocument    string          `json:"clientDocument"`
	ContractNumber    string          `json:"contractNumber"`
	LotLabel          string          `json:"lotLabel"`
	Concept           string          `json:"concept"`
	InstallmentNumber int             `json:"installmentNumber,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	LateFee           decimal.Decimal `json:"lateFee"`
	DaysOverdue       int             `json:"daysOverdue"`
	Method            string          `json:"method"`
	Reference         string          `json:"reference,omitempty"`
	Currency          string          `json:"currency"`
}

type ContractDocumentRow struct {
	Number  int             `json:"number"`
	Kind    string          `json:"kind"`
	DueDate string          `json:"dueDate"`
	Amount  decimal.Decimal `json:"amount"`
	Status  string          `json:"status"`
}

type ContractDocument struct {
	Company           CompanyIdentity       `json:"company"`
	ContractNumber    string                `json:"contractNumber"`
	ContractDate      string                `json:"contractDate"`
	ClientName        string                `json:"clientName"`
	ClientDocument    string                `json:"clientDocument"`
	LotLabel          string                `json:"lotLabel"`
	SubdivisionName   string                `json:"subdivisionName,omitempty"`
	Currency          string                `json:"currency"`
	TotalValue        decimal.Decimal       `json:"totalValue"`
	DownPayment       decimal.Decimal       `json:"downPayment"`
	InstallmentCount  int                   `json:"installmentCount"`
	InstallmentAmount decimal.Decimal       `json:"installmentAmount"`
	Installments      []ContractDocumentRow `json:"installments"`
}

type OwnerSettlementRequest struct {
	SubdivisionID int64  `json:"subdivisionId"`
	From          string `json:"from"`
	To            string `json:"to"`
}

func (r OwnerSettlementRequest) Validate() error {
	var v validation
	v.positiveID("subdivisionId", r.SubdivisionID)
	v.required("from", r.From)
	v.required("to", r.To)
	v.date("from", r.From)
	v.date("to", r.To)
	return v.result()
}

type OwnerSettlementRow struct {
	PaymentID      int64           `json:"paymentId"`
	PaymentDate    string          `json:"paymentDate"`
	ContractNumber string          `json:"contractNumber"`
	ClientName     string          `json:"clientName"`
	LotLabel       string          `json:"lotLabel"`
	Amount         decimal.Decimal `json:"amount"`
	AgencyShare    decimal.Decimal `json:"agencyShare"`
	OwnerShare     decimal.Decimal `json:"ownerShare"`
}

type OwnerSettlementReport struct {
	Company          CompanyIdentity      `json:"company"`
	SubdivisionName  string               `json:"subdivisionName"`
	From             string               `json:"from"`
	To               string               `json:"to"`
	AgencyCommission decimal.Decimal      `json:"agencyCommission"`
	OwnerCommission  decimal.Decimal      `json:"ownerCommission"`
	Rows             []OwnerSettlementRow `json:"rows"`
	TotalCollected   decimal.Decimal      `json:"totalCollected"`
	TotalAgency      decimal.Decimal      `json:"totalAgency"`
	TotalOwner       decimal.Decimal      `json:"totalOwner"`
}

type AccountStatementContract struct {
	ContractNumber string            `json:"contractNumber"`
	LotLabel       string            `json:"lotLabel"`
	Currency       string            `json:"currency"`
	Status         string            `json:"status"`
	TotalScheduled decimal.Decimal   `json:"totalScheduled"`
	TotalPaid      decimal.Decimal   `json:"totalPaid"`
	Balance        decimal.Decimal   `json:"balance"`
	OverdueCount   int               `json:"overdueCount"`
	Payments       []PaymentResponse `json:"payments"`
}

type AccountStatement struct {
	Company        CompanyIdentity            `json:"company"`
	ClientName     string                     `json:"clientName"`
	ClientDocument string                     `json:"clientDocument"`
	GeneratedOn    string                     `json:"generatedOn"`
	Contracts      []AccountStatementContract `json:"contracts"`
}
