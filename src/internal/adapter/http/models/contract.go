package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type CreateContractRequest struct {
	ContractNumber    string `json:"contractNumber"`
	ClientName        string `json:"clientName"`
	ClientDocument    string `json:"clientDocument"`
	LotLabel          string `json:"lotLabel"`
	SubdivisionID     *int64 `json:"subdivisionId,omitempty"`
	Currency          string `json:"currency"`
	ContractDate      string `json:"contractDate"`
	FirstDueDate      string `json:"firstDueDate"`
	TotalValue        string `json:"totalValue"`
	DownPayment       string `json:"downPayment"`
	InstallmentCount  int    `json:"installmentCount"`
	InstallmentAmount string `json:"installmentAmount"`
}

func (r CreateContractRequest) Validate() error {
	var v validation
	v.required("contractNumber", r.ContractNumber)
	v.required("clientName", r.ClientName)
	v.required("clientDocument", r.ClientDocument)
	v.required("lotLabel", r.LotLabel)

	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if currency != "" && currency != "PYG" && currency != "USD" {
		v.add("currency must be PYG or USD")
	}
	v.required("contractDate", r.ContractDate)
	v.date("contractDate", r.ContractDate)
	v.date("firstDueDate", r.FirstDueDate)
	v.positiveAmount("totalValue", r.TotalValue)
	if strings.TrimSpace(r.DownPayment) != "" {
		v.nonNegativeAmount("downPayment", r.DownPayment)
	}
	if r.InstallmentCount <= 0 {
		v.add("installmentCount must be greater than zero")
	}
	v.positiveAmount("installmentAmount", r.InstallmentAmount)
	return v.result()
}

type ContractResponse struct {
	ID                int64                 `json:"id"`
	ContractNumber    string                `json:"contractNumber"`
	ClientName        string                `json:"clientName"`
	ClientDocument    string                `json:"clientDocument"`
	LotLabel          string                `json:"lotLabel"`
	SubdivisionID     *int64                `json:"subdivisionId,omitempty"`
	Currency          string                `json:"currency"`
	ContractDate      string                `json:"contractDate"`
	TotalValue        decimal.Decimal       `json:"totalValue"`
	DownPayment       decimal.Decimal       `json:"downPayment"`
	InstallmentCount  int                   `json:"installmentCount"`
	InstallmentAmount decimal.Decimal       `json:"installmentAmount"`
	Status            string                `json:"status"`
	Installments      []InstallmentResponse `json:"installments,omitempty"`
}

type InstallmentResponse struct {
	ID           int64            `json:"id"`
	ContractID   int64            `json:"contractId"`
	Number       int              `json:"number"`
	DueDate      string           `json:"dueDate"`
	Amount       decimal.Decimal  `json:"amount"`
	Kind         string           `json:"kind"`
	Status       string           `json:"status"`
	PaidDate     string           `json:"paidDate,omitempty"`
	PaidAmount   *decimal.Decimal `json:"paidAmount,omitempty"`
	Observations string           `json:"observations,omitempty"`
}

type ServiceChargeRequest struct {
	ContractID  int64  `json:"-"`
	Amount      string `json:"amount"`
	DueDate     string `json:"dueDate"`
	Description string `json:"description"`
}

func (r ServiceChargeRequest) Validate() error {
	var v validation
	v.positiveID("contractId", r.ContractID)
	v.positiveAmount("amount", r.Amount)
	v.required("dueDate", r.DueDate)
	v.date("dueDate", r.DueDate)
	v.required("description", r.Description)
	return v.result()
}

type CreateSubdivisionRequest struct {
	Name             string `json:"name"`
	AgencyCommission string `json:"agencyCommission"`
	OwnerCommission  string `json:"ownerCommission"`
}

func (r CreateSubdivisionRequest) Validate() error {
	var v validation
	v.required("name", r.Name)
	v.nonNegativeAmount("agencyCommission", r.AgencyCommission)
	v.nonNegativeAmount("ownerCommission", r.OwnerCommission)

	agency, errA := ParseAmount(r.AgencyCommission)
	owner, errO := ParseAmount(r.OwnerCommission)
	if errA == nil && errO == nil && agency.Add(owner).GreaterThan(decimal.NewFromInt(100)) {
		v.add("agencyCommission and ownerCommission cannot exceed 100 combined")
	}
	return v.result()
}

type SubdivisionResponse struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	AgencyCommission decimal.Decimal `json:"agencyCommission"`
	OwnerCommission  decimal.Decimal `json:"ownerCommission"`
}
