package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/repository/repo_interfaces"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var _ service_interfaces.DocumentService = (*DocumentService)(nil)

var hundred = decimal.NewFromInt(100)

// DocumentService assembles the flat document structs handed to the
// renderer. Independent lookups run concurrently.
type DocumentService struct {
	contractRepo    repo_interfaces.ContractRepository
	installmentRepo repo_interfaces.InstallmentRepository
	paymentRepo     repo_interfaces.PaymentRepository
	params          service_interfaces.ParameterService
}

func NewDocumentService(
	contractRepo repo_interfaces.ContractRepository,
	installmentRepo repo_interfaces.InstallmentRepository,
	paymentRepo repo_interfaces.PaymentRepository,
	params service_interfaces.ParameterService,
) *DocumentService {
	return &DocumentService{
		contractRepo:    contractRepo,
		installmentRepo: installmentRepo,
		paymentRepo:     paymentRepo,
		params:          params,
	}
}

func (s *DocumentService) Receipt(ctx context.Context, paymentID int64) (commons.Response[models.ReceiptDocument], error) {
	logger.Info("document service receipt request", logger.Fields{"paymentId": paymentID})

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		logger.Error("document service receipt get payment failed", err, logger.Fields{"paymentId": paymentID})
		return failure[models.ReceiptDocument]("build receipt", err)
	}

	var (
		contract    domain.Contract
		installment domain.Installment
		company     models.CompanyIdentity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contract, err = s.contractRepo.GetByID(gctx, payment.ContractID)
		return err
	})
	if payment.InstallmentID != nil {
		g.Go(func() error {
			var err error
			installment, err = s.installmentRepo.GetByID(gctx, *payment.InstallmentID)
			return err
		})
	}
	g.Go(func() error {
		company = s.params.CompanyIdentity(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("document service receipt load failed", err, logger.Fields{"paymentId": paymentID})
		return failure[models.ReceiptDocument]("build receipt", err)
	}

	concept := "Pago contrato " + contract.ContractNumber
	if installment.ID != 0 {
		concept = fmt.Sprintf("Cuota %d de %d", installment.Number, contract.InstallmentCount)
		if installment.Kind == domain.InstallmentService {
			concept = fmt.Sprintf("Cargo de servicio %d", installment.Number)
		}
	}

	return commons.SuccessResponse("receipt built successfully", models.ReceiptDocument{
		Company:           company,
		PaymentID:         payment.ID,
		PaymentDate:       models.FormatDate(payment.PaymentDate),
		ClientName:        contract.ClientName,
		ClientDocument:    contract.ClientDocument,
		ContractNumber:    contract.ContractNumber,
		LotLabel:          contract.LotLabel,
		Concept:           concept,
		InstallmentNumber: installment.Number,
		Amount:            payment.Amount,
		LateFee:           payment.LateFee,
		DaysOverdue:       payment.DaysOverdue,
		Method:            string(payment.Method),
		Reference:         payment.Reference,
		Currency:          string(contract.Currency),
	}), nil
}

func (s *DocumentService) ContractDocument(ctx context.Context, contractID int64) (commons.Response[models.ContractDocument], error) {
	logger.Info("document service contract request", logger.Fields{"contractId": contractID})

	var (
		contract     domain.Contract
		installments []domain.Installment
		company      models.CompanyIdentity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contract, err = s.contractRepo.GetByID(gctx, contractID)
		return err
	})
	g.Go(func() error {
		var err error
		installments, err = s.installmentRepo.ListByContract(gctx, contractID)
		return err
	})
	g.Go(func() error {
		company = s.params.CompanyIdentity(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("document service contract load failed", err, logger.Fields{"contractId": contractID})
		return failure[models.ContractDocument]("build contract document", err)
	}

	doc := models.ContractDocument{
		Company:           company,
		ContractNumber:    contract.ContractNumber,
		ContractDate:      models.FormatDate(contract.ContractDate),
		ClientName:        contract.ClientName,
		ClientDocument:    contract.ClientDocument,
		LotLabel:          contract.LotLabel,
		Currency:          string(contract.Currency),
		TotalValue:        contract.TotalValue,
		DownPayment:       contract.DownPayment,
		InstallmentCount:  contract.InstallmentCount,
		InstallmentAmount: contract.InstallmentAmount,
		Installments:      make([]models.ContractDocumentRow, 0, len(installments)),
	}
	if contract.SubdivisionID != nil {
		subdivision, err := s.contractRepo.GetSubdivision(ctx, *contract.SubdivisionID)
		if err != nil {
			logger.Error("document service contract get subdivision failed", err, logger.Fields{"contractId": contractID})
			return failure[models.ContractDocument]("build contract document", err)
		}
		doc.SubdivisionName = subdivision.Name
	}
	for _, inst := range installments {
		doc.Installments = append(doc.Installments, models.ContractDocumentRow{
			Number:  inst.Number,
			Kind:    string(inst.Kind),
			DueDate: models.FormatDate(inst.DueDate),
			Amount:  inst.Amount,
			Status:  string(inst.Status),
		})
	}

	return commons.SuccessResponse("contract document built successfully", doc), nil
}

// OwnerSettlement splits every payment collected on a subdivision in the
// period between the agency and the land owner by their commission
// percentages.
func (s *DocumentService) OwnerSettlement(ctx context.Context, req models.OwnerSettlementRequest) (commons.Response[models.OwnerSettlementReport], error) {
	logger.Info("document service owner settlement request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("document service owner settlement validation failed", err, nil)
		return failure[models.OwnerSettlementReport]("build owner settlement", err)
	}

	from, _ := models.ParseDate(req.From, time.Time{})
	to, _ := models.ParseDate(req.To, time.Time{})
	if to.Before(from) {
		return failure[models.OwnerSettlementReport]("build owner settlement", commons.NewValidationError("to cannot be before from"))
	}

	var (
		subdivision domain.Subdivision
		payments    []domain.Payment
		company     models.CompanyIdentity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subdivision, err = s.contractRepo.GetSubdivision(gctx, req.SubdivisionID)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.paymentRepo.ListBySubdivision(gctx, req.SubdivisionID, from, to)
		return err
	})
	g.Go(func() error {
		company = s.params.CompanyIdentity(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("document service owner settlement load failed", err, logger.Fields{"subdivisionId": req.SubdivisionID})
		return failure[models.OwnerSettlementReport]("build owner settlement", err)
	}

	contracts := make(map[int64]domain.Contract)
	report := models.OwnerSettlementReport{
		Company:          company,
		SubdivisionName:  subdivision.Name,
		From:             models.FormatDate(from),
		To:               models.FormatDate(to),
		AgencyCommission: subdivision.AgencyCommission,
		OwnerCommission:  subdivision.OwnerCommission,
		Rows:             make([]models.OwnerSettlementRow, 0, len(payments)),
		TotalCollected:   decimal.Zero,
		TotalAgency:      decimal.Zero,
		TotalOwner:       decimal.Zero,
	}
	for _, p := range payments {
		contract, ok := contracts[p.ContractID]
		if !ok {
			var err error
			contract, err = s.contractRepo.GetByID(ctx, p.ContractID)
			if err != nil {
				logger.Error("document service owner settlement get contract failed", err, logger.Fields{"contractId": p.ContractID})
				return failure[models.OwnerSettlementReport]("build owner settlement", err)
			}
			contracts[p.ContractID] = contract
		}

		agencyShare := p.Amount.Mul(subdivision.AgencyCommission).Div(hundred).Round(2)
		ownerShare := p.Amount.Mul(subdivision.OwnerCommission).Div(hundred).Round(2)
		report.Rows = append(report.Rows, models.OwnerSettlementRow{
			PaymentID:      p.ID,
			PaymentDate:    models.FormatDate(p.PaymentDate),
			ContractNumber: contract.ContractNumber,
			ClientName:     contract.ClientName,
			LotLabel:       contract.LotLabel,
			Amount:         p.Amount,
			AgencyShare:    agencyShare,
			OwnerShare:     ownerShare,
		})
		report.TotalCollected = report.TotalCollected.Add(p.Amount)
		report.TotalAgency = report.TotalAgency.Add(agencyShare)
		report.TotalOwner = report.TotalOwner.Add(ownerShare)
	}

	logger.Info("document service owner settlement success", logger.Fields{
		"subdivisionId":  req.SubdivisionID,
		"payments":       len(report.Rows),
		"totalCollected": report.TotalCollected,
	})

	return commons.SuccessResponse("owner settlement built successfully", report), nil
}

// AccountStatement summarizes every contract held by a client document.
func (s *DocumentService) AccountStatement(ctx context.Context, clientDocument string) (commons.Response[models.AccountStatement], error) {
	clientDocument = strings.TrimSpace(clientDocument)
	logger.Info("document service account statement request", logger.Fields{"clientDocument": clientDocument})

	if clientDocument == "" {
		return failure[models.AccountStatement]("build account statement", commons.NewValidationError("clientDocument is required"))
	}

	contracts, err := s.contractRepo.ListByClientDocument(ctx, clientDocument)
	if err != nil {
		logger.Error("document service account statement list contracts failed", err, nil)
		return failure[models.AccountStatement]("build account statement", err)
	}
	if len(contracts) == 0 {
		return failure[models.AccountStatement]("build account statement", fmt.Errorf("no contracts for client: %w", commons.ErrRecordNotFound))
	}

	today := domain.CivilDate(time.Now().UTC())
	summaries := make([]models.AccountStatementContract, len(contracts))
	var company models.CompanyIdentity

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	g.Go(func() error {
		identity := s.params.CompanyIdentity(gctx)
		mu.Lock()
		company = identity
		mu.Unlock()
		return nil
	})
	for i, contract := range contracts {
		g.Go(func() error {
			installments, err := s.installmentRepo.ListByContract(gctx, contract.ID)
			if err != nil {
				return err
			}
			payments, err := s.paymentRepo.ListByContract(gctx, contract.ID)
			if err != nil {
				return err
			}
			summaries[i] = summarizeContract(contract, installments, payments, today)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("document service account statement load failed", err, nil)
		return failure[models.AccountStatement]("build account statement", err)
	}

	return commons.SuccessResponse("account statement built successfully", models.AccountStatement{
		Company:        company,
		ClientName:     contracts[0].ClientName,
		ClientDocument: contracts[0].ClientDocument,
		GeneratedOn:    models.FormatDate(today),
		Contracts:      summaries,
	}), nil
}

func summarizeContract(contract domain.Contract, installments []domain.Installment, payments []domain.Payment, today time.Time) models.AccountStatementContract {
	summary := models.AccountStatementContract{
		ContractNumber: contract.ContractNumber,
		LotLabel:       contract.LotLabel,
		Currency:       string(contract.Currency),
		Status:         string(contract.Status),
		TotalScheduled: decimal.Zero,
		TotalPaid:      decimal.Zero,
		Payments:       make([]models.PaymentResponse, 0, len(payments)),
	}
	for _, inst := range installments {
		summary.TotalScheduled = summary.TotalScheduled.Add(inst.Amount)
		if inst.Settled() {
			summary.TotalPaid = summary.TotalPaid.Add(inst.Amount)
			continue
		}
		if inst.DueDate.Before(today) {
			summary.OverdueCount++
		}
	}
	summary.Balance = summary.TotalScheduled.Sub(summary.TotalPaid)
	for _, p := range payments {
		summary.Payments = append(summary.Payments, mapPaymentToResponse(p))
	}
	return summary
}
