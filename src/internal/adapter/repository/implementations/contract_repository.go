package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
	"github.com/shopspring/decimal"
)

const contractColumns = `id, contract_number, client_name, client_document, lot_label, subdivision_id, currency, contract_date, total_value, down_payment, installment_count, installment_amount, status, created_at`

type ContractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) CreateWithSchedule(ctx context.Context, contract domain.Contract, firstDue time.Time) (domain.Contract, []domain.Installment, error) {
	logger.Info("contract repository create", logger.Fields{
		"contractNumber":   contract.ContractNumber,
		"installmentCount": contract.InstallmentCount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Contract{}, nil, fmt.Errorf("begin create contract tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if contract.SubdivisionID != nil {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM subdivisions WHERE id = $1)`, *contract.SubdivisionID).Scan(&exists); err != nil {
			return domain.Contract{}, nil, fmt.Errorf("check subdivision: %w", err)
		}
		if !exists {
			return domain.Contract{}, nil, commons.ErrRecordNotFound
		}
	}

	created, err := scanContract(tx.QueryRowContext(ctx, `
INSERT INTO contracts (contract_number, client_name, client_document, lot_label, subdivision_id, currency, contract_date, total_value, down_payment, installment_count, installment_amount, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9::numeric, $10, $11::numeric, $12)
RETURNING `+contractColumns,
		contract.ContractNumber,
		contract.ClientName,
		contract.ClientDocument,
		contract.LotLabel,
		nullInt64(contract.SubdivisionID),
		contract.Currency,
		domain.CivilDate(contract.ContractDate),
		contract.TotalValue,
		contract.DownPayment,
		contract.InstallmentCount,
		contract.InstallmentAmount,
		contract.Status,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Contract{}, nil, commons.ErrDuplicate
		}
		logger.Error("contract repository create failed", err, logger.Fields{"contractNumber": contract.ContractNumber})
		return domain.Contract{}, nil, fmt.Errorf("create contract: %w", err)
	}

	schedule := domain.ScheduleInstallments(created.ID, created.InstallmentCount, created.InstallmentAmount, firstDue)
	for i := range schedule {
		item, err := insertInstallment(ctx, tx, schedule[i])
		if err != nil {
			return domain.Contract{}, nil, err
		}
		schedule[i] = item
	}

	if err := tx.Commit(); err != nil {
		return domain.Contract{}, nil, fmt.Errorf("commit create contract tx: %w", err)
	}

	logger.Info("contract repository create success", logger.Fields{
		"contractId":   created.ID,
		"installments": len(schedule),
	})
	return created, schedule, nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id int64) (domain.Contract, error) {
	contract, err := scanContract(r.db.QueryRowContext(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Contract{}, commons.ErrRecordNotFound
		}
		logger.Error("contract repository get failed", err, logger.Fields{"contractId": id})
		return domain.Contract{}, fmt.Errorf("get contract: %w", err)
	}
	return contract, nil
}

func (r *ContractRepository) ListByClientDocument(ctx context.Context, clientDocument string) ([]domain.Contract, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+contractColumns+`
FROM contracts
WHERE lower(trim(client_document)) = lower($1)
ORDER BY id`, strings.TrimSpace(clientDocument))
	if err != nil {
		logger.Error("contract repository list by client failed", err, nil)
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Contract, 0)
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract row: %w", err)
		}
		out = append(out, contract)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contract rows: %w", err)
	}
	return out, nil
}

func (r *ContractRepository) CreateSubdivision(ctx context.Context, subdivision domain.Subdivision) (domain.Subdivision, error) {
	if err := r.db.QueryRowContext(ctx, `
INSERT INTO subdivisions (name, agency_commission, owner_commission)
VALUES ($1, $2::numeric, $3::numeric)
RETURNING id`, subdivision.Name, subdivision.AgencyCommission, subdivision.OwnerCommission).Scan(&subdivision.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.Subdivision{}, commons.ErrDuplicate
		}
		logger.Error("contract repository create subdivision failed", err, logger.Fields{"name": subdivision.Name})
		return domain.Subdivision{}, fmt.Errorf("create subdivision: %w", err)
	}
	return subdivision, nil
}

func (r *ContractRepository) GetSubdivision(ctx context.Context, id int64) (domain.Subdivision, error) {
	var subdivision domain.Subdivision
	if err := r.db.QueryRowContext(ctx, `
SELECT id, name, agency_commission, owner_commission
FROM subdivisions
WHERE id = $1`, id).Scan(&subdivision.ID, &subdivision.Name, &subdivision.AgencyCommission, &subdivision.OwnerCommission); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Subdivision{}, commons.ErrRecordNotFound
		}
		return domain.Subdivision{}, fmt.Errorf("get subdivision: %w", err)
	}
	return subdivision, nil
}

func scanContract(row rowScanner) (domain.Contract, error) {
	var contract domain.Contract
	var subdivisionID sql.NullInt64
	var currency string
	if err := row.Scan(
		&contract.ID,
		&contract.ContractNumber,
		&contract.ClientName,
		&contract.ClientDocument,
		&contract.LotLabel,
		&subdivisionID,
		&currency,
		&contract.ContractDate,
		&contract.TotalValue,
		&contract.DownPayment,
		&contract.InstallmentCount,
		&contract.InstallmentAmount,
		&contract.Status,
		&contract.CreatedAt,
	); err != nil {
		return domain.Contract{}, err
	}
	contract.SubdivisionID = int64FromNull(subdivisionID)
	contract.Currency = domain.Currency(strings.TrimSpace(currency))
	return contract, nil
}

const installmentColumns = `id, contract_id, number, due_date, amount, kind, status, paid_date, paid_amount, observations`

type InstallmentRepository struct {
	db *sql.DB
}

func NewInstallmentRepository(db *sql.DB) *InstallmentRepository {
	return &InstallmentRepository{db: db}
}

func (r *InstallmentRepository) GetByID(ctx context.Context, id int64) (domain.Installment, error) {
	installment, err := scanInstallment(r.db.QueryRowContext(ctx, `SELECT `+installmentColumns+` FROM installments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Installment{}, commons.ErrRecordNotFound
		}
		logger.Error("installment repository get failed", err, logger.Fields{"installmentId": id})
		return domain.Installment{}, fmt.Errorf("get installment: %w", err)
	}
	return installment, nil
}

func (r *InstallmentRepository) ListByContract(ctx context.Context, contractID int64) ([]domain.Installment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+installmentColumns+` FROM installments WHERE contract_id = $1 ORDER BY number`, contractID)
	if err != nil {
		logger.Error("installment repository list failed", err, logger.Fields{"contractId": contractID})
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Installment, 0)
	for rows.Next() {
		installment, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan installment row: %w", err)
		}
		out = append(out, installment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate installment rows: %w", err)
	}
	return out, nil
}

func (r *InstallmentRepository) AddServiceCharge(ctx context.Context, contractID int64, amount decimal.Decimal, dueDate time.Time, description string) (domain.Installment, error) {
	logger.Info("installment repository add service charge", logger.Fields{
		"contractId": contractID,
		"amount":     amount.String(),
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Installment{}, fmt.Errorf("begin service charge tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// The contract row lock serializes numbering across concurrent charges.
	var lockedID int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM contracts WHERE id = $1 FOR UPDATE`, contractID).Scan(&lockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Installment{}, commons.ErrRecordNotFound
		}
		return domain.Installment{}, fmt.Errorf("lock contract: %w", err)
	}

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(number), 0) + 1 FROM installments WHERE contract_id = $1`, contractID).Scan(&next); err != nil {
		return domain.Installment{}, fmt.Errorf("next installment number: %w", err)
	}

	installment, err := insertInstallment(ctx, tx, domain.Installment{
		ContractID:   contractID,
		Number:       next,
		DueDate:      dueDate,
		Amount:       amount,
		Kind:         domain.InstallmentService,
		Status:       domain.InstallmentPending,
		Observations: description,
	})
	if err != nil {
		return domain.Installment{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Installment{}, fmt.Errorf("commit service charge tx: %w", err)
	}
	return installment, nil
}

func (r *InstallmentRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
UPDATE installments
SET status = $1
WHERE status = $2 AND due_date < $3::date`, domain.InstallmentOverdue, domain.InstallmentPending, domain.CivilDate(asOf))
	if err != nil {
		logger.Error("installment repository mark overdue failed", err, nil)
		return 0, fmt.Errorf("mark overdue installments: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	return count, nil
}

func insertInstallment(ctx context.Context, tx *sql.Tx, installment domain.Installment) (domain.Installment, error) {
	created, err := scanInstallment(tx.QueryRowContext(ctx, `
INSERT INTO installments (contract_id, number, due_date, amount, kind, status, observations)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
RETURNING `+installmentColumns,
		installment.ContractID,
		installment.Number,
		domain.CivilDate(installment.DueDate),
		installment.Amount,
		installment.Kind,
		installment.Status,
		installment.Observations,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Installment{}, commons.ErrDuplicate
		}
		return domain.Installment{}, fmt.Errorf("insert installment: %w", err)
	}
	return created, nil
}

func scanInstallment(row rowScanner) (domain.Installment, error) {
	var installment domain.Installment
	var paidDate sql.NullTime
	if err := row.Scan(
		&installment.ID,
		&installment.ContractID,
		&installment.Number,
		&installment.DueDate,
		&installment.Amount,
		&installment.Kind,
		&installment.Status,
		&paidDate,
		&installment.PaidAmount,
		&installment.Observations,
	); err != nil {
		return domain.Installment{}, err
	}
	if paidDate.Valid {
		installment.PaidDate = &paidDate.Time
	}
	return installment, nil
}

const paymentColumns = `id, contract_id, installment_id, amount, payment_date, method, reference, observations, bank_account_id, operator_id, late_fee, days_overdue, created_at`

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (domain.Payment, error) {
	payment, err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Payment{}, commons.ErrRecordNotFound
		}
		logger.Error("payment repository get failed", err, logger.Fields{"paymentId": id})
		return domain.Payment{}, fmt.Errorf("get payment: %w", err)
	}
	return payment, nil
}

func (r *PaymentRepository) ListByContract(ctx context.Context, contractID int64) ([]domain.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE contract_id = $1 ORDER BY id`, contractID)
}

func (r *PaymentRepository) ListBySubdivision(ctx context.Context, subdivisionID int64, from, to time.Time) ([]domain.Payment, error) {
	return r.list(ctx, `
SELECT p.`+strings.ReplaceAll(paymentColumns, ", ", ", p.")+`
FROM payments p
JOIN contracts c ON c.id = p.contract_id
WHERE c.subdivision_id = $1 AND p.payment_date BETWEEN $2::date AND $3::date
ORDER BY p.id`, subdivisionID, domain.CivilDate(from), domain.CivilDate(to))
}

func (r *PaymentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("payment repository list failed", err, nil)
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		out = append(out, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}
	return out, nil
}

func insertPayment(ctx context.Context, tx *sql.Tx, payment domain.Payment) (domain.Payment, error) {
	created, err := scanPayment(tx.QueryRowContext(ctx, `
INSERT INTO payments (contract_id, installment_id, amount, payment_date, method, reference, observations, bank_account_id, operator_id, late_fee, days_overdue)
VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9, $10::numeric, $11)
RETURNING `+paymentColumns,
		payment.ContractID,
		nullInt64(payment.InstallmentID),
		payment.Amount,
		domain.CivilDate(payment.PaymentDate),
		payment.Method,
		payment.Reference,
		payment.Observations,
		nullInt64(payment.BankAccountID),
		payment.OperatorID,
		payment.LateFee,
		payment.DaysOverdue,
	))
	if err != nil {
		return domain.Payment{}, fmt.Errorf("insert payment: %w", err)
	}
	return created, nil
}

func scanPayment(row rowScanner) (domain.Payment, error) {
	var payment domain.Payment
	var installmentID, bankAccountID sql.NullInt64
	if err := row.Scan(
		&payment.ID,
		&payment.ContractID,
		&installmentID,
		&payment.Amount,
		&payment.PaymentDate,
		&payment.Method,
		&payment.Reference,
		&payment.Observations,
		&bankAccountID,
		&payment.OperatorID,
		&payment.LateFee,
		&payment.DaysOverdue,
		&payment.CreatedAt,
	); err != nil {
		return domain.Payment{}, err
	}
	payment.InstallmentID = int64FromNull(installmentID)
	payment.BankAccountID = int64FromNull(bankAccountID)
	return payment, nil
}
