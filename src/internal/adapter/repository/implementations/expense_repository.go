package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
)

const expenseColumns = `id, supplier, category, detail, invoice_number, invoice_date, amount, status, paid_date, payment_method, bank_account_id, operator_id, created_at`

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	logger.Info("expense repository create", logger.Fields{
		"supplier": expense.Supplier,
		"amount":   expense.Amount.String(),
	})

	created, err := scanExpense(r.db.QueryRowContext(ctx, `
INSERT INTO expenses (supplier, category, detail, invoice_number, invoice_date, amount, status, operator_id)
VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)
RETURNING `+expenseColumns,
		expense.Supplier,
		expense.Category,
		expense.Detail,
		expense.InvoiceNumber,
		domain.CivilDate(expense.InvoiceDate),
		expense.Amount,
		domain.ExpensePending,
		expense.OperatorID,
	))
	if err != nil {
		logger.Error("expense repository create failed", err, nil)
		return domain.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return created, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (domain.Expense, error) {
	expense, err := scanExpense(r.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Expense{}, commons.ErrRecordNotFound
		}
		logger.Error("expense repository get failed", err, logger.Fields{"expenseId": id})
		return domain.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return expense, nil
}

func (r *ExpenseRepository) List(ctx context.Context) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY invoice_date DESC, id`)
	if err != nil {
		logger.Error("expense repository list failed", err, nil)
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		out = append(out, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}
	return out, nil
}

func (r *ExpenseRepository) Void(ctx context.Context, id int64) (domain.Expense, error) {
	logger.Info("expense repository void", logger.Fields{"expenseId": id})

	voided, err := scanExpense(r.db.QueryRowContext(ctx, `
UPDATE expenses SET status = $2
WHERE id = $1 AND status = $3
RETURNING `+expenseColumns, id, domain.ExpenseVoided, domain.ExpensePending))
	if err == nil {
		return voided, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.Error("expense repository void failed", err, logger.Fields{"expenseId": id})
		return domain.Expense{}, fmt.Errorf("void expense: %w", err)
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Expense{}, err
	}
	if current.Status == domain.ExpensePaid {
		return domain.Expense{}, commons.ErrAlreadySettled
	}
	return domain.Expense{}, commons.ErrAlreadyVoided
}

func scanExpense(row rowScanner) (domain.Expense, error) {
	var expense domain.Expense
	var paidDate sql.NullTime
	var method sql.NullString
	var bankAccountID sql.NullInt64
	if err := row.Scan(
		&expense.ID,
		&expense.Supplier,
		&expense.Category,
		&expense.Detail,
		&expense.InvoiceNumber,
		&expense.InvoiceDate,
		&expense.Amount,
		&expense.Status,
		&paidDate,
		&method,
		&bankAccountID,
		&expense.OperatorID,
		&expense.CreatedAt,
	); err != nil {
		return domain.Expense{}, err
	}
	if paidDate.Valid {
		paid := paidDate.Time
		expense.PaidDate = &paid
	}
	expense.PaymentMethod = domain.PaymentMethod(method.String)
	expense.BankAccountID = int64FromNull(bankAccountID)
	return expense, nil
}
