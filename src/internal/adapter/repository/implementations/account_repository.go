package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
)

const registerColumns = `id, description, branch, balance, is_open, opened_at, last_reconciled_at, created_at, updated_at`

type RegisterRepository struct {
	db *sql.DB
}

func NewRegisterRepository(db *sql.DB) *RegisterRepository {
	return &RegisterRepository{db: db}
}

func (r *RegisterRepository) Create(ctx context.Context, register domain.Register) (domain.Register, error) {
	logger.Info("register repository create", logger.Fields{
		"description": register.Description,
		"branch":      register.Branch,
	})

	query := `
INSERT INTO registers (description, branch)
VALUES ($1, $2)
RETURNING ` + registerColumns

	created, err := scanRegister(r.db.QueryRowContext(ctx, query, register.Description, register.Branch))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Register{}, commons.ErrDuplicate
		}
		logger.Error("register repository create failed", err, logger.Fields{
			"description": register.Description,
		})
		return domain.Register{}, fmt.Errorf("create register: %w", err)
	}

	logger.Info("register repository create success", logger.Fields{"registerId": created.ID})
	return created, nil
}

func (r *RegisterRepository) GetByID(ctx context.Context, id int64) (domain.Register, error) {
	query := `SELECT ` + registerColumns + ` FROM registers WHERE id = $1`

	register, err := scanRegister(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Register{}, commons.ErrRecordNotFound
		}
		logger.Error("register repository get failed", err, logger.Fields{"registerId": id})
		return domain.Register{}, fmt.Errorf("get register: %w", err)
	}
	return register, nil
}

func (r *RegisterRepository) List(ctx context.Context) ([]domain.Register, error) {
	query := `SELECT ` + registerColumns + ` FROM registers ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("register repository list failed", err, nil)
		return nil, fmt.Errorf("list registers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Register, 0)
	for rows.Next() {
		register, err := scanRegister(rows)
		if err != nil {
			return nil, fmt.Errorf("scan register row: %w", err)
		}
		out = append(out, register)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate register rows: %w", err)
	}
	return out, nil
}

func scanRegister(row rowScanner) (domain.Register, error) {
	var register domain.Register
	var openedAt, reconciledAt sql.NullTime
	if err := row.Scan(
		&register.ID,
		&register.Description,
		&register.Branch,
		&register.Balance,
		&register.IsOpen,
		&openedAt,
		&reconciledAt,
		&register.CreatedAt,
		&register.UpdatedAt,
	); err != nil {
		return domain.Register{}, err
	}
	if openedAt.Valid {
		register.OpenedAt = &openedAt.Time
	}
	if reconciledAt.Valid {
		register.LastReconciledAt = &reconciledAt.Time
	}
	return register, nil
}

const bankAccountColumns = `id, institution, account_number, holder, account_type, currency, opening_balance, balance, created_at, updated_at`

type BankAccountRepository struct {
	db *sql.DB
}

func NewBankAccountRepository(db *sql.DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

func (r *BankAccountRepository) Create(ctx context.Context, account domain.BankAccount) (domain.BankAccount, error) {
	logger.Info("bank account repository create", logger.Fields{
		"institution":   account.Institution,
		"accountNumber": account.AccountNumber,
		"currency":      account.Currency,
	})

	query := `
INSERT INTO bank_accounts (institution, account_number, holder, account_type, currency, opening_balance, balance)
VALUES ($1, $2, $3, $4, $5, $6::numeric, $6::numeric)
RETURNING ` + bankAccountColumns

	created, err := scanBankAccount(r.db.QueryRowContext(
		ctx,
		query,
		account.Institution,
		account.AccountNumber,
		account.Holder,
		account.AccountType,
		account.Currency,
		account.OpeningBalance,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.BankAccount{}, commons.ErrDuplicate
		}
		logger.Error("bank account repository create failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.BankAccount{}, fmt.Errorf("create bank account: %w", err)
	}

	logger.Info("bank account repository create success", logger.Fields{"bankAccountId": created.ID})
	return created, nil
}

func (r *BankAccountRepository) GetByID(ctx context.Context, id int64) (domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE id = $1`

	account, err := scanBankAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BankAccount{}, commons.ErrRecordNotFound
		}
		logger.Error("bank account repository get failed", err, logger.Fields{"bankAccountId": id})
		return domain.BankAccount{}, fmt.Errorf("get bank account: %w", err)
	}
	return account, nil
}

func (r *BankAccountRepository) List(ctx context.Context) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("bank account repository list failed", err, nil)
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer rows.Close()

	out := make([]domain.BankAccount, 0)
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bank account row: %w", err)
		}
		out = append(out, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bank account rows: %w", err)
	}
	return out, nil
}

func scanBankAccount(row rowScanner) (domain.BankAccount, error) {
	var account domain.BankAccount
	var currency string
	if err := row.Scan(
		&account.ID,
		&account.Institution,
		&account.AccountNumber,
		&account.Holder,
		&account.AccountType,
		&currency,
		&account.OpeningBalance,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.BankAccount{}, err
	}
	account.Currency = domain.Currency(strings.TrimSpace(currency))
	return account, nil
}

const sessionColumns = `id, register_id, operator_id, opened_at, closed_at`

type RegisterSessionRepository struct {
	db *sql.DB
}

func NewRegisterSessionRepository(db *sql.DB) *RegisterSessionRepository {
	return &RegisterSessionRepository{db: db}
}

func (r *RegisterSessionRepository) GetOpen(ctx context.Context, sessionID string) (domain.RegisterSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM register_sessions WHERE id = $1 AND closed_at IS NULL`

	session, err := scanSession(r.db.QueryRowContext(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RegisterSession{}, commons.ErrRecordNotFound
		}
		logger.Error("register session repository get failed", err, logger.Fields{"sessionId": sessionID})
		return domain.RegisterSession{}, fmt.Errorf("get register session: %w", err)
	}
	return session, nil
}

func scanSession(row rowScanner) (domain.RegisterSession, error) {
	var session domain.RegisterSession
	var closedAt sql.NullTime
	if err := row.Scan(&session.ID, &session.RegisterID, &session.OperatorID, &session.OpenedAt, &closedAt); err != nil {
		return domain.RegisterSession{}, err
	}
	if closedAt.Valid {
		session.ClosedAt = &closedAt.Time
	}
	return session, nil
}
