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

// LedgerRepository runs every posting in a single transaction. Balance rows
// are locked with SELECT ... FOR UPDATE before they are read, so concurrent
// postings against the same register or bank account serialize.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) OpenRegister(ctx context.Context, posting domain.OpenRegisterPosting) (domain.Register, domain.RegisterSession, error) {
	logger.Info("ledger repository open register", logger.Fields{
		"registerId": posting.RegisterID,
		"operatorId": posting.OperatorID,
		"amount":     posting.OpeningAmount.String(),
	})

	if posting.OpeningAmount.IsNegative() {
		return domain.Register{}, domain.RegisterSession{}, commons.ErrInvalidAmount
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Register{}, domain.RegisterSession{}, fmt.Errorf("begin open register tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	register, err := lockRegister(ctx, tx, posting.RegisterID)
	if err != nil {
		return domain.Register{}, domain.RegisterSession{}, err
	}
	if register.IsOpen {
		return domain.Register{}, domain.RegisterSession{}, commons.ErrAlreadyOpen
	}

	register, err = scanRegister(tx.QueryRowContext(ctx, `
UPDATE registers
SET balance = $2::numeric, is_open = TRUE, opened_at = $3, updated_at = NOW()
WHERE id = $1
RETURNING `+registerColumns, register.ID, posting.OpeningAmount, posting.OpenedAt))
	if err != nil {
		return domain.Register{}, domain.RegisterSession{}, fmt.Errorf("mark register open: %w", err)
	}

	session, err := scanSession(tx.QueryRowContext(ctx, `
INSERT INTO register_sessions (id, register_id, operator_id, opened_at)
VALUES ($1, $2, $3, $4)
RETURNING `+sessionColumns, posting.SessionID, register.ID, posting.OperatorID, posting.OpenedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Register{}, domain.RegisterSession{}, commons.ErrAlreadyOpen
		}
		return domain.Register{}, domain.RegisterSession{}, fmt.Errorf("insert register session: %w", err)
	}

	if posting.OpeningAmount.IsPositive() {
		if _, err := insertMovement(ctx, tx, domain.Movement{
			RegisterID: register.ID,
			Kind:       domain.MovementIngress,
			Amount:     posting.OpeningAmount,
			Concept:    posting.Concept,
			OccurredAt: posting.OpenedAt,
			OperatorID: posting.OperatorID,
			SessionID:  session.ID,
		}); err != nil {
			return domain.Register{}, domain.RegisterSession{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Register{}, domain.RegisterSession{}, fmt.Errorf("commit open register tx: %w", err)
	}

	logger.Info("ledger repository open register success", logger.Fields{
		"registerId": register.ID,
		"sessionId":  session.ID,
	})
	return register, session, nil
}

func (r *LedgerRepository) CloseRegister(ctx context.Context, posting domain.CloseRegisterPosting) (domain.RegisterClosing, error) {
	logger.Info("ledger repository close register", logger.Fields{
		"registerId": posting.RegisterID,
		"sessionId":  posting.SessionID,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.RegisterClosing{}, fmt.Errorf("begin close register tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	register, err := lockRegister(ctx, tx, posting.RegisterID)
	if err != nil {
		return domain.RegisterClosing{}, err
	}
	if !register.IsOpen {
		return domain.RegisterClosing{}, commons.ErrAlreadyClosed
	}

	session, err := openSessionTx(ctx, tx, posting.SessionID)
	if err != nil {
		return domain.RegisterClosing{}, err
	}
	if session.RegisterID != register.ID {
		return domain.RegisterClosing{}, commons.ErrRegisterNotOpen
	}

	sessionMovements, err := queryMovements(ctx, tx, `WHERE session_id = $1 ORDER BY id`, session.ID)
	if err != nil {
		return domain.RegisterClosing{}, err
	}
	totals := domain.SumMovements(sessionMovements)
	closingBalance := register.Balance
	closedAt := posting.ClosedAt

	if !closingBalance.IsZero() {
		kind := domain.MovementEgress
		if closingBalance.IsNegative() {
			kind = domain.MovementIngress
		}
		if _, err := insertMovement(ctx, tx, domain.Movement{
			RegisterID: register.ID,
			Kind:       kind,
			Amount:     closingBalance.Abs(),
			Concept:    posting.Concept,
			OccurredAt: closedAt,
			OperatorID: session.OperatorID,
			SessionID:  session.ID,
		}); err != nil {
			return domain.RegisterClosing{}, err
		}
	}

	register, err = scanRegister(tx.QueryRowContext(ctx, `
UPDATE registers
SET balance = 0, is_open = FALSE, last_reconciled_at = $2, updated_at = NOW()
WHERE id = $1
RETURNING `+registerColumns, register.ID, closedAt))
	if err != nil {
		return domain.RegisterClosing{}, fmt.Errorf("mark register closed: %w", err)
	}

	if _, err := execRequiredRows(ctx, tx, `UPDATE register_sessions SET closed_at = $2 WHERE id = $1 AND closed_at IS NULL`, session.ID, closedAt); err != nil {
		return domain.RegisterClosing{}, fmt.Errorf("close register session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.RegisterClosing{}, fmt.Errorf("commit close register tx: %w", err)
	}

	logger.Info("ledger repository close register success", logger.Fields{
		"registerId":     register.ID,
		"closingBalance": closingBalance.String(),
	})

	return domain.RegisterClosing{
		Register:       register,
		SessionID:      session.ID,
		ClosingBalance: closingBalance,
		TotalIn:        totals.TotalIn,
		TotalOut:       totals.TotalOut,
		MovementCount:  totals.Count,
		ClosedAt:       closedAt,
	}, nil
}

func (r *LedgerRepository) PostMovement(ctx context.Context, posting domain.MovementPosting) (domain.Movement, error) {
	logger.Info("ledger repository post movement", logger.Fields{
		"sessionId": posting.SessionID,
		"kind":      posting.Kind,
		"amount":    posting.Amount.String(),
	})

	if !posting.Amount.IsPositive() {
		return domain.Movement{}, commons.ErrInvalidAmount
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Movement{}, fmt.Errorf("begin post movement tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	register, session, err := lockRegisterForSession(ctx, tx, posting.SessionID)
	if err != nil {
		return domain.Movement{}, err
	}

	movement, err := insertMovement(ctx, tx, domain.Movement{
		RegisterID: register.ID,
		Kind:       posting.Kind,
		Amount:     posting.Amount,
		Concept:    posting.Concept,
		OccurredAt: posting.OccurredAt,
		OperatorID: posting.OperatorID,
		SessionID:  session.ID,
	})
	if err != nil {
		return domain.Movement{}, err
	}
	if err := adjustRegisterBalance(ctx, tx, register.ID, movement.Signed()); err != nil {
		return domain.Movement{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Movement{}, fmt.Errorf("commit post movement tx: %w", err)
	}
	return movement, nil
}

func (r *LedgerRepository) PostDeposit(ctx context.Context, posting domain.DepositPosting) (domain.Deposit, error) {
	deposit := posting.Deposit
	logger.Info("ledger repository post deposit", logger.Fields{
		"bankAccountId": deposit.BankAccountID,
		"source":        deposit.Source,
		"amount":        deposit.Amount.String(),
	})
	if !deposit.Amount.IsPositive() {
		return domain.Deposit{}, commons.ErrInvalidAmount
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Deposit{}, fmt.Errorf("begin post deposit tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	account, err := lockBankAccount(ctx, tx, deposit.BankAccountID)
	if err != nil {
		return domain.Deposit{}, err
	}

	if deposit.Source == domain.DepositSourceRegister {
		register, session, err := lockRegisterForSession(ctx, tx, posting.SessionID)
		if err != nil {
			return domain.Deposit{}, err
		}
		if _, err := insertMovement(ctx, tx, domain.Movement{
			RegisterID: register.ID,
			Kind:       domain.MovementEgress,
			Amount:     deposit.Amount,
			Concept:    posting.MovementConcept,
			OccurredAt: time.Now().UTC(),
			OperatorID: deposit.OperatorID,
			SessionID:  session.ID,
		}); err != nil {
			return domain.Deposit{}, err
		}
		if err := adjustRegisterBalance(ctx, tx, register.ID, deposit.Amount.Neg()); err != nil {
			return domain.Deposit{}, err
		}
	}

	deposit.Status = domain.DepositConfirmed
	created, err := insertDeposit(ctx, tx, deposit)
	if err != nil {
		return domain.Deposit{}, err
	}
	if err := adjustBankBalance(ctx, tx, account.ID, created.Amount); err != nil {
		return domain.Deposit{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Deposit{}, fmt.Errorf("commit post deposit tx: %w", err)
	}

	logger.Info("ledger repository post deposit success", logger.Fields{"depositId": created.ID})
	return created, nil
}

func (r *LedgerRepository) VoidDeposit(ctx context.Context, depositID int64) (domain.Deposit, error) {
	logger.Info("ledger repository void deposit", logger.Fields{"depositId": depositID})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Deposit{}, fmt.Errorf("begin void deposit tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deposit, err := scanDeposit(tx.QueryRowContext(ctx, `SELECT `+depositColumns+` FROM deposits WHERE id = $1 FOR UPDATE`, depositID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Deposit{}, commons.ErrRecordNotFound
		}
		return domain.Deposit{}, fmt.Errorf("lock deposit: %w", err)
	}
	if deposit.Status == domain.DepositVoided {
		return domain.Deposit{}, commons.ErrAlreadyVoided
	}
	if deposit.Source == domain.DepositSourceExpense {
		return domain.Deposit{}, commons.ErrExpenseDebitVoid
	}
	if _, err := lockBankAccount(ctx, tx, deposit.BankAccountID); err != nil {
		return domain.Deposit{}, err
	}

	if _, err := execRequiredRows(ctx, tx, `UPDATE deposits SET status = $2 WHERE id = $1`, deposit.ID, domain.DepositVoided); err != nil {
		return domain.Deposit{}, fmt.Errorf("void deposit: %w", err)
	}
	if err := adjustBankBalance(ctx, tx, deposit.BankAccountID, deposit.Amount.Neg()); err != nil {
		return domain.Deposit{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Deposit{}, fmt.Errorf("commit void deposit tx: %w", err)
	}

	deposit.Status = domain.DepositVoided
	return deposit, nil
}

func (r *LedgerRepository) Transfer(ctx context.Context, posting domain.TransferPosting) (domain.TransferResult, error) {
	logger.Info("ledger repository transfer", logger.Fields{
		"sourceAccountId":      posting.SourceAccountID,
		"destinationAccountId": posting.DestinationAccountID,
		"debitAmount":          posting.DebitAmount.String(),
		"creditAmount":         posting.CreditAmount.String(),
		"reference":            posting.Reference,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.TransferResult{}, fmt.Errorf("begin transfer tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Both rows are locked in id order so opposite transfers cannot deadlock.
	rows, err := tx.QueryContext(ctx, `
SELECT `+bankAccountColumns+`
FROM bank_accounts
WHERE id IN ($1, $2)
ORDER BY id
FOR UPDATE`, posting.SourceAccountID, posting.DestinationAccountID)
	if err != nil {
		return domain.TransferResult{}, fmt.Errorf("lock transfer accounts: %w", err)
	}
	locked := make(map[int64]domain.BankAccount, 2)
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			rows.Close()
			return domain.TransferResult{}, fmt.Errorf("scan transfer account: %w", err)
		}
		locked[account.ID] = account
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return domain.TransferResult{}, fmt.Errorf("iterate transfer accounts: %w", err)
	}
	rows.Close()

	source, ok := locked[posting.SourceAccountID]
	if !ok {
		return domain.TransferResult{}, commons.ErrRecordNotFound
	}
	destination, ok := locked[posting.DestinationAccountID]
	if !ok {
		return domain.TransferResult{}, commons.ErrRecordNotFound
	}
	if !posting.DebitAmount.IsPositive() || !posting.CreditAmount.IsPositive() {
		return domain.TransferResult{}, commons.ErrInvalidAmount
	}
	if source.Balance.LessThan(posting.DebitAmount) {
		return domain.TransferResult{}, commons.ErrInsufficientBalance
	}

	debit, err := insertDeposit(ctx, tx, domain.Deposit{
		BankAccountID:        source.ID,
		DepositDate:          posting.TransferDate,
		Amount:               posting.DebitAmount.Neg(),
		Reference:            posting.Reference,
		Concept:              posting.SourceConcept,
		Status:               domain.DepositConfirmed,
		Source:               domain.DepositSourceTransfer,
		CounterpartAccountID: &destination.ID,
		OperatorID:           posting.OperatorID,
	})
	if err != nil {
		return domain.TransferResult{}, err
	}
	credit, err := insertDeposit(ctx, tx, domain.Deposit{
		BankAccountID:        destination.ID,
		DepositDate:          posting.TransferDate,
		Amount:               posting.CreditAmount,
		Reference:            posting.Reference,
		Concept:              posting.DestinationConcept,
		Status:               domain.DepositConfirmed,
		Source:               domain.DepositSourceTransfer,
		CounterpartAccountID: &source.ID,
		OperatorID:           posting.OperatorID,
	})
	if err != nil {
		return domain.TransferResult{}, err
	}

	if err := debitBankBalance(ctx, tx, source.ID, posting.DebitAmount); err != nil {
		return domain.TransferResult{}, err
	}
	if err := adjustBankBalance(ctx, tx, destination.ID, posting.CreditAmount); err != nil {
		return domain.TransferResult{}, err
	}

	source.Balance = source.Balance.Sub(posting.DebitAmount)
	destination.Balance = destination.Balance.Add(posting.CreditAmount)

	if err := tx.Commit(); err != nil {
		return domain.TransferResult{}, fmt.Errorf("commit transfer tx: %w", err)
	}

	logger.Info("ledger repository transfer success", logger.Fields{
		"reference":       posting.Reference,
		"debitDepositId":  debit.ID,
		"creditDepositId": credit.ID,
	})

	return domain.TransferResult{
		Source:        source,
		Destination:   destination,
		DebitDeposit:  debit,
		CreditDeposit: credit,
		DebitAmount:   posting.DebitAmount,
		CreditAmount:  posting.CreditAmount,
	}, nil
}

func (r *LedgerRepository) SettleInstallment(ctx context.Context, posting domain.SettlementPosting) (domain.Payment, error) {
	logger.Info("ledger repository settle installment", logger.Fields{
		"installmentId": posting.InstallmentID,
		"method":        posting.Payment.Method,
		"amount":        posting.Payment.Amount.String(),
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("begin settlement tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	installment, err := scanInstallment(tx.QueryRowContext(ctx, `SELECT `+installmentColumns+` FROM installments WHERE id = $1 FOR UPDATE`, posting.InstallmentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Payment{}, commons.ErrRecordNotFound
		}
		return domain.Payment{}, fmt.Errorf("lock installment: %w", err)
	}
	if installment.Settled() {
		return domain.Payment{}, commons.ErrAlreadySettled
	}

	payment := posting.Payment
	payment.ContractID = installment.ContractID
	payment.InstallmentID = &installment.ID
	payment, err = insertPayment(ctx, tx, payment)
	if err != nil {
		return domain.Payment{}, err
	}

	if payment.Method == domain.PaymentCash {
		register, session, err := lockRegisterForSession(ctx, tx, posting.SessionID)
		if err != nil {
			return domain.Payment{}, err
		}
		if _, err := insertMovement(ctx, tx, domain.Movement{
			RegisterID: register.ID,
			Kind:       domain.MovementIngress,
			Amount:     payment.Amount,
			Concept:    posting.MovementConcept,
			OccurredAt: payment.CreatedAt,
			PaymentID:  &payment.ID,
			OperatorID: payment.OperatorID,
			SessionID:  session.ID,
		}); err != nil {
			return domain.Payment{}, err
		}
		if err := adjustRegisterBalance(ctx, tx, register.ID, payment.Amount); err != nil {
			return domain.Payment{}, err
		}
	} else if payment.BankAccountID != nil {
		account, err := lockBankAccount(ctx, tx, *payment.BankAccountID)
		if err != nil {
			return domain.Payment{}, err
		}
		if _, err := insertDeposit(ctx, tx, domain.Deposit{
			BankAccountID: account.ID,
			DepositDate:   payment.PaymentDate,
			Amount:        payment.Amount,
			Reference:     posting.DepositReference,
			Concept:       posting.DepositConcept,
			Status:        domain.DepositConfirmed,
			Source:        domain.DepositSourceSettlement,
			PaymentID:     &payment.ID,
			OperatorID:    payment.OperatorID,
		}); err != nil {
			return domain.Payment{}, err
		}
		if err := adjustBankBalance(ctx, tx, account.ID, payment.Amount); err != nil {
			return domain.Payment{}, err
		}
	}

	if _, err := execRequiredRows(ctx, tx, `
UPDATE installments
SET status = $2, paid_date = $3, paid_amount = $4::numeric, observations = $5
WHERE id = $1 AND status <> $2`,
		installment.ID,
		domain.InstallmentPaid,
		payment.PaymentDate,
		payment.Amount,
		payment.Observations,
	); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return domain.Payment{}, commons.ErrAlreadySettled
		}
		return domain.Payment{}, fmt.Errorf("mark installment paid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Payment{}, fmt.Errorf("commit settlement tx: %w", err)
	}

	logger.Info("ledger repository settle installment success", logger.Fields{
		"installmentId": installment.ID,
		"paymentId":     payment.ID,
	})
	return payment, nil
}

func (r *LedgerRepository) PayExpense(ctx context.Context, posting domain.ExpensePaymentPosting) (domain.Expense, error) {
	logger.Info("ledger repository pay expense", logger.Fields{
		"expenseId": posting.ExpenseID,
		"method":    posting.Method,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("begin pay expense tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	expense, err := scanExpense(tx.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1 FOR UPDATE`, posting.ExpenseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Expense{}, commons.ErrRecordNotFound
		}
		return domain.Expense{}, fmt.Errorf("lock expense: %w", err)
	}
	switch expense.Status {
	case domain.ExpensePaid:
		return domain.Expense{}, commons.ErrAlreadySettled
	case domain.ExpenseVoided:
		return domain.Expense{}, commons.ErrAlreadyVoided
	}

	var bankAccountID *int64
	if posting.Method == domain.PaymentCash {
		register, session, err := lockRegisterForSession(ctx, tx, posting.SessionID)
		if err != nil {
			return domain.Expense{}, err
		}
		if err := debitRegisterBalance(ctx, tx, register.ID, expense.Amount); err != nil {
			return domain.Expense{}, err
		}
		if _, err := insertMovement(ctx, tx, domain.Movement{
			RegisterID: register.ID,
			Kind:       domain.MovementEgress,
			Amount:     expense.Amount,
			Concept:    posting.MovementConcept,
			OccurredAt: time.Now().UTC(),
			OperatorID: posting.OperatorID,
			SessionID:  session.ID,
		}); err != nil {
			return domain.Expense{}, err
		}
	} else {
		if posting.BankAccountID == nil {
			return domain.Expense{}, commons.NewValidationError("bankAccountId is required for non-cash payments")
		}
		account, err := lockBankAccount(ctx, tx, *posting.BankAccountID)
		if err != nil {
			return domain.Expense{}, err
		}
		if err := debitBankBalance(ctx, tx, account.ID, expense.Amount); err != nil {
			return domain.Expense{}, err
		}
		if _, err := insertDeposit(ctx, tx, domain.Deposit{
			BankAccountID: account.ID,
			DepositDate:   posting.PaidDate,
			Amount:        expense.Amount.Neg(),
			Reference:     posting.Reference,
			Concept:       posting.DepositConcept,
			Status:        domain.DepositConfirmed,
			Source:        domain.DepositSourceExpense,
			OperatorID:    posting.OperatorID,
		}); err != nil {
			return domain.Expense{}, err
		}
		bankAccountID = &account.ID
	}

	paid, err := scanExpense(tx.QueryRowContext(ctx, `
UPDATE expenses
SET status = $2, paid_date = $3, payment_method = $4, bank_account_id = $5
WHERE id = $1
RETURNING `+expenseColumns,
		expense.ID,
		domain.ExpensePaid,
		domain.CivilDate(posting.PaidDate),
		posting.Method,
		nullInt64(bankAccountID),
	))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("mark expense paid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Expense{}, fmt.Errorf("commit pay expense tx: %w", err)
	}

	logger.Info("ledger repository pay expense success", logger.Fields{"expenseId": paid.ID})
	return paid, nil
}

func (r *LedgerRepository) ListMovements(ctx context.Context, registerID int64, from, to *time.Time) ([]domain.Movement, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM registers WHERE id = $1)`, registerID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check register: %w", err)
	}
	if !exists {
		return nil, commons.ErrRecordNotFound
	}

	return queryMovements(ctx, r.db, `
WHERE register_id = $1
	AND ($2::date IS NULL OR (occurred_at AT TIME ZONE 'UTC')::date >= $2::date)
	AND ($3::date IS NULL OR (occurred_at AT TIME ZONE 'UTC')::date <= $3::date)
ORDER BY id`, registerID, civilDateArg(from), civilDateArg(to))
}

func (r *LedgerRepository) ListSessionMovements(ctx context.Context, sessionID string) ([]domain.Movement, error) {
	return queryMovements(ctx, r.db, `WHERE lower(session_id) = lower($1) ORDER BY id`, strings.TrimSpace(sessionID))
}

func (r *LedgerRepository) ListDeposits(ctx context.Context, bankAccountID int64, from, to *time.Time) ([]domain.Deposit, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM bank_accounts WHERE id = $1)`, bankAccountID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check bank account: %w", err)
	}
	if !exists {
		return nil, commons.ErrRecordNotFound
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+depositColumns+`
FROM deposits
WHERE bank_account_id = $1
	AND ($2::date IS NULL OR deposit_date >= $2::date)
	AND ($3::date IS NULL OR deposit_date <= $3::date)
ORDER BY id`, bankAccountID, civilDateArg(from), civilDateArg(to))
	if err != nil {
		logger.Error("ledger repository list deposits failed", err, logger.Fields{"bankAccountId": bankAccountID})
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Deposit, 0)
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deposit row: %w", err)
		}
		out = append(out, deposit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deposit rows: %w", err)
	}
	return out, nil
}

func lockRegister(ctx context.Context, tx *sql.Tx, registerID int64) (domain.Register, error) {
	register, err := scanRegister(tx.QueryRowContext(ctx, `SELECT `+registerColumns+` FROM registers WHERE id = $1 FOR UPDATE`, registerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Register{}, commons.ErrRecordNotFound
		}
		return domain.Register{}, fmt.Errorf("lock register: %w", err)
	}
	return register, nil
}

// openSessionTx maps a missing or closed session to ErrRegisterNotOpen.
func openSessionTx(ctx context.Context, tx *sql.Tx, sessionID string) (domain.RegisterSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.RegisterSession{}, commons.ErrRegisterNotOpen
	}
	session, err := scanSession(tx.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM register_sessions WHERE id = $1 AND closed_at IS NULL`, sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RegisterSession{}, commons.ErrRegisterNotOpen
		}
		return domain.RegisterSession{}, fmt.Errorf("get register session: %w", err)
	}
	return session, nil
}

// lockRegisterForSession locks the register a session belongs to and then
// re-reads the session, since closing takes the same register lock first.
func lockRegisterForSession(ctx context.Context, tx *sql.Tx, sessionID string) (domain.Register, domain.RegisterSession, error) {
	session, err := openSessionTx(ctx, tx, sessionID)
	if err != nil {
		return domain.Register{}, domain.RegisterSession{}, err
	}
	register, err := lockRegister(ctx, tx, session.RegisterID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return domain.Register{}, domain.RegisterSession{}, commons.ErrRegisterNotOpen
		}
		return domain.Register{}, domain.RegisterSession{}, err
	}
	session, err = openSessionTx(ctx, tx, sessionID)
	if err != nil {
		return domain.Register{}, domain.RegisterSession{}, err
	}
	if !register.IsOpen {
		return domain.Register{}, domain.RegisterSession{}, commons.ErrRegisterNotOpen
	}
	return register, session, nil
}

func lockBankAccount(ctx context.Context, tx *sql.Tx, accountID int64) (domain.BankAccount, error) {
	account, err := scanBankAccount(tx.QueryRowContext(ctx, `SELECT `+bankAccountColumns+` FROM bank_accounts WHERE id = $1 FOR UPDATE`, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BankAccount{}, commons.ErrRecordNotFound
		}
		return domain.BankAccount{}, fmt.Errorf("lock bank account: %w", err)
	}
	return account, nil
}

func adjustRegisterBalance(ctx context.Context, tx *sql.Tx, registerID int64, delta decimal.Decimal) error {
	if _, err := execRequiredRows(ctx, tx, `UPDATE registers SET balance = balance + $2::numeric, updated_at = NOW() WHERE id = $1`, registerID, delta); err != nil {
		return fmt.Errorf("adjust register balance: %w", err)
	}
	return nil
}

func adjustBankBalance(ctx context.Context, tx *sql.Tx, accountID int64, delta decimal.Decimal) error {
	if _, err := execRequiredRows(ctx, tx, `UPDATE bank_accounts SET balance = balance + $2::numeric, updated_at = NOW() WHERE id = $1`, accountID, delta); err != nil {
		return fmt.Errorf("adjust bank account balance: %w", err)
	}
	return nil
}

// debitBankBalance subtracts amount only while the balance covers it and
// reports commons.ErrInsufficientBalance otherwise.
func debitBankBalance(ctx context.Context, tx *sql.Tx, accountID int64, amount decimal.Decimal) error {
	_, err := execRequiredRows(ctx, tx, `
UPDATE bank_accounts SET balance = balance - $2::numeric, updated_at = NOW()
WHERE id = $1 AND balance >= $2::numeric`, accountID, amount)
	if errors.Is(err, commons.ErrRecordNotFound) {
		return commons.ErrInsufficientBalance
	}
	if err != nil {
		return fmt.Errorf("debit bank account balance: %w", err)
	}
	return nil
}

func debitRegisterBalance(ctx context.Context, tx *sql.Tx, registerID int64, amount decimal.Decimal) error {
	_, err := execRequiredRows(ctx, tx, `
UPDATE registers SET balance = balance - $2::numeric, updated_at = NOW()
WHERE id = $1 AND balance >= $2::numeric`, registerID, amount)
	if errors.Is(err, commons.ErrRecordNotFound) {
		return commons.ErrInsufficientBalance
	}
	if err != nil {
		return fmt.Errorf("debit register balance: %w", err)
	}
	return nil
}

const movementColumns = `id, register_id, kind, amount, concept, occurred_at, payment_id, operator_id, session_id`

func insertMovement(ctx context.Context, tx *sql.Tx, movement domain.Movement) (domain.Movement, error) {
	created, err := scanMovement(tx.QueryRowContext(ctx, `
INSERT INTO movements (register_id, kind, amount, concept, occurred_at, payment_id, operator_id, session_id)
VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8)
RETURNING `+movementColumns,
		movement.RegisterID,
		movement.Kind,
		movement.Amount,
		movement.Concept,
		movement.OccurredAt,
		nullInt64(movement.PaymentID),
		movement.OperatorID,
		nullString(movement.SessionID),
	))
	if err != nil {
		return domain.Movement{}, fmt.Errorf("insert movement: %w", err)
	}
	return created, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryMovements(ctx context.Context, db queryer, where string, args ...any) ([]domain.Movement, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+movementColumns+` FROM movements `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Movement, 0)
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement row: %w", err)
		}
		out = append(out, movement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movement rows: %w", err)
	}
	return out, nil
}

func scanMovement(row rowScanner) (domain.Movement, error) {
	var movement domain.Movement
	var paymentID sql.NullInt64
	var sessionID sql.NullString
	if err := row.Scan(
		&movement.ID,
		&movement.RegisterID,
		&movement.Kind,
		&movement.Amount,
		&movement.Concept,
		&movement.OccurredAt,
		&paymentID,
		&movement.OperatorID,
		&sessionID,
	); err != nil {
		return domain.Movement{}, err
	}
	movement.PaymentID = int64FromNull(paymentID)
	movement.SessionID = sessionID.String
	return movement, nil
}

const depositColumns = `id, bank_account_id, deposit_date, amount, reference, concept, status, source, counterpart_account_id, payment_id, operator_id, created_at`

func insertDeposit(ctx context.Context, tx *sql.Tx, deposit domain.Deposit) (domain.Deposit, error) {
	created, err := scanDeposit(tx.QueryRowContext(ctx, `
INSERT INTO deposits (bank_account_id, deposit_date, amount, reference, concept, status, source, counterpart_account_id, payment_id, operator_id)
VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9, $10)
RETURNING `+depositColumns,
		deposit.BankAccountID,
		domain.CivilDate(deposit.DepositDate),
		deposit.Amount,
		deposit.Reference,
		deposit.Concept,
		deposit.Status,
		deposit.Source,
		nullInt64(deposit.CounterpartAccountID),
		nullInt64(deposit.PaymentID),
		deposit.OperatorID,
	))
	if err != nil {
		return domain.Deposit{}, fmt.Errorf("insert deposit: %w", err)
	}
	return created, nil
}

func scanDeposit(row rowScanner) (domain.Deposit, error) {
	var deposit domain.Deposit
	var counterpartID, paymentID sql.NullInt64
	if err := row.Scan(
		&deposit.ID,
		&deposit.BankAccountID,
		&deposit.DepositDate,
		&deposit.Amount,
		&deposit.Reference,
		&deposit.Concept,
		&deposit.Status,
		&deposit.Source,
		&counterpartID,
		&paymentID,
		&deposit.OperatorID,
		&deposit.CreatedAt,
	); err != nil {
		return domain.Deposit{}, err
	}
	deposit.CounterpartAccountID = int64FromNull(counterpartID)
	deposit.PaymentID = int64FromNull(paymentID)
	return deposit, nil
}

// civilDateArg passes an optional range bound as a date, or NULL when unset.
func civilDateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return domain.CivilDate(*t)
}
