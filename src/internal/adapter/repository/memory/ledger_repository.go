package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/shopspring/decimal"
)

type LedgerRepository struct {
	s *Store
}

func (r *LedgerRepository) OpenRegister(_ context.Context, posting domain.OpenRegisterPosting) (domain.Register, domain.RegisterSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	register, ok := r.s.registers[posting.RegisterID]
	if !ok {
		return domain.Register{}, domain.RegisterSession{}, commons.ErrRecordNotFound
	}
	if register.IsOpen {
		return domain.Register{}, domain.RegisterSession{}, commons.ErrAlreadyOpen
	}
	if posting.OpeningAmount.IsNegative() {
		return domain.Register{}, domain.RegisterSession{}, commons.ErrInvalidAmount
	}

	openedAt := posting.OpenedAt
	register.Balance = posting.OpeningAmount
	register.IsOpen = true
	register.OpenedAt = &openedAt
	register.UpdatedAt = r.s.now()

	session := domain.RegisterSession{
		ID:         posting.SessionID,
		RegisterID: register.ID,
		OperatorID: posting.OperatorID,
		OpenedAt:   openedAt,
	}

	uow := r.s.begin()
	if err := uow.stage(func() { r.s.registers[register.ID] = register }); err != nil {
		return domain.Register{}, domain.RegisterSession{}, err
	}
	if err := uow.stage(func() { r.s.sessions[session.ID] = session }); err != nil {
		return domain.Register{}, domain.RegisterSession{}, err
	}
	if posting.OpeningAmount.IsPositive() {
		movement := domain.Movement{
			ID:         r.s.id("movements"),
			RegisterID: register.ID,
			Kind:       domain.MovementIngress,
			Amount:     posting.OpeningAmount,
			Concept:    posting.Concept,
			OccurredAt: openedAt,
			OperatorID: posting.OperatorID,
			SessionID:  session.ID,
		}
		if err := uow.stage(func() { r.s.movements = append(r.s.movements, movement) }); err != nil {
			return domain.Register{}, domain.RegisterSession{}, err
		}
	}
	uow.commit()

	return register, session, nil
}

func (r *LedgerRepository) CloseRegister(_ context.Context, posting domain.CloseRegisterPosting) (domain.RegisterClosing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	register, ok := r.s.registers[posting.RegisterID]
	if !ok {
		return domain.RegisterClosing{}, commons.ErrRecordNotFound
	}
	if !register.IsOpen {
		return domain.RegisterClosing{}, commons.ErrAlreadyClosed
	}
	session, ok := r.s.openSession(posting.SessionID)
	if !ok || session.RegisterID != register.ID {
		return domain.RegisterClosing{}, commons.ErrRegisterNotOpen
	}

	var sessionMovements []domain.Movement
	for _, m := range r.s.movements {
		if m.SessionID == session.ID {
			sessionMovements = append(sessionMovements, m)
		}
	}
	totals := domain.SumMovements(sessionMovements)
	closingBalance := register.Balance
	closedAt := posting.ClosedAt

	uow := r.s.begin()
	if !closingBalance.IsZero() {
		kind := domain.MovementEgress
		if closingBalance.IsNegative() {
			kind = domain.MovementIngress
		}
		movement := domain.Movement{
			ID:         r.s.id("movements"),
			RegisterID: register.ID,
			Kind:       kind,
			Amount:     closingBalance.Abs(),
			Concept:    posting.Concept,
			OccurredAt: closedAt,
			OperatorID: session.OperatorID,
			SessionID:  session.ID,
		}
		if err := uow.stage(func() { r.s.movements = append(r.s.movements, movement) }); err != nil {
			return domain.RegisterClosing{}, err
		}
	}

	register.Balance = decimal.Zero
	register.IsOpen = false
	register.LastReconciledAt = &closedAt
	register.UpdatedAt = r.s.now()
	if err := uow.stage(func() { r.s.registers[register.ID] = register }); err != nil {
		return domain.RegisterClosing{}, err
	}
	session.ClosedAt = &closedAt
	if err := uow.stage(func() { r.s.sessions[session.ID] = session }); err != nil {
		return domain.RegisterClosing{}, err
	}
	uow.commit()

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

func (r *LedgerRepository) PostMovement(_ context.Context, posting domain.MovementPosting) (domain.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	register, session, err := r.s.openRegisterForSession(posting.SessionID)
	if err != nil {
		return domain.Movement{}, err
	}
	if !posting.Amount.IsPositive() {
		return domain.Movement{}, commons.ErrInvalidAmount
	}

	movement := domain.Movement{
		ID:         r.s.id("movements"),
		RegisterID: register.ID,
		Kind:       posting.Kind,
		Amount:     posting.Amount,
		Concept:    posting.Concept,
		OccurredAt: posting.OccurredAt,
		OperatorID: posting.OperatorID,
		SessionID:  session.ID,
	}
	register.Balance = register.Balance.Add(movement.Signed())
	register.UpdatedAt = r.s.now()

	uow := r.s.begin()
	if err := uow.stage(func() { r.s.movements = append(r.s.movements, movement) }); err != nil {
		return domain.Movement{}, err
	}
	if err := uow.stage(func() { r.s.registers[register.ID] = register }); err != nil {
		return domain.Movement{}, err
	}
	uow.commit()

	return movement, nil
}

func (r *LedgerRepository) PostDeposit(_ context.Context, posting domain.DepositPosting) (domain.Deposit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	deposit := posting.Deposit
	if !deposit.Amount.IsPositive() {
		return domain.Deposit{}, commons.ErrInvalidAmount
	}
	account, ok := r.s.accounts[deposit.BankAccountID]
	if !ok {
		return domain.Deposit{}, commons.ErrRecordNotFound
	}

	uow := r.s.begin()
	if deposit.Source == domain.DepositSourceRegister {
		register, session, err := r.s.openRegisterForSession(posting.SessionID)
		if err != nil {
			return domain.Deposit{}, err
		}
		movement := domain.Movement{
			ID:         r.s.id("movements"),
			RegisterID: register.ID,
			Kind:       domain.MovementEgress,
			Amount:     deposit.Amount,
			Concept:    posting.MovementConcept,
			OccurredAt: r.s.now(),
			OperatorID: deposit.OperatorID,
			SessionID:  session.ID,
		}
		register.Balance = register.Balance.Sub(deposit.Amount)
		register.UpdatedAt = r.s.now()
		if err := uow.stage(func() { r.s.movements = append(r.s.movements, movement) }); err != nil {
			return domain.Deposit{}, err
		}
		if err := uow.stage(func() { r.s.registers[register.ID] = register }); err != nil {
			return domain.Deposit{}, err
		}
	}

	deposit.ID = r.s.id("deposits")
	deposit.Status = domain.DepositConfirmed
	deposit.CreatedAt = r.s.now()
	account.Balance = account.Balance.Add(deposit.Amount)
	account.UpdatedAt = r.s.now()

	if err := uow.stage(func() { r.s.deposits[deposit.ID] = deposit }); err != nil {
		return domain.Deposit{}, err
	}
	if err := uow.stage(func() { r.s.accounts[account.ID] = account }); err != nil {
		return domain.Deposit{}, err
	}
	uow.commit()

	return deposit, nil
}

func (r *LedgerRepository) VoidDeposit(_ context.Context, depositID int64) (domain.Deposit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	deposit, ok := r.s.deposits[depositID]
	if !ok {
		return domain.Deposit{}, commons.ErrRecordNotFound
	}
	if deposit.Status == domain.DepositVoided {
		return domain.Deposit{}, commons.ErrAlreadyVoided
	}
	if deposit.Source == domain.DepositSourceExpense {
		return domain.Deposit{}, commons.ErrExpenseDebitVoid
	}
	account, ok := r.s.accounts[deposit.BankAccountID]
	if !ok {
		return domain.Deposit{}, commons.ErrRecordNotFound
	}

	deposit.Status = domain.DepositVoided
	account.Balance = account.Balance.Sub(deposit.Amount)
	account.UpdatedAt = r.s.now()

	uow := r.s.begin()
	if err := uow.stage(func() { r.s.accounts[account.ID] = account }); err != nil {
		return domain.Deposit{}, err
	}
	if err := uow.stage(func() { r.s.deposits[deposit.ID] = deposit }); err != nil {
		return domain.Deposit{}, err
	}
	uow.commit()

	return deposit, nil
}

func (r *LedgerRepository) Transfer(_ context.Context, posting domain.TransferPosting) (domain.TransferResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	source, ok := r.s.accounts[posting.SourceAccountID]
	if !ok {
		return domain.TransferResult{}, commons.ErrRecordNotFound
	}
	destination, ok := r.s.accounts[posting.DestinationAccountID]
	if !ok {
		return domain.TransferResult{}, commons.ErrRecordNotFound
	}
	if !posting.DebitAmount.IsPositive() || !posting.CreditAmount.IsPositive() {
		return domain.TransferResult{}, commons.ErrInvalidAmount
	}
	if source.Balance.LessThan(posting.DebitAmount) {
		return domain.TransferResult{}, commons.ErrInsufficientBalance
	}

	now := r.s.now()
	source.Balance = source.Balance.Sub(posting.DebitAmount)
	source.UpdatedAt = now
	destination.Balance = destination.Balance.Add(posting.CreditAmount)
	destination.UpdatedAt = now

	debit := domain.Deposit{
		ID:                   r.s.id("deposits"),
		BankAccountID:        source.ID,
		DepositDate:          posting.TransferDate,
		Amount:               posting.DebitAmount.Neg(),
		Reference:            posting.Reference,
		Concept:              posting.SourceConcept,
		Status:               domain.DepositConfirmed,
		Source:               domain.DepositSourceTransfer,
		CounterpartAccountID: int64Ptr(destination.ID),
		OperatorID:           posting.OperatorID,
		CreatedAt:            now,
	}
	credit := domain.Deposit{
		ID:                   r.s.id("deposits"),
		BankAccountID:        destination.ID,
		DepositDate:          posting.TransferDate,
		Amount:               posting.CreditAmount,
		Reference:            posting.Reference,
		Concept:              posting.DestinationConcept,
		Status:               domain.DepositConfirmed,
		Source:               domain.DepositSourceTransfer,
		CounterpartAccountID: int64Ptr(source.ID),
		OperatorID:           posting.OperatorID,
		CreatedAt:            now,
	}

	uow := r.s.begin()
	for _, apply := range []func(){
		func() { r.s.accounts[source.ID] = source },
		func() { r.s.accounts[destination.ID] = destination },
		func() { r.s.deposits[debit.ID] = debit },
		func() { r.s.deposits[credit.ID] = credit },
	} {
		if err := uow.stage(apply); err != nil {
			return domain.TransferResult{}, err
		}
	}
	uow.commit()

	return domain.TransferResult{
		Source:        source,
		Destination:   destination,
		DebitDeposit:  debit,
		CreditDeposit: credit,
		DebitAmount:   posting.DebitAmount,
		CreditAmount:  posting.CreditAmount,
	}, nil
}

func (r *LedgerRepository) SettleInstallment(_ context.Context, posting domain.SettlementPosting) (domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	installment, ok := r.s.installments[posting.InstallmentID]
	if !ok {
		return domain.Payment{}, commons.ErrRecordNotFound
	}
	if installment.Settled() {
		return domain.Payment{}, commons.ErrAlreadySettled
	}

	now := r.s.now()
	payment := posting.Payment
	payment.ID = r.s.id("payments")
	payment.ContractID = installment.ContractID
	payment.InstallmentID = int64Ptr(installment.ID)
	payment.CreatedAt = now

	uow := r.s.begin()
	if payment.Method == domain.PaymentCash {
		register, session, err := r.s.openRegisterForSession(posting.SessionID)
		if err != nil {
			return domain.Payment{}, err
		}
		movement := domain.Movement{
			ID:         r.s.id("movements"),
			RegisterID: register.ID,
			Kind:       domain.MovementIngress,
			Amount:     payment.Amount,
			Concept:    posting.MovementConcept,
			OccurredAt: now,
			PaymentID:  int64Ptr(payment.ID),
			OperatorID: payment.OperatorID,
			SessionID:  session.ID,
		}
		register.Balance = register.Balance.Add(payment.Amount)
		register.UpdatedAt = now
		if err := uow.stage(func() { r.s.movements = append(r.s.movements, movement) }); err != nil {
			return domain.Payment{}, err
		}
		if err := uow.stage(func() { r.s.registers[register.ID] = register }); err != nil {
			return domain.Payment{}, err
		}
	} else if payment.BankAccountID != nil {
		account, ok := r.s.accounts[*payment.BankAccountID]
		if !ok {
			return domain.Payment{}, commons.ErrRecordNotFound
		}
		deposit := domain.Deposit{
			ID:            r.s.id("deposits"),
			BankAccountID: account.ID,
			DepositDate:   payment.PaymentDate,
			Amount:        payment.Amount,
			Reference:     posting.DepositReference,
			Concept:       posting.DepositConcept,
			Status:        domain.DepositConfirmed,
			Source:        domain.DepositSourceSettlement,
			PaymentID:     int64Ptr(payment.ID),
			OperatorID:    payment.OperatorID,
			CreatedAt:     now,
		}
		account.Balance = account.Balance.Add(payment.Amount)
		account.UpdatedAt = now
		if err := uow.stage(func() { r.s.deposits[deposit.ID] = deposit }); err != nil {
			return domain.Payment{}, err
		}
		if err := uow.stage(func() { r.s.accounts[account.ID] = account }); err != nil {
			return domain.Payment{}, err
		}
	}

	paidDate := payment.PaymentDate
	installment.Status = domain.InstallmentPaid
	installment.PaidDate = &paidDate
	installment.PaidAmount = decimal.NewNullDecimal(payment.Amount)
	installment.Observations = payment.Observations

	if err := uow.stage(func() { r.s.payments[payment.ID] = payment }); err != nil {
		return domain.Payment{}, err
	}
	if err := uow.stage(func() { r.s.installments[installment.ID] = installment }); err != nil {
		return domain.Payment{}, err
	}
	uow.commit()

	return payment, nil
}

func (r *LedgerRepository) PayExpense(_ context.Context, posting domain.ExpensePaymentPosting) (domain.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	expense, ok := r.s.expenses[posting.ExpenseID]
	if !ok {
		return domain.Expense{}, commons.ErrRecordNotFound
	}
	switch expense.Status {
	case domain.ExpensePaid:
		return domain.Expense{}, commons.ErrAlreadySettled
	case domain.ExpenseVoided:
		return domain.Expense{}, commons.ErrAlreadyVoided
	}

	now := r.s.now()
	uow := r.s.begin()
	if posting.Method == domain.PaymentCash {
		register, session, err := r.s.openRegisterForSession(posting.SessionID)
		if err != nil {
			return domain.Expense{}, err
		}
		if register.Balance.LessThan(expense.Amount) {
			return domain.Expense{}, commons.ErrInsufficientBalance
		}
		movement := domain.Movement{
			ID:         r.s.id("movements"),
			RegisterID: register.ID,
			Kind:       domain.MovementEgress,
			Amount:     expense.Amount,
			Concept:    posting.MovementConcept,
			OccurredAt: now,
			OperatorID: posting.OperatorID,
			SessionID:  session.ID,
		}
		register.Balance = register.Balance.Sub(expense.Amount)
		register.UpdatedAt = now
		if err := uow.stage(func() { r.s.movements = append(r.s.movements, movement) }); err != nil {
			return domain.Expense{}, err
		}
		if err := uow.stage(func() { r.s.registers[register.ID] = register }); err != nil {
			return domain.Expense{}, err
		}
	} else {
		if posting.BankAccountID == nil {
			return domain.Expense{}, commons.NewValidationError("bankAccountId is required for non-cash payments")
		}
		account, ok := r.s.accounts[*posting.BankAccountID]
		if !ok {
			return domain.Expense{}, commons.ErrRecordNotFound
		}
		if account.Balance.LessThan(expense.Amount) {
			return domain.Expense{}, commons.ErrInsufficientBalance
		}
		deposit := domain.Deposit{
			ID:            r.s.id("deposits"),
			BankAccountID: account.ID,
			DepositDate:   posting.PaidDate,
			Amount:        expense.Amount.Neg(),
			Reference:     posting.Reference,
			Concept:       posting.DepositConcept,
			Status:        domain.DepositConfirmed,
			Source:        domain.DepositSourceExpense,
			OperatorID:    posting.OperatorID,
			CreatedAt:     now,
		}
		account.Balance = account.Balance.Sub(expense.Amount)
		account.UpdatedAt = now
		if err := uow.stage(func() { r.s.deposits[deposit.ID] = deposit }); err != nil {
			return domain.Expense{}, err
		}
		if err := uow.stage(func() { r.s.accounts[account.ID] = account }); err != nil {
			return domain.Expense{}, err
		}
		expense.BankAccountID = int64Ptr(account.ID)
	}

	paidDate := posting.PaidDate
	expense.Status = domain.ExpensePaid
	expense.PaidDate = &paidDate
	expense.PaymentMethod = posting.Method
	if err := uow.stage(func() { r.s.expenses[expense.ID] = expense }); err != nil {
		return domain.Expense{}, err
	}
	uow.commit()

	return expense, nil
}

func (r *LedgerRepository) ListMovements(_ context.Context, registerID int64, from, to *time.Time) ([]domain.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.registers[registerID]; !ok {
		return nil, commons.ErrRecordNotFound
	}

	out := make([]domain.Movement, 0)
	for _, m := range r.s.movements {
		if m.RegisterID == registerID && withinRange(m.OccurredAt, from, to) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LedgerRepository) ListSessionMovements(_ context.Context, sessionID string) ([]domain.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Movement, 0)
	for _, m := range r.s.movements {
		if strings.EqualFold(m.SessionID, sessionID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *LedgerRepository) ListDeposits(_ context.Context, bankAccountID int64, from, to *time.Time) ([]domain.Deposit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[bankAccountID]; !ok {
		return nil, commons.ErrRecordNotFound
	}

	out := make([]domain.Deposit, 0)
	for _, id := range sortedIDs(r.s.deposits) {
		d := r.s.deposits[id]
		if d.BankAccountID == bankAccountID && withinRange(d.DepositDate, from, to) {
			out = append(out, d)
		}
	}
	return out, nil
}
