package memory

import (
	"context"
	"strings"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/shopspring/decimal"
)

type RegisterRepository struct {
	s *Store
}

func (r *RegisterRepository) Create(_ context.Context, register domain.Register) (domain.Register, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.registers {
		if strings.EqualFold(existing.Description, register.Description) {
			return domain.Register{}, commons.ErrDuplicate
		}
	}

	now := r.s.now()
	register.ID = r.s.id("registers")
	register.Balance = decimal.Zero
	register.IsOpen = false
	register.OpenedAt = nil
	register.CreatedAt = now
	register.UpdatedAt = now
	r.s.registers[register.ID] = register
	return register, nil
}

func (r *RegisterRepository) GetByID(_ context.Context, id int64) (domain.Register, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	register, ok := r.s.registers[id]
	if !ok {
		return domain.Register{}, commons.ErrRecordNotFound
	}
	return register, nil
}

func (r *RegisterRepository) List(_ context.Context) ([]domain.Register, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Register, 0, len(r.s.registers))
	for _, id := range sortedIDs(r.s.registers) {
		out = append(out, r.s.registers[id])
	}
	return out, nil
}

type BankAccountRepository struct {
	s *Store
}

func (r *BankAccountRepository) Create(_ context.Context, account domain.BankAccount) (domain.BankAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.accounts {
		if existing.AccountNumber == account.AccountNumber {
			return domain.BankAccount{}, commons.ErrDuplicate
		}
	}

	now := r.s.now()
	account.ID = r.s.id("bank_accounts")
	account.Balance = account.OpeningBalance
	account.CreatedAt = now
	account.UpdatedAt = now
	r.s.accounts[account.ID] = account
	return account, nil
}

func (r *BankAccountRepository) GetByID(_ context.Context, id int64) (domain.BankAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[id]
	if !ok {
		return domain.BankAccount{}, commons.ErrRecordNotFound
	}
	return account, nil
}

func (r *BankAccountRepository) List(_ context.Context) ([]domain.BankAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.BankAccount, 0, len(r.s.accounts))
	for _, id := range sortedIDs(r.s.accounts) {
		out = append(out, r.s.accounts[id])
	}
	return out, nil
}

type RegisterSessionRepository struct {
	s *Store
}

func (r *RegisterSessionRepository) GetOpen(_ context.Context, sessionID string) (domain.RegisterSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.openSession(sessionID)
	if !ok {
		return domain.RegisterSession{}, commons.ErrRecordNotFound
	}
	return session, nil
}

// openSession must be called with the store mutex held.
func (s *Store) openSession(sessionID string) (domain.RegisterSession, bool) {
	session, ok := s.sessions[sessionID]
	if !ok || session.ClosedAt != nil {
		return domain.RegisterSession{}, false
	}
	return session, true
}

// openRegisterForSession resolves the register owned by an open session.
// Must be called with the store mutex held.
func (s *Store) openRegisterForSession(sessionID string) (domain.Register, domain.RegisterSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.Register{}, domain.RegisterSession{}, commons.ErrRegisterNotOpen
	}
	session, ok := s.openSession(sessionID)
	if !ok {
		return domain.Register{}, domain.RegisterSession{}, commons.ErrRegisterNotOpen
	}
	register, ok := s.registers[session.RegisterID]
	if !ok || !register.IsOpen {
		return domain.Register{}, domain.RegisterSession{}, commons.ErrRegisterNotOpen
	}
	return register, session, nil
}
