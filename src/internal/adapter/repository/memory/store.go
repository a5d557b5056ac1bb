package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

// Store keeps every ledger table in process memory. Each repository method
// runs under the store mutex, so a compound posting observes and mutates
// state as a single serialized unit of work.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	nextID map[string]int64

	registers    map[int64]domain.Register
	accounts     map[int64]domain.BankAccount
	sessions     map[string]domain.RegisterSession
	movements    []domain.Movement
	deposits     map[int64]domain.Deposit
	contracts    map[int64]domain.Contract
	subdivisions map[int64]domain.Subdivision
	installments map[int64]domain.Installment
	payments     map[int64]domain.Payment
	quotes       []domain.ExchangeQuote
	params       map[string]domain.SystemParameter
	expenses     map[int64]domain.Expense
	audit        []domain.AuditEntry

	// failAfterWrites injects a storage failure after the given number of
	// writes inside a posting; zero disables it.
	failAfterWrites int
}

func NewStore() *Store {
	return &Store{
		now:          func() time.Time { return time.Now().UTC() },
		nextID:       map[string]int64{},
		registers:    map[int64]domain.Register{},
		accounts:     map[int64]domain.BankAccount{},
		sessions:     map[string]domain.RegisterSession{},
		deposits:     map[int64]domain.Deposit{},
		contracts:    map[int64]domain.Contract{},
		subdivisions: map[int64]domain.Subdivision{},
		installments: map[int64]domain.Installment{},
		payments:     map[int64]domain.Payment{},
		params:       map[string]domain.SystemParameter{},
		expenses:     map[int64]domain.Expense{},
	}
}

// SetClock replaces the timestamp source used for created/updated columns.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailPostingsAfter makes the next compound postings fail once n writes have
// been staged, exercising rollback. Pass 0 to disable.
func (s *Store) FailPostingsAfter(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAfterWrites = n
}

func (s *Store) Registers() *RegisterRepository       { return &RegisterRepository{s: s} }
func (s *Store) BankAccounts() *BankAccountRepository { return &BankAccountRepository{s: s} }
func (s *Store) Sessions() *RegisterSessionRepository { return &RegisterSessionRepository{s: s} }
func (s *Store) Ledger() *LedgerRepository            { return &LedgerRepository{s: s} }
func (s *Store) Contracts() *ContractRepository       { return &ContractRepository{s: s} }
func (s *Store) Installments() *InstallmentRepository { return &InstallmentRepository{s: s} }
func (s *Store) Payments() *PaymentRepository         { return &PaymentRepository{s: s} }
func (s *Store) Quotes() *QuoteRepository             { return &QuoteRepository{s: s} }
func (s *Store) Parameters() *ParameterRepository     { return &ParameterRepository{s: s} }
func (s *Store) Audit() *AuditRepository              { return &AuditRepository{s: s} }
func (s *Store) Expenses() *ExpenseRepository         { return &ExpenseRepository{s: s} }

func (s *Store) id(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

func sortedIDs[T any](rows map[int64]T) []int64 {
	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func withinRange(t time.Time, from, to *time.Time) bool {
	day := domain.CivilDate(t)
	if from != nil && day.Before(domain.CivilDate(*from)) {
		return false
	}
	if to != nil && day.After(domain.CivilDate(*to)) {
		return false
	}
	return true
}

func int64Ptr(v int64) *int64 {
	return &v
}
