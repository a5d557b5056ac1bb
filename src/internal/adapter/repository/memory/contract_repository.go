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

type ContractRepository struct {
	s *Store
}

func (r *ContractRepository) CreateWithSchedule(_ context.Context, contract domain.Contract, firstDue time.Time) (domain.Contract, []domain.Installment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.contracts {
		if existing.ContractNumber == contract.ContractNumber {
			return domain.Contract{}, nil, commons.ErrDuplicate
		}
	}
	if contract.SubdivisionID != nil {
		if _, ok := r.s.subdivisions[*contract.SubdivisionID]; !ok {
			return domain.Contract{}, nil, commons.ErrRecordNotFound
		}
	}

	contract.ID = r.s.id("contracts")
	contract.CreatedAt = r.s.now()
	schedule := domain.ScheduleInstallments(contract.ID, contract.InstallmentCount, contract.InstallmentAmount, firstDue)

	uow := r.s.begin()
	if err := uow.stage(func() { r.s.contracts[contract.ID] = contract }); err != nil {
		return domain.Contract{}, nil, err
	}
	for i := range schedule {
		schedule[i].ID = r.s.id("installments")
		item := schedule[i]
		if err := uow.stage(func() { r.s.installments[item.ID] = item }); err != nil {
			return domain.Contract{}, nil, err
		}
	}
	uow.commit()

	return contract, schedule, nil
}

func (r *ContractRepository) GetByID(_ context.Context, id int64) (domain.Contract, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	contract, ok := r.s.contracts[id]
	if !ok {
		return domain.Contract{}, commons.ErrRecordNotFound
	}
	return contract, nil
}

func (r *ContractRepository) ListByClientDocument(_ context.Context, clientDocument string) ([]domain.Contract, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Contract, 0)
	for _, id := range sortedIDs(r.s.contracts) {
		c := r.s.contracts[id]
		if strings.EqualFold(strings.TrimSpace(c.ClientDocument), strings.TrimSpace(clientDocument)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *ContractRepository) CreateSubdivision(_ context.Context, subdivision domain.Subdivision) (domain.Subdivision, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.subdivisions {
		if strings.EqualFold(existing.Name, subdivision.Name) {
			return domain.Subdivision{}, commons.ErrDuplicate
		}
	}
	subdivision.ID = r.s.id("subdivisions")
	r.s.subdivisions[subdivision.ID] = subdivision
	return subdivision, nil
}

func (r *ContractRepository) GetSubdivision(_ context.Context, id int64) (domain.Subdivision, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	subdivision, ok := r.s.subdivisions[id]
	if !ok {
		return domain.Subdivision{}, commons.ErrRecordNotFound
	}
	return subdivision, nil
}

type InstallmentRepository struct {
	s *Store
}

func (r *InstallmentRepository) GetByID(_ context.Context, id int64) (domain.Installment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	installment, ok := r.s.installments[id]
	if !ok {
		return domain.Installment{}, commons.ErrRecordNotFound
	}
	return installment, nil
}

func (r *InstallmentRepository) ListByContract(_ context.Context, contractID int64) ([]domain.Installment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.contractInstallments(contractID), nil
}

func (s *Store) contractInstallments(contractID int64) []domain.Installment {
	out := make([]domain.Installment, 0)
	for _, item := range s.installments {
		if item.ContractID == contractID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (r *InstallmentRepository) AddServiceCharge(_ context.Context, contractID int64, amount decimal.Decimal, dueDate time.Time, description string) (domain.Installment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.contracts[contractID]; !ok {
		return domain.Installment{}, commons.ErrRecordNotFound
	}

	items := r.s.contractInstallments(contractID)
	next := 1
	if len(items) > 0 {
		next = items[len(items)-1].Number + 1
	}

	installment := domain.Installment{
		ID:           r.s.id("installments"),
		ContractID:   contractID,
		Number:       next,
		DueDate:      domain.CivilDate(dueDate),
		Amount:       amount,
		Kind:         domain.InstallmentService,
		Status:       domain.InstallmentPending,
		Observations: description,
	}
	r.s.installments[installment.ID] = installment
	return installment, nil
}

func (r *InstallmentRepository) MarkOverdue(_ context.Context, asOf time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cutoff := domain.CivilDate(asOf)
	var count int64
	for id, item := range r.s.installments {
		if item.Status == domain.InstallmentPending && item.DueDate.Before(cutoff) {
			item.Status = domain.InstallmentOverdue
			r.s.installments[id] = item
			count++
		}
	}
	return count, nil
}

type PaymentRepository struct {
	s *Store
}

func (r *PaymentRepository) GetByID(_ context.Context, id int64) (domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	payment, ok := r.s.payments[id]
	if !ok {
		return domain.Payment{}, commons.ErrRecordNotFound
	}
	return payment, nil
}

func (r *PaymentRepository) ListByContract(_ context.Context, contractID int64) ([]domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Payment, 0)
	for _, id := range sortedIDs(r.s.payments) {
		p := r.s.payments[id]
		if p.ContractID == contractID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PaymentRepository) ListBySubdivision(_ context.Context, subdivisionID int64, from, to time.Time) ([]domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Payment, 0)
	for _, id := range sortedIDs(r.s.payments) {
		p := r.s.payments[id]
		contract, ok := r.s.contracts[p.ContractID]
		if !ok || contract.SubdivisionID == nil || *contract.SubdivisionID != subdivisionID {
			continue
		}
		if withinRange(p.PaymentDate, &from, &to) {
			out = append(out, p)
		}
	}
	return out, nil
}
