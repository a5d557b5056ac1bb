package memory

import (
	"context"
	"sort"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

type ParameterRepository struct {
	s *Store
}

func (r *ParameterRepository) Get(_ context.Context, key string) (domain.SystemParameter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	param, ok := r.s.params[key]
	if !ok {
		return domain.SystemParameter{}, commons.ErrRecordNotFound
	}
	return param, nil
}

func (r *ParameterRepository) Upsert(_ context.Context, param domain.SystemParameter) (domain.SystemParameter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	param.UpdatedAt = r.s.now()
	r.s.params[param.Key] = param
	return param, nil
}

func (r *ParameterRepository) List(_ context.Context) ([]domain.SystemParameter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.SystemParameter, 0, len(r.s.params))
	for _, p := range r.s.params {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

type AuditRepository struct {
	s *Store
}

func (r *AuditRepository) Create(_ context.Context, entry domain.AuditEntry) (domain.AuditEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry.ID = r.s.id("audit_log")
	entry.CreatedAt = r.s.now()
	r.s.audit = append(r.s.audit, entry)
	return entry, nil
}

func (r *AuditRepository) List(_ context.Context, limit int) ([]domain.AuditEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.AuditEntry, 0, len(r.s.audit))
	for i := len(r.s.audit) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, r.s.audit[i])
	}
	return out, nil
}
