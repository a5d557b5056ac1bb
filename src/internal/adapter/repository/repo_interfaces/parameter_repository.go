package repo_interfaces

import (
	"context"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

type ParameterRepository interface {
	Get(ctx context.Context, key string) (domain.SystemParameter, error)
	Upsert(ctx context.Context, param domain.SystemParameter) (domain.SystemParameter, error)
	List(ctx context.Context) ([]domain.SystemParameter, error)
}

type AuditRepository interface {
	Create(ctx context.Context, entry domain.AuditEntry) (domain.AuditEntry, error)
	List(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
