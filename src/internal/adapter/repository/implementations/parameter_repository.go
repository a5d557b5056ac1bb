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

type ParameterRepository struct {
	db *sql.DB
}

func NewParameterRepository(db *sql.DB) *ParameterRepository {
	return &ParameterRepository{db: db}
}

func (r *ParameterRepository) Get(ctx context.Context, key string) (domain.SystemParameter, error) {
	var param domain.SystemParameter
	if err := r.db.QueryRowContext(ctx, `
SELECT key, value, description, updated_at
FROM system_parameters
WHERE key = $1`, key).Scan(&param.Key, &param.Value, &param.Description, &param.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SystemParameter{}, commons.ErrRecordNotFound
		}
		logger.Error("parameter repository get failed", err, logger.Fields{"key": key})
		return domain.SystemParameter{}, fmt.Errorf("get system parameter: %w", err)
	}
	return param, nil
}

func (r *ParameterRepository) Upsert(ctx context.Context, param domain.SystemParameter) (domain.SystemParameter, error) {
	logger.Info("parameter repository upsert", logger.Fields{"key": param.Key})

	if err := r.db.QueryRowContext(ctx, `
INSERT INTO system_parameters (key, value, description)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value,
	description = CASE WHEN EXCLUDED.description = '' THEN system_parameters.description ELSE EXCLUDED.description END,
	updated_at = NOW()
RETURNING description, updated_at`, param.Key, param.Value, param.Description).Scan(&param.Description, &param.UpdatedAt); err != nil {
		logger.Error("parameter repository upsert failed", err, logger.Fields{"key": param.Key})
		return domain.SystemParameter{}, fmt.Errorf("upsert system parameter: %w", err)
	}
	return param, nil
}

func (r *ParameterRepository) List(ctx context.Context) ([]domain.SystemParameter, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, description, updated_at FROM system_parameters ORDER BY key`)
	if err != nil {
		logger.Error("parameter repository list failed", err, nil)
		return nil, fmt.Errorf("list system parameters: %w", err)
	}
	defer rows.Close()

	out := make([]domain.SystemParameter, 0)
	for rows.Next() {
		var param domain.SystemParameter
		if err := rows.Scan(&param.Key, &param.Value, &param.Description, &param.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan system parameter row: %w", err)
		}
		out = append(out, param)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate system parameter rows: %w", err)
	}
	return out, nil
}

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, entry domain.AuditEntry) (domain.AuditEntry, error) {
	if err := r.db.QueryRowContext(ctx, `
INSERT INTO audit_log (operator_id, action, entity, detail, ip_address)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`,
		entry.OperatorID,
		entry.Action,
		entry.Entity,
		entry.Detail,
		entry.IPAddress,
	).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		logger.Error("audit repository create failed", err, logger.Fields{"action": entry.Action})
		return domain.AuditEntry{}, fmt.Errorf("create audit entry: %w", err)
	}
	return entry, nil
}

func (r *AuditRepository) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, operator_id, action, entity, detail, ip_address, created_at
FROM audit_log
ORDER BY id DESC
LIMIT $1`, limit)
	if err != nil {
		logger.Error("audit repository list failed", err, nil)
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	out := make([]domain.AuditEntry, 0)
	for rows.Next() {
		var entry domain.AuditEntry
		if err := rows.Scan(&entry.ID, &entry.OperatorID, &entry.Action, &entry.Entity, &entry.Detail, &entry.IPAddress, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry row: %w", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entry rows: %w", err)
	}
	return out, nil
}
