package service_interfaces

import (
	"context"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/events"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

type AuditService interface {
	Record(ctx context.Context, entry domain.AuditEntry)
	Publish(ctx context.Context, routingKey string, event events.LedgerEvent)
	ListAudit(ctx context.Context, limit int) (commons.Response[[]models.AuditEntryResponse], error)
}
