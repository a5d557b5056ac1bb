package services

import (
	"context"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/events"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/repository/repo_interfaces"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.AuditService = (*AuditService)(nil)

// AuditService records audit entries and publishes ledger events after a
// posting commits. Both are best-effort: failures are logged and never
// undo the posting they describe.
type AuditService struct {
	repo      repo_interfaces.AuditRepository
	publisher events.Publisher
}

func NewAuditService(repo repo_interfaces.AuditRepository, publisher events.Publisher) *AuditService {
	if publisher == nil {
		publisher = &events.EventProducerFallback{}
	}
	return &AuditService{repo: repo, publisher: publisher}
}

func (s *AuditService) Record(ctx context.Context, entry domain.AuditEntry) {
	if entry.IPAddress == "" {
		entry.IPAddress = commons.ClientIP(ctx)
	}
	if entry.OperatorID == "" {
		entry.OperatorID = commons.OperatorID(ctx)
	}
	if _, err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("audit service record failed", err, logger.Fields{
			"action": entry.Action,
			"entity": entry.Entity,
			"detail": entry.Detail,
		})
	}
}

func (s *AuditService) Publish(ctx context.Context, routingKey string, event events.LedgerEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		logger.Error("audit service publish event failed", err, logger.Fields{
			"routingKey": routingKey,
			"entityId":   event.EntityID,
		})
	}
}

func (s *AuditService) ListAudit(ctx context.Context, limit int) (commons.Response[[]models.AuditEntryResponse], error) {
	logger.Info("audit service list request", logger.Fields{"limit": limit})

	if limit <= 0 || limit > 500 {
		limit = 100
	}

	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		logger.Error("audit service list failed", err, nil)
		return failure[[]models.AuditEntryResponse]("list audit entries", err)
	}

	resp := make([]models.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, models.AuditEntryResponse{
			ID:         e.ID,
			OperatorID: e.OperatorID,
			Action:     e.Action,
			Entity:     e.Entity,
			Detail:     e.Detail,
			IPAddress:  e.IPAddress,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		})
	}
	return commons.SuccessResponse("audit entries fetched successfully", resp), nil
}
