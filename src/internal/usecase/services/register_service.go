package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/events"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/repository/repo_interfaces"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/capability"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/service_interfaces"
	"github.com/google/uuid"
)

var _ service_interfaces.RegisterService = (*RegisterService)(nil)

const (
	conceptRegisterOpening = "Apertura de caja"
	conceptRegisterClosing = "Cierre de caja"
)

type RegisterService struct {
	registerRepo repo_interfaces.RegisterRepository
	sessionRepo  repo_interfaces.RegisterSessionRepository
	ledgerRepo   repo_interfaces.LedgerRepository
	tokens       *capability.SessionTokens
	audit        service_interfaces.AuditService
}

func NewRegisterService(
	registerRepo repo_interfaces.RegisterRepository,
	sessionRepo repo_interfaces.RegisterSessionRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
	tokens *capability.SessionTokens,
	audit service_interfaces.AuditService,
) *RegisterService {
	return &RegisterService{
		registerRepo: registerRepo,
		sessionRepo:  sessionRepo,
		ledgerRepo:   ledgerRepo,
		tokens:       tokens,
		audit:        audit,
	}
}

// OpenRegister opens a closed register and returns the session capability
// that later cash operations must present.
func (s *RegisterService) OpenRegister(ctx context.Context, req models.OpenRegisterRequest) (commons.Response[models.OpenRegisterResponse], error) {
	logger.Info("register service open request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("register service open validation failed", err, nil)
		return failure[models.OpenRegisterResponse]("open register", err)
	}

	opening, _ := models.ParseAmount(req.OpeningAmount)
	register, session, err := s.ledgerRepo.OpenRegister(ctx, domain.OpenRegisterPosting{
		RegisterID:    req.RegisterID,
		OpeningAmount: opening.Round(2),
		OperatorID:    strings.TrimSpace(req.OperatorID),
		SessionID:     uuid.NewString(),
		Concept:       conceptRegisterOpening,
		OpenedAt:      time.Now().UTC(),
	})
	if err != nil {
		logger.Error("register service open failed", err, logger.Fields{
			"registerId": req.RegisterID,
		})
		return failure[models.OpenRegisterResponse]("open register", err)
	}

	token, expiresAt, err := s.tokens.Issue(session)
	if err != nil {
		logger.Error("register service issue session token failed", err, logger.Fields{
			"registerId": register.ID,
			"sessionId":  session.ID,
		})
		return failure[models.OpenRegisterResponse]("open register", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		OperatorID: session.OperatorID,
		Action:     "OPEN",
		Entity:     entityRegister,
		Detail:     fmt.Sprintf("register %d opened with %s", register.ID, opening.StringFixed(2)),
	})
	s.audit.Publish(ctx, events.RoutingRegisterOpened, events.LedgerEvent{
		Type:       events.RoutingRegisterOpened,
		EntityID:   strconv.FormatInt(register.ID, 10),
		Amount:     opening,
		Currency:   string(domain.CurrencyPYG),
		OperatorID: session.OperatorID,
		OccurredAt: session.OpenedAt,
	})

	logger.Info("register service open success", logger.Fields{
		"registerId": register.ID,
		"sessionId":  session.ID,
	})

	return commons.SuccessResponse("register opened successfully", models.OpenRegisterResponse{
		Register:     mapRegisterToResponse(register),
		SessionID:    session.ID,
		SessionToken: token,
		ExpiresAt:    expiresAt.Format(time.RFC3339),
	}), nil
}

func (s *RegisterService) CloseRegister(ctx context.Context, req models.CloseRegisterRequest) (commons.Response[models.ClosingSummaryResponse], error) {
	logger.Info("register service close request", logger.Fields{
		"registerId": req.RegisterID,
		"sessionId":  req.SessionID,
	})

	if err := req.Validate(); err != nil {
		logger.Error("register service close validation failed", err, nil)
		return failure[models.ClosingSummaryResponse]("close register", err)
	}

	closing, err := s.ledgerRepo.CloseRegister(ctx, domain.CloseRegisterPosting{
		RegisterID: req.RegisterID,
		SessionID:  req.SessionID,
		Concept:    conceptRegisterClosing,
		ClosedAt:   time.Now().UTC(),
	})
	if err != nil {
		logger.Error("register service close failed", err, logger.Fields{
			"registerId": req.RegisterID,
		})
		return failure[models.ClosingSummaryResponse]("close register", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action: "CLOSE",
		Entity: entityRegister,
		Detail: fmt.Sprintf("register %d closed with %s", closing.Register.ID, closing.ClosingBalance.StringFixed(2)),
	})
	s.audit.Publish(ctx, events.RoutingRegisterClosed, events.LedgerEvent{
		Type:       events.RoutingRegisterClosed,
		EntityID:   strconv.FormatInt(closing.Register.ID, 10),
		Amount:     closing.ClosingBalance,
		Currency:   string(domain.CurrencyPYG),
		OccurredAt: closing.ClosedAt,
	})

	logger.Info("register service close success", logger.Fields{
		"registerId":     closing.Register.ID,
		"closingBalance": closing.ClosingBalance,
		"movementCount":  closing.MovementCount,
	})

	return commons.SuccessResponse("register closed successfully", models.ClosingSummaryResponse{
		Register:       mapRegisterToResponse(closing.Register),
		SessionID:      closing.SessionID,
		ClosingBalance: closing.ClosingBalance,
		TotalIn:        closing.TotalIn,
		TotalOut:       closing.TotalOut,
		MovementCount:  closing.MovementCount,
		ClosedAt:       closing.ClosedAt.Format(time.RFC3339),
	}), nil
}

// RegisterStatus reports the open register bound to sessionID.
func (s *RegisterService) RegisterStatus(ctx context.Context, sessionID string) (commons.Response[models.RegisterStatusResponse], error) {
	logger.Info("register service status request", logger.Fields{"sessionId": sessionID})

	session, err := s.sessionRepo.GetOpen(ctx, sessionID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			err = fmt.Errorf("session %q: %w", sessionID, commons.ErrRegisterNotOpen)
		}
		logger.Error("register service status failed", err, logger.Fields{"sessionId": sessionID})
		return failure[models.RegisterStatusResponse]("get register status", err)
	}

	register, err := s.registerRepo.GetByID(ctx, session.RegisterID)
	if err != nil {
		logger.Error("register service status get register failed", err, logger.Fields{
			"registerId": session.RegisterID,
		})
		return failure[models.RegisterStatusResponse]("get register status", err)
	}

	movements, err := s.ledgerRepo.ListSessionMovements(ctx, session.ID)
	if err != nil {
		logger.Error("register service status movements failed", err, logger.Fields{"sessionId": session.ID})
		return failure[models.RegisterStatusResponse]("get register status", err)
	}
	totals := domain.SumMovements(movements)

	return commons.SuccessResponse("register status fetched successfully", models.RegisterStatusResponse{
		Register:  mapRegisterToResponse(register),
		SessionID: session.ID,
		OpenedAt:  session.OpenedAt.Format(time.RFC3339),
		TotalIn:   totals.TotalIn,
		TotalOut:  totals.TotalOut,
	}), nil
}

func (s *RegisterService) PostManualMovement(ctx context.Context, req models.ManualMovementRequest) (commons.Response[models.MovementResponse], error) {
	logger.Info("register service post movement request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("register service post movement validation failed", err, nil)
		return failure[models.MovementResponse]("post movement", err)
	}

	amount, _ := models.ParseAmount(req.Amount)
	movement, err := s.ledgerRepo.PostMovement(ctx, domain.MovementPosting{
		SessionID:  req.SessionID,
		Kind:       domain.MovementKind(strings.ToUpper(strings.TrimSpace(req.Kind))),
		Amount:     amount.Round(2),
		Concept:    strings.TrimSpace(req.Concept),
		OperatorID: strings.TrimSpace(req.OperatorID),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error("register service post movement failed", err, logger.Fields{
			"sessionId": req.SessionID,
		})
		return failure[models.MovementResponse]("post movement", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		OperatorID: movement.OperatorID,
		Action:     string(movement.Kind),
		Entity:     "movement",
		Detail:     fmt.Sprintf("register %d %s %s", movement.RegisterID, movement.Concept, movement.Amount.StringFixed(2)),
	})
	s.audit.Publish(ctx, events.RoutingMovementPosted, events.LedgerEvent{
		Type:       events.RoutingMovementPosted,
		EntityID:   strconv.FormatInt(movement.ID, 10),
		Amount:     movement.Signed(),
		Currency:   string(domain.CurrencyPYG),
		OperatorID: movement.OperatorID,
		Detail:     movement.Concept,
		OccurredAt: movement.OccurredAt,
	})

	logger.Info("register service post movement success", logger.Fields{
		"movementId": movement.ID,
		"registerId": movement.RegisterID,
	})

	return commons.SuccessResponse("movement posted successfully", mapMovementToResponse(movement)), nil
}

// CashCount lists the register movements in an optional date range. The
// upper bound is inclusive of the whole day.
func (s *RegisterService) CashCount(ctx context.Context, req models.CashCountRequest) (commons.Response[models.CashCountResponse], error) {
	logger.Info("register service cash count request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("register service cash count validation failed", err, nil)
		return failure[models.CashCountResponse]("count register cash", err)
	}

	from, _ := models.ParseOptionalDate(req.From)
	to, _ := models.ParseOptionalDate(req.To)
	movements, err := s.ledgerRepo.ListMovements(ctx, req.RegisterID, from, endOfDay(to))
	if err != nil {
		logger.Error("register service cash count failed", err, logger.Fields{"registerId": req.RegisterID})
		return failure[models.CashCountResponse]("count register cash", err)
	}

	totals := domain.SumMovements(movements)
	resp := models.CashCountResponse{
		RegisterID: req.RegisterID,
		From:       strings.TrimSpace(req.From),
		To:         strings.TrimSpace(req.To),
		Movements:  make([]models.MovementResponse, 0, len(movements)),
		TotalIn:    totals.TotalIn,
		TotalOut:   totals.TotalOut,
		Net:        totals.TotalIn.Sub(totals.TotalOut),
	}
	for _, m := range movements {
		resp.Movements = append(resp.Movements, mapMovementToResponse(m))
	}

	return commons.SuccessResponse("register movements fetched successfully", resp), nil
}

func endOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	end := t.Add(24*time.Hour - time.Nanosecond)
	return &end
}
