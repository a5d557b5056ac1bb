package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

func TestRegisterLifecycleBalancesMovements(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registerID, sessionID := f.openRegister(t, "Caja 1", "100000")

	for _, req := range []models.ManualMovementRequest{
		{SessionID: sessionID, Kind: "INGRESS", Amount: "20000", Concept: "Venta de formularios"},
		{SessionID: sessionID, Kind: "egress", Amount: "5000", Concept: "Compra de insumos"},
	} {
		if _, err := f.registers.PostManualMovement(ctx, req); err != nil {
			t.Fatalf("expected movement to post, got %v", err)
		}
	}

	assertDecimal(t, "register balance", f.registerBalance(t, registerID), "115000")

	count, err := f.registers.CashCount(ctx, models.CashCountRequest{RegisterID: registerID})
	if err != nil {
		t.Fatalf("expected cash count, got %v", err)
	}
	if len(count.Data.Movements) != 3 {
		t.Fatalf("expected 3 movements, got %d", len(count.Data.Movements))
	}
	assertDecimal(t, "net", count.Data.Net, "115000")

	status, err := f.registers.RegisterStatus(ctx, sessionID)
	if err != nil {
		t.Fatalf("expected register status, got %v", err)
	}
	if status.Data.Register.ID != registerID || !status.Data.Register.IsOpen {
		t.Fatalf("expected open register %d, got %+v", registerID, status.Data.Register)
	}

	closing, err := f.registers.CloseRegister(ctx, models.CloseRegisterRequest{RegisterID: registerID, SessionID: sessionID})
	if err != nil {
		t.Fatalf("expected register to close, got %v", err)
	}
	assertDecimal(t, "closing balance", closing.Data.ClosingBalance, "115000")
	assertDecimal(t, "total in", closing.Data.TotalIn, "120000")
	assertDecimal(t, "total out", closing.Data.TotalOut, "5000")
	if closing.Data.MovementCount != 3 {
		t.Fatalf("expected 3 session movements, got %d", closing.Data.MovementCount)
	}
	if closing.Data.Register.IsOpen || !closing.Data.Register.Balance.IsZero() {
		t.Fatalf("expected closed register with zero balance, got %+v", closing.Data.Register)
	}
	if closing.Data.Register.LastReconciledAt == "" {
		t.Fatalf("expected last reconciled timestamp")
	}

	reconciled, err := f.accounts.ReconcileRegister(ctx, registerID)
	if err != nil {
		t.Fatalf("expected reconciliation, got %v", err)
	}
	if !reconciled.Data.Balanced {
		t.Fatalf("expected balanced register ledger, got %+v", reconciled.Data)
	}

	if _, err := f.registers.RegisterStatus(ctx, sessionID); !errors.Is(err, commons.ErrRegisterNotOpen) {
		t.Fatalf("expected ErrRegisterNotOpen after close, got %v", err)
	}
}

func TestOpenRegisterTwiceFails(t *testing.T) {
	f := newFixture(t)
	registerID, _ := f.openRegister(t, "Caja 1", "0")

	_, err := f.registers.OpenRegister(context.Background(), models.OpenRegisterRequest{RegisterID: registerID, OpeningAmount: "1000"})
	if !errors.Is(err, commons.ErrAlreadyOpen) {
		t.Fatalf("expected ErrAlreadyOpen, got %v", err)
	}
}

func TestOpenRegisterWithZeroRecordsNoMovement(t *testing.T) {
	f := newFixture(t)
	registerID, _ := f.openRegister(t, "Caja 1", "0")

	count, err := f.registers.CashCount(context.Background(), models.CashCountRequest{RegisterID: registerID})
	if err != nil {
		t.Fatalf("expected cash count, got %v", err)
	}
	if len(count.Data.Movements) != 0 {
		t.Fatalf("expected no movements, got %d", len(count.Data.Movements))
	}
}

func TestOpenRegisterRejectsNegativeAmount(t *testing.T) {
	f := newFixture(t)
	created, _ := f.accounts.CreateRegister(context.Background(), models.CreateRegisterRequest{Description: "Caja 1"})

	_, err := f.registers.OpenRegister(context.Background(), models.OpenRegisterRequest{RegisterID: created.Data.ID, OpeningAmount: "-1"})
	if !errors.Is(err, commons.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if !errors.Is(err, commons.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOpenRegisterIssuesSessionToken(t *testing.T) {
	f := newFixture(t)
	created, _ := f.accounts.CreateRegister(context.Background(), models.CreateRegisterRequest{Description: "Caja 1"})

	resp, err := f.registers.OpenRegister(context.Background(), models.OpenRegisterRequest{
		RegisterID:    created.Data.ID,
		OpeningAmount: "5000",
		OperatorID:    "cashier-7",
	})
	if err != nil {
		t.Fatalf("expected register to open, got %v", err)
	}

	claims, err := f.tokens.Parse(resp.Data.SessionToken)
	if err != nil {
		t.Fatalf("expected token to parse, got %v", err)
	}
	if claims.SessionID != resp.Data.SessionID || claims.RegisterID != created.Data.ID || claims.OperatorID != "cashier-7" {
		t.Fatalf("expected claims to match session, got %+v", claims)
	}
}

func TestCloseRegisterTwiceFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registerID, sessionID := f.openRegister(t, "Caja 1", "1000")

	if _, err := f.registers.CloseRegister(ctx, models.CloseRegisterRequest{RegisterID: registerID, SessionID: sessionID}); err != nil {
		t.Fatalf("expected close, got %v", err)
	}
	_, err := f.registers.CloseRegister(ctx, models.CloseRegisterRequest{RegisterID: registerID, SessionID: sessionID})
	if !errors.Is(err, commons.ErrAlreadyClosed) {
		t.Fatalf("expected ErrAlreadyClosed, got %v", err)
	}
}

func TestCloseRegisterRequiresOwningSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	firstID, _ := f.openRegister(t, "Caja 1", "1000")
	_, otherSession := f.openRegister(t, "Caja 2", "1000")

	_, err := f.registers.CloseRegister(ctx, models.CloseRegisterRequest{RegisterID: firstID, SessionID: otherSession})
	if !errors.Is(err, commons.ErrRegisterNotOpen) {
		t.Fatalf("expected ErrRegisterNotOpen, got %v", err)
	}
	assertDecimal(t, "register balance", f.registerBalance(t, firstID), "1000")
}

func TestManualMovementValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, sessionID := f.openRegister(t, "Caja 1", "1000")

	tests := []struct {
		name string
		req  models.ManualMovementRequest
		want error
	}{
		{
			name: "zero amount",
			req:  models.ManualMovementRequest{SessionID: sessionID, Kind: "INGRESS", Amount: "0", Concept: "x"},
			want: commons.ErrInvalidAmount,
		},
		{
			name: "transfer kind is not manual",
			req:  models.ManualMovementRequest{SessionID: sessionID, Kind: "TRANSFER", Amount: "10", Concept: "x"},
			want: commons.ErrValidation,
		},
		{
			name: "no session",
			req:  models.ManualMovementRequest{Kind: "INGRESS", Amount: "10", Concept: "x"},
			want: commons.ErrRegisterNotOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.registers.PostManualMovement(ctx, tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCloseRegisterWithNegativeBalanceRecordsIngress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registerID, sessionID := f.openRegister(t, "Caja 1", "1000")

	if _, err := f.registers.PostManualMovement(ctx, models.ManualMovementRequest{
		SessionID: sessionID, Kind: "EGRESS", Amount: "3000", Concept: "Adelanto",
	}); err != nil {
		t.Fatalf("expected movement, got %v", err)
	}

	closing, err := f.registers.CloseRegister(ctx, models.CloseRegisterRequest{RegisterID: registerID, SessionID: sessionID})
	if err != nil {
		t.Fatalf("expected close, got %v", err)
	}
	assertDecimal(t, "closing balance", closing.Data.ClosingBalance, "-2000")

	count, _ := f.registers.CashCount(ctx, models.CashCountRequest{RegisterID: registerID})
	last := count.Data.Movements[len(count.Data.Movements)-1]
	if last.Kind != string(domain.MovementIngress) || !last.Amount.Equal(dec(t, "2000")) {
		t.Fatalf("expected closing INGRESS of 2000, got %+v", last)
	}
}
