package jobs

import (
	"context"
	"errors"
	"testing"
	"time"
)

type overdueStub struct {
	calls int
	asOf  time.Time
	err   error
}

func (s *overdueStub) MarkOverdue(_ context.Context, asOf time.Time) (int64, error) {
	s.calls++
	s.asOf = asOf
	return 3, s.err
}

func TestMarkOverdueInstallmentsUsesClock(t *testing.T) {
	stub := &overdueStub{}
	s := NewScheduler(stub, "0 1 * * *")
	fixed := time.Date(2024, 5, 10, 1, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	s.MarkOverdueInstallments()

	if stub.calls != 1 {
		t.Fatalf("expected 1 call, got %d", stub.calls)
	}
	if !stub.asOf.Equal(fixed) {
		t.Fatalf("expected asOf %s, got %s", fixed, stub.asOf)
	}
}

func TestMarkOverdueInstallmentsSwallowsErrors(t *testing.T) {
	stub := &overdueStub{err: errors.New("db down")}
	s := NewScheduler(stub, "0 1 * * *")

	s.MarkOverdueInstallments()

	if stub.calls != 1 {
		t.Fatalf("expected 1 call, got %d", stub.calls)
	}
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := NewScheduler(&overdueStub{}, "not a schedule")
	if err := s.Start(); err == nil {
		t.Fatalf("expected invalid schedule error")
	}
}

func TestStartAndStop(t *testing.T) {
	s := NewScheduler(&overdueStub{}, "@every 1h")
	if err := s.Start(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	select {
	case <-s.Stop().Done():
	case <-time.After(time.Second):
		t.Fatalf("expected scheduler to stop")
	}
}

func TestPairsIgnoresDanglingKey(t *testing.T) {
	fields := pairs([]any{"entry", 1, "dangling"})
	if len(fields) != 1 || fields["entry"] != 1 {
		t.Fatalf("expected single entry field, got %v", fields)
	}
}
