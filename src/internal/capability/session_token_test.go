package capability

import (
	"errors"
	"testing"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

func TestSessionTokensRoundTrip(t *testing.T) {
	tokens := NewSessionTokens("test-signing-key", time.Hour)
	session := domain.RegisterSession{ID: "5b0f3c1e-1111-4c4c-9e9e-123456789abc", RegisterID: 3, OperatorID: "cajero01"}

	token, expiresAt, err := tokens.Issue(session)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %s", expiresAt)
	}

	claims, err := tokens.Parse("Bearer " + token)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if claims.SessionID != session.ID || claims.RegisterID != 3 || claims.OperatorID != "cajero01" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestSessionTokensRejectsForeignSignature(t *testing.T) {
	issuerTokens := NewSessionTokens("key-a", time.Hour)
	verifier := NewSessionTokens("key-b", time.Hour)

	token, _, err := issuerTokens.Issue(domain.RegisterSession{ID: "s-1", RegisterID: 1})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionTokensRejectsExpired(t *testing.T) {
	tokens := NewSessionTokens("key", time.Minute)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := tokens.Issue(domain.RegisterSession{ID: "s-1", RegisterID: 1})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	tokens.now = time.Now
	if _, err := tokens.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionTokensRejectsEmpty(t *testing.T) {
	tokens := NewSessionTokens("key", time.Minute)
	if _, err := tokens.Parse("  "); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
