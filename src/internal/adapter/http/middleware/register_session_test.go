package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/capability"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

func TestRegisterSession_PutsVerifiedSessionInContext(t *testing.T) {
	tokens := capability.NewSessionTokens("test-signing-key", time.Hour)
	token, _, err := tokens.Issue(domain.RegisterSession{ID: "session-1", RegisterID: 3, OperatorID: "cashier-7"})
	if err != nil {
		t.Fatalf("expected token issue to succeed, got %v", err)
	}

	var gotSession, gotOperator string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = SessionIDFromContext(r.Context())
		gotOperator = commons.OperatorID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/registers/movements", nil)
	req.Header.Set(SessionHeader, token)
	rr := httptest.NewRecorder()
	RegisterSession(tokens)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if gotSession != "session-1" {
		t.Fatalf("expected session-1, got %q", gotSession)
	}
	if gotOperator != "cashier-7" {
		t.Fatalf("expected operator from token, got %q", gotOperator)
	}
}

func TestRegisterSession_RejectsForgedToken(t *testing.T) {
	issuer := capability.NewSessionTokens("other-key", time.Hour)
	token, _, _ := issuer.Issue(domain.RegisterSession{ID: "session-1", RegisterID: 3})

	req := httptest.NewRequest(http.MethodPost, "/registers/movements", nil)
	req.Header.Set(SessionHeader, token)
	rr := httptest.NewRecorder()
	RegisterSession(capability.NewSessionTokens("test-signing-key", time.Hour))(okHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestRegisterSession_PassesThroughWithoutHeader(t *testing.T) {
	var gotSession string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	RegisterSession(capability.NewSessionTokens("k", time.Hour))(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK || gotSession != "" {
		t.Fatalf("expected pass-through with empty session, got status %d session %q", rr.Code, gotSession)
	}
}

func TestRequestContext_CapturesOperatorAndClientIP(t *testing.T) {
	var gotIP, gotOperator string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIP = commons.ClientIP(r.Context())
		gotOperator = commons.OperatorID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	req.Header.Set(OperatorHeader, " admin ")
	RequestContext(next).ServeHTTP(httptest.NewRecorder(), req)

	if gotIP != "10.1.2.3" {
		t.Fatalf("expected client ip 10.1.2.3, got %q", gotIP)
	}
	if gotOperator != "admin" {
		t.Fatalf("expected operator admin, got %q", gotOperator)
	}
}
