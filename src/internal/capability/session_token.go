// Package capability issues and verifies the signed tokens that bind a caller
// to the register session it opened. The token only names the session; the
// register_sessions row stays the authority on whether it is still open.
package capability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid register session token")

const issuer = "ledger-register-session"

type SessionClaims struct {
	SessionID  string `json:"sid"`
	RegisterID int64  `json:"rid"`
	OperatorID string `json:"op,omitempty"`
	jwt.RegisteredClaims
}

type SessionTokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewSessionTokens(signingKey string, ttl time.Duration) *SessionTokens {
	return &SessionTokens{
		key: []byte(signingKey),
		ttl: ttl,
		now: time.Now,
	}
}

func (t *SessionTokens) Issue(session domain.RegisterSession) (string, time.Time, error) {
	issuedAt := t.now().UTC()
	expiresAt := issuedAt.Add(t.ttl)

	claims := SessionClaims{
		SessionID:  session.ID,
		RegisterID: session.RegisterID,
		OperatorID: session.OperatorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   session.ID,
			Audience:  jwt.ClaimStrings{"register:" + strconv.FormatInt(session.RegisterID, 10)},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign register session token: %w", err)
	}
	return signed, expiresAt, nil
}

func (t *SessionTokens) Parse(token string) (SessionClaims, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if raw == "" {
		return SessionClaims{}, ErrInvalidToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
		jwt.WithLeeway(30*time.Second),
	)

	var claims SessionClaims
	parsed, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.key, nil
	})
	if err != nil || !parsed.Valid {
		return SessionClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.SessionID == "" || claims.SessionID != claims.Subject {
		return SessionClaims{}, ErrInvalidToken
	}
	return claims, nil
}
