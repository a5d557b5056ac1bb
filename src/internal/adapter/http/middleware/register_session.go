package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/capability"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
)

// SessionHeader carries the token returned when a register is opened.
const SessionHeader = "X-Register-Session"

type sessionKey struct{}

// RegisterSession verifies the register session token when one is sent.
// Requests without the header pass through; handlers that need a session
// get an empty id and the service rejects them with ErrRegisterNotOpen.
func RegisterSession(tokens *capability.SessionTokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(SessionHeader))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				logger.Info("register session middleware rejected token", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "invalid register session token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, claims)
			if commons.OperatorID(ctx) == "" && claims.OperatorID != "" {
				ctx = commons.WithOperatorID(ctx, claims.OperatorID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionClaimsFromContext(ctx context.Context) (capability.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionKey{}).(capability.SessionClaims)
	return claims, ok
}

// SessionIDFromContext returns the verified session id, or "" when the
// request carried no session token.
func SessionIDFromContext(ctx context.Context) string {
	claims, ok := SessionClaimsFromContext(ctx)
	if !ok {
		return ""
	}
	return claims.SessionID
}
