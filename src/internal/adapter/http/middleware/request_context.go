package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
)

const OperatorHeader = "X-Operator-Id"

// RequestContext copies the operator id header and the caller address into
// the request context so services can stamp audit entries.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := commons.WithClientIP(r.Context(), clientIP(r))
		if operatorID := strings.TrimSpace(r.Header.Get(OperatorHeader)); operatorID != "" {
			ctx = commons.WithOperatorID(ctx, operatorID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
