package controller

import (
	"net/http"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/middleware"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// requestFields identifies a ledger request in every log line it produces.
func requestFields(r *http.Request) logger.Fields {
	fields := logger.Fields{
		"requestId": chimiddleware.GetReqID(r.Context()),
		"route":     r.Method + " " + r.URL.Path,
		"operator":  commons.OperatorID(r.Context()),
	}
	if sessionID := middleware.SessionIDFromContext(r.Context()); sessionID != "" {
		fields["sessionId"] = sessionID
	}
	if r.URL.RawQuery != "" {
		fields["query"] = r.URL.RawQuery
	}
	return fields
}

func logRequest(r *http.Request, payload any) {
	fields := requestFields(r)
	if payload != nil {
		fields["payload"] = logger.SanitizePayload(payload)
	}
	logger.Info("ledger request received", fields)
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	fields := requestFields(r)
	fields["status"] = status
	fields["elapsedMs"] = time.Since(start).Milliseconds()
	fields["response"] = logger.SanitizePayload(payload)
	logger.Info("ledger response sent", fields)
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := requestFields(r)
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("ledger request failed", err, fields)
}
