package logger

import (
	"encoding/json"
	"log"
	"strings"
)

type Fields map[string]any

var sensitiveKeys = map[string]struct{}{
	"password":         {},
	"token":            {},
	"sessiontoken":     {},
	"session_token":    {},
	"authorization":    {},
	"xregistersession": {},
	"channelkey":       {},
	"channel_key":      {},
	"channelkeyhash":   {},
	"signingkey":       {},
}

// partialKeys keep their last characters visible so support can still
// correlate a client or an account across log lines.
var partialKeys = map[string]struct{}{
	"clientdocument":  {},
	"client_document": {},
	"accountnumber":   {},
	"account_number":  {},
}

const service = "ledger"

func Info(message string, fields Fields) {
	log.Printf("INFO [%s] %s %s", service, message, fieldsJSON(fields))
}

func Warn(message string, fields Fields) {
	log.Printf("WARN [%s] %s %s", service, message, fieldsJSON(fields))
}

func Error(message string, err error, fields Fields) {
	base := Fields{}
	for k, v := range fields {
		base[k] = v
	}
	if err != nil {
		base["error"] = err.Error()
	}

	log.Printf("ERROR [%s] %s %s", service, message, fieldsJSON(base))
}

func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func fieldsJSON(fields Fields) string {
	if fields == nil {
		fields = Fields{}
	}

	sanitized := SanitizePayload(fields)
	b, err := json.Marshal(sanitized)
	if err != nil {
		return `{}`
	}

	return string(b)
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			switch {
			case isKeyIn(sensitiveKeys, key):
				out[key] = "******"
				continue
			case isKeyIn(partialKeys, key):
				out[key] = maskTail(inner)
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isKeyIn(keys map[string]struct{}, key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := keys[normalized]
	return ok
}

func maskTail(value any) any {
	raw, ok := value.(string)
	if !ok {
		return "******"
	}
	if len(raw) <= 3 {
		return strings.Repeat("*", len(raw))
	}
	return strings.Repeat("*", len(raw)-3) + raw[len(raw)-3:]
}
