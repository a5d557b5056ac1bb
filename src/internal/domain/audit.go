package domain

import "time"

type AuditEntry struct {
	ID         int64
	OperatorID string
	Action     string
	Entity     string
	Detail     string
	IPAddress  string
	CreatedAt  time.Time
}
