package models

import (
	"errors"
	"strings"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// ParseAmount parses a decimal amount, rejecting empty input.
func ParseAmount(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return decimal.Decimal{}, errors.New("amount is required")
	}
	return decimal.NewFromString(value)
}

// ParseDate parses a YYYY-MM-DD date. An empty value yields fallback.
func ParseDate(raw string, fallback time.Time) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return fallback, nil
	}
	return time.Parse(DateLayout, value)
}

// ParseOptionalDate returns nil for an empty value.
func ParseOptionalDate(raw string) (*time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// validation collects field errors; amount problems also mark the result
// as commons.ErrInvalidAmount.
type validation struct {
	errs          []string
	invalidAmount bool
}

func (v *validation) add(msg string) {
	v.errs = append(v.errs, msg)
}

func (v *validation) positiveAmount(field, raw string) {
	amount, err := ParseAmount(raw)
	switch {
	case strings.TrimSpace(raw) == "":
		v.add(field + " is required")
	case err != nil:
		v.add(field + " must be numeric")
	case !amount.Round(2).IsPositive():
		v.add(field + " must be at least 0.01")
		v.invalidAmount = true
	}
}

func (v *validation) nonNegativeAmount(field, raw string) {
	amount, err := ParseAmount(raw)
	switch {
	case strings.TrimSpace(raw) == "":
		v.add(field + " is required")
	case err != nil:
		v.add(field + " must be numeric")
	case amount.IsNegative():
		v.add(field + " cannot be negative")
		v.invalidAmount = true
	}
}

func (v *validation) date(field, raw string) {
	if _, err := ParseOptionalDate(raw); err != nil {
		v.add(field + " must be a date in YYYY-MM-DD format")
	}
}

func (v *validation) required(field, raw string) {
	if strings.TrimSpace(raw) == "" {
		v.add(field + " is required")
	}
}

func (v *validation) positiveID(field string, id int64) {
	if id <= 0 {
		v.add(field + " is required")
	}
}

func (v *validation) result() error {
	if len(v.errs) == 0 {
		return nil
	}
	if v.invalidAmount {
		return commons.NewValidationError(strings.Join(v.errs, "; "), commons.ErrInvalidAmount)
	}
	return commons.NewValidationError(strings.Join(v.errs, "; "))
}
