package commons

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrInsufficientAmount = errors.New("Amount received is below the required minimum")
var ErrInvalidAmount = errors.New("Invalid amount")
var ErrAlreadySettled = errors.New("Already paid")
var ErrAlreadyOpen = errors.New("Register already open")
var ErrAlreadyClosed = errors.New("Register already closed")
var ErrAlreadyVoided = errors.New("Already voided")
var ErrRegisterNotOpen = errors.New("No open register for this session")
var ErrNoExchangeRate = errors.New("No exchange rate available")
var ErrDuplicate = errors.New("Record already exists")
var ErrInternal = errors.New("Internal error")

// ValidationError carries a field-level validation message. It matches
// ErrValidation and any more specific causes with errors.Is.
var ErrValidation = errors.New("validation failed")

type ValidationError struct {
	Message string
	Causes  []error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() []error {
	return append([]error{ErrValidation}, e.Causes...)
}

func NewValidationError(message string, causes ...error) error {
	return &ValidationError{Message: message, Causes: causes}
}

// ErrExpenseDebitVoid rejects voiding the bank debit of a paid expense.
var ErrExpenseDebitVoid = NewValidationError("expense debits cannot be voided")
