package services

import (
	"errors"
	"fmt"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
)

var businessErrors = []error{
	commons.ErrRecordNotFound,
	commons.ErrAlreadySettled,
	commons.ErrAlreadyOpen,
	commons.ErrAlreadyClosed,
	commons.ErrAlreadyVoided,
	commons.ErrInsufficientAmount,
	commons.ErrInsufficientBalance,
	commons.ErrInvalidAmount,
	commons.ErrRegisterNotOpen,
	commons.ErrNoExchangeRate,
	commons.ErrDuplicate,
}

// failure builds the error response for err. Business-rule errors keep their
// message; anything else is a storage failure and surfaces as ErrInternal
// with a generic message.
func failure[T any](action string, err error) (commons.Response[T], error) {
	var validationErr *commons.ValidationError
	if errors.As(err, &validationErr) {
		return commons.ErrorResponse[T]("validation failed", validationErr.Message), err
	}

	for _, known := range businessErrors {
		if errors.Is(err, known) {
			return commons.ErrorResponse[T](known.Error(), err.Error()), err
		}
	}

	return commons.ErrorResponse[T]("failed to "+action, "Unable to "+action+" right now"), fmt.Errorf("%w: %w", commons.ErrInternal, err)
}
