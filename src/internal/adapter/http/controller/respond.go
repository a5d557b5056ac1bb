package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFor maps a service error onto the HTTP status returned to clients.
func statusFor(err error) int {
	switch {
	case errors.Is(err, commons.ErrInternal):
		return http.StatusInternalServerError
	case errors.Is(err, commons.ErrValidation), errors.Is(err, commons.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, commons.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, commons.ErrAlreadySettled),
		errors.Is(err, commons.ErrAlreadyOpen),
		errors.Is(err, commons.ErrAlreadyClosed),
		errors.Is(err, commons.ErrAlreadyVoided),
		errors.Is(err, commons.ErrDuplicate),
		errors.Is(err, commons.ErrRegisterNotOpen):
		return http.StatusConflict
	case errors.Is(err, commons.ErrInsufficientAmount),
		errors.Is(err, commons.ErrInsufficientBalance),
		errors.Is(err, commons.ErrNoExchangeRate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respond[T any](w http.ResponseWriter, r *http.Request, start time.Time, successStatus int, response commons.Response[T], err error) {
	if err != nil {
		status := statusFor(err)
		logError(r, err, logger.Fields{"message": response.Message, "status": status})
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, successStatus, response)
	logResponse(r, successStatus, response, start)
}

func badRequest[T any](w http.ResponseWriter, r *http.Request, start time.Time, message string, details ...string) {
	response := commons.ErrorResponse[T](message, details...)
	writeJSON(w, http.StatusBadRequest, response)
	logResponse(r, http.StatusBadRequest, response, start)
}

// decodeBody decodes the JSON request body into dst. An empty body leaves
// dst untouched.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return value, nil
}
