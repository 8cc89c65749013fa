package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/car-service/apiserver/internal/services"
	"github.com/car-service/apiserver/internal/store"
)

type contextKey string

const contextSubjectKey contextKey = "sub"

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Healthz reports process liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func userIDFromContext(ctx context.Context) (int, error) {
	userID, ok := ctx.Value(contextSubjectKey).(int)
	if !ok || userID < 1 {
		return 0, errors.New("missing subject")
	}
	return userID, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError translates the service/store error taxonomy into a
// stable status code. Unknown errors become an opaque 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case isNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case isDuplicate(err):
		writeError(w, http.StatusConflict, err.Error())
	case isInvalidInput(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrStorage):
		writeError(w, http.StatusInternalServerError, "storage error")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isNotFound(err error) bool {
	for _, target := range []error{
		services.ErrUserNotFound,
		services.ErrCarNotFound,
		services.ErrMechanicNotFound,
		services.ErrServiceNotFound,
		services.ErrDocumentNotFound,
		services.ErrAppointmentNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isDuplicate(err error) bool {
	for _, target := range []error{
		store.ErrDuplicateEmail,
		store.ErrDuplicateName,
		store.ErrDuplicatePlate,
		store.ErrDuplicateVIN,
		store.ErrDuplicateLogin,
		store.ErrDuplicateServiceName,
		store.ErrDuplicateDocumentType,
		store.ErrDuplicateFileKey,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isInvalidInput(err error) bool {
	for _, target := range []error{
		services.ErrOwnershipMismatch,
		services.ErrInvalidDateFormat,
		services.ErrPastDate,
		services.ErrInvalidStatus,
		services.ErrInvalidVIN,
		services.ErrInvalidBirthDate,
		services.ErrInvalidPrice,
		services.ErrInvalidDuration,
		services.ErrInvalidRole,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func parseIDParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func decodeJSON(r *http.Request, value any) error {
	return json.NewDecoder(r.Body).Decode(value)
}
