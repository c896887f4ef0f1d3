package http

import (
	"errors"
	"net/http"

	"github.com/alexsky74/Anamneon/internal/service"
	"github.com/alexsky74/Anamneon/internal/store"
	"github.com/alexsky74/Anamneon/internal/utils"
	"github.com/alexsky74/Anamneon/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidEntryMode:        http.StatusBadRequest,
	service.ErrMissingLinkedItem:       http.StatusBadRequest,
	service.ErrInvalidFileKind:         http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrNotAuthenticated:        http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrAccountNotFound:    http.StatusNotFound,
	store.ErrEntryNotFound:      http.StatusNotFound,
	store.ErrFileRecordNotFound: http.StatusNotFound,
	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError emits the uniform JSON error body.
func writeError(w http.ResponseWriter, status int, message string) {
	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}

// writeServiceError maps a service or store error to a status code. Internal
// failures get a generic body so storage details never leak to the client.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(http.StatusInternalServerError)
	}

	writeError(w, status, message)
}
