package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/internal/store"
	"github.com/alexsky74/Anamneon/internal/utils"
	"github.com/alexsky74/Anamneon/models"
)

// listFiles returns the file records of the authenticated user, newest
// first, display titles decrypted. Optional ?kind=photo&kind=video query
// parameters narrow the result.
func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}

	var filter store.FileFilter
	for _, kind := range r.URL.Query()["kind"] {
		filter.Kinds = append(filter.Kinds, models.FileKind(kind))
	}

	records, err := h.services.FileService.List(ctx, userID, filter)
	if err != nil {
		log.Err(err).Msg("listing file records failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}

	var req models.UploadFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON was passed")
		return
	}

	record, err := h.services.FileService.Upload(ctx, userID, req)
	if err != nil {
		log.Err(err).Str("path", req.Path).Msg("file upload failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

// openFile decrypts the file body into a temporary plaintext copy and
// returns its path. The copy is removed again after the configured delay.
func (h *Handler) openFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}

	id := chi.URLParam(r, "id")

	tempPath, err := h.services.FileService.Open(ctx, userID, id)
	if err != nil {
		log.Err(err).Str("id", id).Msg("opening file failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, models.OpenFileResponse{Path: tempPath}, http.StatusOK)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.services.FileService.Delete(ctx, userID, id); err != nil {
		log.Err(err).Str("id", id).Msg("deleting file failed")
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
