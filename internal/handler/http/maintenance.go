package http

import (
	"encoding/json"
	"net/http"

	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/internal/utils"
	"github.com/alexsky74/Anamneon/models"
)

// export bulk-decrypts the whole archive of the authenticated user into the
// requested directory and reports what was written.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}

	var req models.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON was passed")
		return
	}

	summary, err := h.services.ExportService.ExportAll(ctx, userID, req.DestDir)
	if err != nil {
		log.Err(err).Str("dest_dir", req.DestDir).Msg("archive export failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}

// backup snapshots the store file. Backups hold ciphertext only and are
// safe to keep on untrusted storage.
func (h *Handler) backup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.StoreFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON was passed")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "backup path is required")
		return
	}

	if err := h.storages.Backup(ctx, req.Path); err != nil {
		log.Err(err).Str("path", req.Path).Msg("store backup failed")
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// restore replaces the store file with a backup snapshot and re-runs the
// schema migrations over it.
func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.StoreFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON was passed")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "restore path is required")
		return
	}

	if err := h.storages.Restore(ctx, req.Path); err != nil {
		log.Err(err).Str("path", req.Path).Msg("store restore failed")
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
