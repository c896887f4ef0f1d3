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

// listEntries returns the decrypted entries of the authenticated user,
// newest first. Optional query parameters narrow the result:
//
//	?type=journal&type=dream   category labels
//	?mode=linked               entry mode
//	?linked_item_id=<uuid>     entries attached to one file record
func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}

	query := r.URL.Query()
	filter := store.EntryFilter{
		Types:        query["type"],
		Mode:         models.EntryMode(query.Get("mode")),
		LinkedItemID: query.Get("linked_item_id"),
	}

	entries, err := h.services.DiaryService.ListEntries(ctx, userID, filter)
	if err != nil {
		log.Err(err).Msg("listing diary entries failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) saveEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}

	var req models.SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON was passed")
		return
	}

	entry, err := h.services.DiaryService.SaveEntry(ctx, userID, req)
	if err != nil {
		log.Err(err).Msg("saving diary entry failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.services.DiaryService.DeleteEntry(ctx, userID, id); err != nil {
		log.Err(err).Str("id", id).Msg("deleting diary entry failed")
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
