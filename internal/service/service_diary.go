package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexsky74/Anamneon/internal/crypto"
	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/internal/store"
	"github.com/alexsky74/Anamneon/internal/utils"
	"github.com/alexsky74/Anamneon/models"
)

// entryPlaceholder replaces title and content of an entry that failed to
// decrypt during a listing. One corrupted blob must not hide the rest.
const entryPlaceholder = "[decryption failed]"

// diaryService is the concrete implementation of DiaryService. It sits on
// the plaintext boundary: requests arrive in the clear, rows leave and
// return as ciphertext blobs.
type diaryService struct {
	diary  store.DiaryRepository
	files  store.FileRepository
	keys   crypto.KeyStore
	texts  crypto.TextCipher
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewDiaryService constructs a DiaryService over the given repositories and
// text cipher. The file repository is needed to validate linked entries.
func NewDiaryService(diary store.DiaryRepository, files store.FileRepository, keys crypto.KeyStore, texts crypto.TextCipher, logger *logger.Logger) DiaryService {
	return &diaryService{
		diary:  diary,
		files:  files,
		keys:   keys,
		texts:  texts,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}
}

// SaveEntry creates a new entry or updates an existing one.
//
// An empty EntryMode defaults to standalone. A linked entry must reference
// an existing file record of the same owner; a standalone entry must not
// carry a LinkedItemID at all. Title and content are encrypted under the
// session key before the entry reaches the store.
//
// The returned entry is a plaintext display copy: same row, but with the
// title and content the caller just sent instead of the stored ciphertext.
func (d *diaryService) SaveEntry(ctx context.Context, userID int64, req models.SaveEntryRequest) (models.DiaryEntry, error) {
	log := logger.FromContext(ctx)

	if req.Title == "" && req.Content == "" {
		return models.DiaryEntry{}, ErrInvalidDataProvided
	}

	mode := req.EntryMode
	if mode == "" {
		mode = models.EntryModeStandalone
	}
	if !mode.Valid() {
		return models.DiaryEntry{}, fmt.Errorf("%w: %q", ErrInvalidEntryMode, req.EntryMode)
	}

	switch mode {
	case models.EntryModeLinked:
		if req.LinkedItemID == "" {
			return models.DiaryEntry{}, ErrMissingLinkedItem
		}
		if _, err := d.files.GetFileRecord(ctx, req.LinkedItemID, userID); err != nil {
			if errors.Is(err, store.ErrFileRecordNotFound) {
				return models.DiaryEntry{}, fmt.Errorf("%w: file record %q does not exist", ErrMissingLinkedItem, req.LinkedItemID)
			}
			log.Err(err).Str("linked_item_id", req.LinkedItemID).Msg("linked item lookup failed")
			return models.DiaryEntry{}, fmt.Errorf("linked item lookup failed: %w", err)
		}
	case models.EntryModeStandalone:
		if req.LinkedItemID != "" {
			return models.DiaryEntry{}, fmt.Errorf("%w: standalone entry must not reference a file record", ErrInvalidEntryMode)
		}
	}

	key, err := sessionKey(d.keys, userID)
	if err != nil {
		return models.DiaryEntry{}, err
	}

	now := time.Now()
	entry := models.DiaryEntry{
		ID:           req.ID,
		UserID:       userID,
		Type:         req.Type,
		EntryMode:    mode,
		LinkedItemID: req.LinkedItemID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if entry.ID == "" {
		entry.ID = d.ids.Generate()
	} else {
		// update keeps the original creation timestamp
		existing, getErr := d.diary.GetEntry(ctx, entry.ID, userID)
		switch {
		case getErr == nil:
			entry.CreatedAt = existing.CreatedAt
		case errors.Is(getErr, store.ErrEntryNotFound):
			// caller-chosen id for a new entry, keep now as CreatedAt
		default:
			log.Err(getErr).Str("id", entry.ID).Msg("existing entry lookup failed")
			return models.DiaryEntry{}, fmt.Errorf("existing entry lookup failed: %w", getErr)
		}
	}

	entry.Title, err = d.texts.Encrypt(ctx, req.Title, key)
	if err != nil {
		log.Err(err).Str("id", entry.ID).Msg("title encryption failed")
		return models.DiaryEntry{}, fmt.Errorf("title encryption failed: %w", err)
	}

	entry.Content, err = d.texts.Encrypt(ctx, req.Content, key)
	if err != nil {
		log.Err(err).Str("id", entry.ID).Msg("content encryption failed")
		return models.DiaryEntry{}, fmt.Errorf("content encryption failed: %w", err)
	}

	saved, err := d.diary.SaveEntry(ctx, entry)
	if err != nil {
		log.Err(err).Str("id", entry.ID).Msg("saving diary entry ended with error")
		return models.DiaryEntry{}, fmt.Errorf("saving diary entry ended with error: %w", err)
	}

	saved.Title = req.Title
	saved.Content = req.Content

	return saved, nil
}

// ListEntries returns the decrypted entries of the user matching the
// filter, newest first.
//
// A row whose blobs fail to decrypt stays in the result with both fields
// replaced by a placeholder, so one corrupted record never hides the rest
// of the diary.
func (d *diaryService) ListEntries(ctx context.Context, userID int64, filter store.EntryFilter) ([]models.DiaryEntry, error) {
	log := logger.FromContext(ctx)

	key, err := sessionKey(d.keys, userID)
	if err != nil {
		return nil, err
	}

	entries, err := d.diary.GetEntries(ctx, userID, filter)
	if err != nil {
		log.Err(err).Msg("listing diary entries ended with error")
		return nil, fmt.Errorf("listing diary entries ended with error: %w", err)
	}

	for i := range entries {
		title, titleErr := d.texts.Decrypt(ctx, entries[i].Title, key)
		content, contentErr := d.texts.Decrypt(ctx, entries[i].Content, key)
		if titleErr != nil || contentErr != nil {
			log.Warn().
				Str("id", entries[i].ID).
				Int64("user_id", userID).
				Msg("diary entry failed to decrypt, returning placeholder")
			entries[i].Title = entryPlaceholder
			entries[i].Content = entryPlaceholder
			continue
		}

		entries[i].Title = title
		entries[i].Content = content
	}

	return entries, nil
}

// DeleteEntry removes the entry identified by id. Deleting an entry never
// touches the file record it may be linked to.
func (d *diaryService) DeleteEntry(ctx context.Context, userID int64, id string) error {
	log := logger.FromContext(ctx)

	if id == "" {
		return ErrInvalidDataProvided
	}

	if err := d.diary.DeleteEntry(ctx, id, userID); err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			return err
		}
		log.Err(err).Str("id", id).Msg("deleting diary entry ended with error")
		return fmt.Errorf("deleting diary entry ended with error: %w", err)
	}

	log.Info().Str("id", id).Int64("user_id", userID).Msg("diary entry deleted")

	return nil
}
