package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/models"
)

// diaryRepository is the sqlite-backed implementation of [DiaryRepository].
// It executes all diary entry CRUD operations against the "diary_entries"
// table using the embedded [*DB] connection.
//
// Every method obtains a context-scoped logger via [logger.FromContext] so
// database interactions are traced with structured fields.
type diaryRepository struct {
	*DB
	logger *logger.Logger
}

// NewDiaryRepository constructs a [DiaryRepository] backed by the provided
// database connection and logger.
func NewDiaryRepository(db *DB, logger *logger.Logger) DiaryRepository {
	return &diaryRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveEntry inserts the entry or, when an entry with the same id already
// exists for the same owner, updates it in place. The caller assigns ID and
// timestamps; ciphertext blobs are stored verbatim.
func (d *diaryRepository) SaveEntry(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	log := logger.FromContext(ctx)

	_, err := d.DB.ExecContext(ctx, saveEntry,
		entry.ID,
		entry.UserID,
		entry.Title,
		entry.Content,
		entry.Type,
		string(entry.EntryMode),
		nullableString(entry.LinkedItemID),
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "diaryRepository.SaveEntry").
			Int64("user_id", entry.UserID).
			Str("id", entry.ID).
			Msg("failed to execute upsert for diary entry")
		return models.DiaryEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return entry, nil
}

// GetEntry retrieves a single entry identified by id and owner.
//
// Returns [ErrEntryNotFound] when no matching row exists.
func (d *diaryRepository) GetEntry(ctx context.Context, id string, userID int64) (models.DiaryEntry, error) {
	log := logger.FromContext(ctx)

	row := d.DB.QueryRowContext(ctx, getEntry, id, userID)

	entry, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DiaryEntry{}, ErrEntryNotFound
		}

		log.Err(err).
			Str("func", "diaryRepository.GetEntry").
			Int64("user_id", userID).
			Str("id", id).
			Msg("failed to scan diary entry row")
		return models.DiaryEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entry, nil
}

// GetEntries retrieves the entries of the given owner matching the filter,
// newest first.
func (d *diaryRepository) GetEntries(ctx context.Context, userID int64, filter EntryFilter) ([]models.DiaryEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetEntriesQuery(userID, filter)
	if err != nil {
		log.Err(err).
			Str("func", "diaryRepository.GetEntries").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "diaryRepository.GetEntries").
			Int64("user_id", userID).
			Msg("failed to execute query for listing diary entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.DiaryEntry, 0, 50)

	for rows.Next() {
		entry, scanErr := scanEntry(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "diaryRepository.GetEntries").
				Int64("user_id", userID).
				Msg("failed to scan diary entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "diaryRepository.GetEntries").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}

// DeleteEntry removes the entry identified by id and owner.
//
// Returns [ErrEntryNotFound] when no row was deleted.
func (d *diaryRepository) DeleteEntry(ctx context.Context, id string, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := d.DB.ExecContext(ctx, deleteEntry, id, userID)
	if err != nil {
		log.Err(err).
			Str("func", "diaryRepository.DeleteEntry").
			Int64("user_id", userID).
			Str("id", id).
			Msg("failed to execute delete for diary entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "diaryRepository.DeleteEntry").
			Int64("user_id", userID).
			Str("id", id).
			Msg("failed to get rows affected after delete")
		return err
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// scanEntry scans one diary entry row. linked_item_id is nullable: legacy
// standalone rows carry NULL rather than an empty string.
func scanEntry(scan func(dest ...any) error) (models.DiaryEntry, error) {
	var entry models.DiaryEntry
	var mode string
	var linkedItemID sql.NullString

	err := scan(
		&entry.ID,
		&entry.UserID,
		&entry.Title,
		&entry.Content,
		&entry.Type,
		&mode,
		&linkedItemID,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return models.DiaryEntry{}, err
	}

	entry.EntryMode = models.EntryMode(mode)
	entry.LinkedItemID = linkedItemID.String

	return entry, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
