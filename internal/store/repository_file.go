package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/models"
)

// fileRepository is the sqlite-backed implementation of [FileRepository].
// The metadata document (encrypted title, size, mime type) is persisted as a
// JSON text column.
type fileRepository struct {
	*DB
	logger *logger.Logger
}

// NewFileRepository constructs a [FileRepository] backed by the provided
// database connection and logger.
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	return &fileRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateFileRecord persists a new file record. The caller assigns ID,
// timestamps, and the path of the encrypted body.
func (f *fileRepository) CreateFileRecord(ctx context.Context, record models.FileRecord) (models.FileRecord, error) {
	log := logger.FromContext(ctx)

	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		log.Err(err).
			Str("func", "fileRepository.CreateFileRecord").
			Int64("user_id", record.UserID).
			Msg("failed to marshal file metadata")
		return models.FileRecord{}, fmt.Errorf("failed to marshal file metadata: %w", err)
	}

	_, err = f.DB.ExecContext(ctx, createFileRecord,
		record.ID,
		record.UserID,
		record.Name,
		record.Path,
		string(record.Kind),
		string(metadata),
		record.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "fileRepository.CreateFileRecord").
			Int64("user_id", record.UserID).
			Str("id", record.ID).
			Msg("failed to execute insert for file record")
		return models.FileRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

// GetFileRecord retrieves a single file record identified by id and owner.
//
// Returns [ErrFileRecordNotFound] when no matching row exists.
func (f *fileRepository) GetFileRecord(ctx context.Context, id string, userID int64) (models.FileRecord, error) {
	log := logger.FromContext(ctx)

	row := f.DB.QueryRowContext(ctx, getFileRecord, id, userID)

	record, err := scanFileRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FileRecord{}, ErrFileRecordNotFound
		}

		log.Err(err).
			Str("func", "fileRepository.GetFileRecord").
			Int64("user_id", userID).
			Str("id", id).
			Msg("failed to scan file record row")
		return models.FileRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

// GetFileRecords retrieves the file records of the given owner matching the
// filter, newest first.
func (f *fileRepository) GetFileRecords(ctx context.Context, userID int64, filter FileFilter) ([]models.FileRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetFileRecordsQuery(userID, filter)
	if err != nil {
		log.Err(err).
			Str("func", "fileRepository.GetFileRecords").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := f.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "fileRepository.GetFileRecords").
			Int64("user_id", userID).
			Msg("failed to execute query for listing file records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.FileRecord, 0, 50)

	for rows.Next() {
		record, scanErr := scanFileRecord(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "fileRepository.GetFileRecords").
				Int64("user_id", userID).
				Msg("failed to scan file record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "fileRepository.GetFileRecords").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// DeleteFileRecord removes the record identified by id and owner.
//
// Returns [ErrFileRecordNotFound] when no row was deleted. The encrypted
// body on disk is the service layer's responsibility.
func (f *fileRepository) DeleteFileRecord(ctx context.Context, id string, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := f.DB.ExecContext(ctx, deleteFileRecord, id, userID)
	if err != nil {
		log.Err(err).
			Str("func", "fileRepository.DeleteFileRecord").
			Int64("user_id", userID).
			Str("id", id).
			Msg("failed to execute delete for file record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "fileRepository.DeleteFileRecord").
			Int64("user_id", userID).
			Str("id", id).
			Msg("failed to get rows affected after delete")
		return err
	}
	if affected == 0 {
		return ErrFileRecordNotFound
	}

	return nil
}

func scanFileRecord(scan func(dest ...any) error) (models.FileRecord, error) {
	var record models.FileRecord
	var kind string
	var metadata string

	err := scan(
		&record.ID,
		&record.UserID,
		&record.Name,
		&record.Path,
		&kind,
		&metadata,
		&record.CreatedAt,
	)
	if err != nil {
		return models.FileRecord{}, err
	}

	record.Kind = models.FileKind(kind)
	if err := json.Unmarshal([]byte(metadata), &record.Metadata); err != nil {
		return models.FileRecord{}, fmt.Errorf("failed to unmarshal file metadata: %w", err)
	}

	return record, nil
}
