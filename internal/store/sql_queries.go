package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/alexsky74/Anamneon/models"
)

const (
	createAccount = `INSERT INTO accounts (email, password_hash, name, created_at)
	VALUES (?, ?, ?, ?);`

	findAccountByEmail = `SELECT id, email, password_hash, name, created_at
	FROM accounts
	WHERE email = ?;`

	saveEntry = `INSERT INTO diary_entries (id, user_id, title, content, type, entry_mode, linked_item_id, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		content = excluded.content,
		type = excluded.type,
		entry_mode = excluded.entry_mode,
		linked_item_id = excluded.linked_item_id,
		updated_at = excluded.updated_at
	WHERE diary_entries.user_id = excluded.user_id;`

	getEntry = `SELECT id, user_id, title, content, type, entry_mode, linked_item_id, created_at, updated_at
	FROM diary_entries
	WHERE id = ? AND user_id = ?;`

	deleteEntry = `DELETE FROM diary_entries
	WHERE id = ? AND user_id = ?;`

	createFileRecord = `INSERT INTO file_records (id, user_id, name, path, kind, metadata, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);`

	getFileRecord = `SELECT id, user_id, name, path, kind, metadata, created_at
	FROM file_records
	WHERE id = ? AND user_id = ?;`

	deleteFileRecord = `DELETE FROM file_records
	WHERE id = ? AND user_id = ?;`
)

var entryColumns = []string{"id", "user_id", "title", "content", "type", "entry_mode", "linked_item_id", "created_at", "updated_at"}

var fileRecordColumns = []string{"id", "user_id", "name", "path", "kind", "metadata", "created_at"}

// buildGetEntriesQuery dynamically builds the diary listing SELECT for the
// given filter. sqlite uses `?` placeholders, squirrel's default.
func buildGetEntriesQuery(userID int64, filter EntryFilter) (string, []any, error) {
	query := sq.Select(entryColumns...).
		From(models.DiaryEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID})

	if len(filter.Types) > 0 {
		query = query.Where(sq.Eq{"type": filter.Types})
	}
	if filter.Mode != "" {
		query = query.Where(sq.Eq{"entry_mode": string(filter.Mode)})
	}
	if filter.LinkedItemID != "" {
		query = query.Where(sq.Eq{"linked_item_id": filter.LinkedItemID})
	}

	return query.OrderBy("created_at DESC").ToSql()
}

// buildGetFileRecordsQuery dynamically builds the file record listing SELECT
// for the given filter.
func buildGetFileRecordsQuery(userID int64, filter FileFilter) (string, []any, error) {
	query := sq.Select(fileRecordColumns...).
		From(models.FileRecord{}.TableName()).
		Where(sq.Eq{"user_id": userID})

	if len(filter.Kinds) > 0 {
		kinds := make([]string, 0, len(filter.Kinds))
		for _, kind := range filter.Kinds {
			kinds = append(kinds, string(kind))
		}
		query = query.Where(sq.Eq{"kind": kinds})
	}

	return query.OrderBy("created_at DESC").ToSql()
}
