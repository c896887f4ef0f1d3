package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upRebuildDiaryEntries, downRebuildDiaryEntries)
}

// upRebuildDiaryEntries rebuilds a legacy diary_entries table that still
// carries the obsolete media_id/file_id reference columns.
//
// sqlite cannot drop columns in place, so the step creates the current
// shape under a temporary name, copies every row (deriving entry_mode and
// linked_item_id from whichever legacy reference is set), and swaps the
// tables. Title/content ciphertext is copied untouched. Stores already in
// the current shape pass through untouched.
func upRebuildDiaryEntries(ctx context.Context, tx *sql.Tx) error {
	hasEntries, err := tableExists(tx, "diary_entries")
	if err != nil {
		return err
	}
	if !hasEntries {
		return nil
	}

	hasMediaID, err := columnExists(tx, "diary_entries", "media_id")
	if err != nil {
		return err
	}
	hasFileID, err := columnExists(tx, "diary_entries", "file_id")
	if err != nil {
		return err
	}
	if !hasMediaID && !hasFileID {
		// already migrated
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE diary_entries_rebuilt (
		    id             TEXT PRIMARY KEY,
		    user_id        INTEGER NOT NULL REFERENCES accounts (id),
		    title          TEXT    NOT NULL,
		    content        TEXT    NOT NULL,
		    type           TEXT    NOT NULL DEFAULT '',
		    entry_mode     TEXT    NOT NULL DEFAULT 'standalone'
		                   CHECK (entry_mode IN ('standalone', 'linked')),
		    linked_item_id TEXT,
		    created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		    updated_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	); err != nil {
		return fmt.Errorf("creating rebuilt diary_entries: %w", err)
	}

	mediaRef := "NULL"
	if hasMediaID {
		mediaRef = "media_id"
	}
	fileRef := "NULL"
	if hasFileID {
		fileRef = "file_id"
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO diary_entries_rebuilt
		    (id, user_id, title, content, type, entry_mode, linked_item_id, created_at, updated_at)
		SELECT id,
		       user_id,
		       title,
		       content,
		       type,
		       CASE WHEN COALESCE(%[1]s, %[2]s) IS NOT NULL THEN 'linked' ELSE 'standalone' END,
		       COALESCE(%[1]s, %[2]s),
		       created_at,
		       updated_at
		FROM diary_entries`, mediaRef, fileRef),
	); err != nil {
		return fmt.Errorf("copying diary_entries rows: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DROP TABLE diary_entries`); err != nil {
		return fmt.Errorf("dropping legacy diary_entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `ALTER TABLE diary_entries_rebuilt RENAME TO diary_entries`); err != nil {
		return fmt.Errorf("renaming rebuilt diary_entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_diary_entries_user_id ON diary_entries (user_id)`); err != nil {
		return fmt.Errorf("recreating diary_entries index: %w", err)
	}

	return nil
}

// downRebuildDiaryEntries is intentionally a no-op: the obsolete columns are
// not resurrected.
func downRebuildDiaryEntries(ctx context.Context, tx *sql.Tx) error {
	return nil
}
