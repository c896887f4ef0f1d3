package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upFoldLegacyLibrary, downFoldLegacyLibrary)
}

// upFoldLegacyLibrary folds the historical split "media"/"files" tables into
// the unified file_records table.
//
// Rows are copied verbatim: title ciphertext and every other column move
// unchanged, so no plaintext is ever produced during migration. media rows
// keep their type as the kind tag; files rows become documents. Stores
// created after the unification have neither legacy table and pass through
// untouched.
func upFoldLegacyLibrary(ctx context.Context, tx *sql.Tx) error {
	hasMedia, err := tableExists(tx, "media")
	if err != nil {
		return err
	}
	if hasMedia {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO file_records (id, user_id, name, path, kind, metadata, created_at)
			SELECT id,
			       user_id,
			       name,
			       path,
			       CASE WHEN type IN ('photo', 'video', 'audio') THEN type ELSE 'photo' END,
			       metadata,
			       created_at
			FROM media`,
		); err != nil {
			return fmt.Errorf("folding media rows into file_records: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DROP TABLE media`); err != nil {
			return fmt.Errorf("dropping legacy media table: %w", err)
		}
	}

	hasFiles, err := tableExists(tx, "files")
	if err != nil {
		return err
	}
	if hasFiles {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO file_records (id, user_id, name, path, kind, metadata, created_at)
			SELECT id, user_id, name, path, 'document', metadata, created_at
			FROM files`,
		); err != nil {
			return fmt.Errorf("folding files rows into file_records: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DROP TABLE files`); err != nil {
			return fmt.Errorf("dropping legacy files table: %w", err)
		}
	}

	return nil
}

// downFoldLegacyLibrary is intentionally a no-op: the legacy split shape is
// not resurrected once folded.
func downFoldLegacyLibrary(ctx context.Context, tx *sql.Tx) error {
	return nil
}
