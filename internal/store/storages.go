package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/alexsky74/Anamneon/internal/logger"
)

// Storages aggregates the per-aggregate repositories behind one handle and
// owns the underlying connection for maintenance operations (backup,
// restore, shutdown).
//
// Backup and restore move ciphertext only. Neither operation reads or writes
// key material; the in-memory key store is untouched.
type Storages struct {
	Accounts AccountRepository
	Diary    DiaryRepository
	Files    FileRepository

	db     *DB
	logger *logger.Logger
}

// NewStorages wires the repositories over a single connected store.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		Accounts: NewAccountRepository(db, log),
		Diary:    NewDiaryRepository(db, log),
		Files:    NewFileRepository(db, log),
		db:       db,
		logger:   log,
	}
}

// Backup writes a consistent snapshot of the store file to dst.
//
// VACUUM INTO produces a compacted copy that is safe to take while the
// connection is live. The destination must not exist; a stale file at dst is
// removed first.
func (s *Storages) Backup(ctx context.Context, dst string) error {
	log := logger.FromContext(ctx)

	if _, err := os.Stat(dst); err == nil {
		if err := os.Remove(dst); err != nil {
			log.Err(err).Str("func", "Storages.Backup").Str("dst", dst).Msg("failed to remove stale backup file")
			return fmt.Errorf("failed to remove stale backup file: %w", err)
		}
	}

	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?;", dst); err != nil {
		log.Err(err).Str("func", "Storages.Backup").Str("dst", dst).Msg("failed to snapshot store")
		return fmt.Errorf("failed to snapshot store: %w", err)
	}

	log.Info().Str("dst", dst).Msg("store backup written")
	return nil
}

// Restore replaces the live store with the backup at src: the connection is
// closed, the store file overwritten, and the connection reopened and
// re-migrated so a backup from an older schema version comes up to date.
func (s *Storages) Restore(ctx context.Context, src string) error {
	log := logger.FromContext(ctx)

	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("backup file is not readable: %w", err)
	}

	if err := s.db.Close(); err != nil {
		log.Err(err).Str("func", "Storages.Restore").Msg("failed to close store before restore")
		return fmt.Errorf("failed to close store before restore: %w", err)
	}

	if err := copyFile(src, s.db.dsn); err != nil {
		log.Err(err).Str("func", "Storages.Restore").Str("src", src).Msg("failed to copy backup over store file")
		return fmt.Errorf("failed to copy backup over store file: %w", err)
	}

	conn, err := sql.Open("sqlite3", s.db.dsn)
	if err != nil {
		return fmt.Errorf("failed to reopen store after restore: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to reopen store after restore: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		return fmt.Errorf("failed to reopen store after restore: %w", err)
	}
	s.db.DB = conn

	// the backup may predate the current schema
	if err := s.db.Migrate(); err != nil {
		log.Err(err).Str("func", "Storages.Restore").Msg("failed to migrate restored store")
		return fmt.Errorf("failed to migrate restored store: %w", err)
	}

	log.Info().Str("src", src).Msg("store restored from backup")
	return nil
}

// Close shuts down the underlying connection.
func (s *Storages) Close() error {
	return s.db.Close()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
