package store

import (
	"database/sql"

	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/migrations"
)

// DB wraps the sql connection pool together with the store file path it was
// opened from. The path is needed again when the store is restored from a
// backup and the connection has to be reopened.
type DB struct {
	*sql.DB
	dsn    string
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
