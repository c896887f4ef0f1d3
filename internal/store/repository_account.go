package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/models"
)

// accountRepository is the sqlite-backed implementation of
// [AccountRepository]. It handles account creation and lookup against the
// "accounts" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount persists a new account record and returns the fully
// populated [models.Account] with server-assigned fields (ID, CreatedAt).
//
// Error handling:
//   - sqlite unique constraint on email → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	account.CreatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, createAccount, account.Email, account.PasswordHash, account.Name, account.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error: insert failed")

		if isUniqueViolation(err) {
			return models.Account{}, ErrEmailAlreadyExists
		}
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error: reading inserted id")
		return models.Account{}, err
	}
	account.ID = id

	return account, nil
}

// FindAccountByEmail retrieves the account whose email matches the one
// provided.
//
// Error handling:
//   - No matching row → [ErrAccountNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *accountRepository) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	log := logger.FromContext(ctx)

	var found models.Account
	row := r.db.QueryRowContext(ctx, findAccountByEmail, email)

	if err := row.Scan(&found.ID, &found.Email, &found.PasswordHash, &found.Name, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}

		log.Err(err).Str("func", "*accountRepository.FindAccountByEmail").Msg("error: scanning error")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}
