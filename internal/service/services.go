package service

import (
	"github.com/alexsky74/Anamneon/internal/config"
	"github.com/alexsky74/Anamneon/internal/crypto"
	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/internal/store"
	"github.com/alexsky74/Anamneon/internal/workers"
)

// Services aggregates the application services behind one handle.
type Services struct {
	AuthService   AuthService
	DiaryService  DiaryService
	FileService   FileService
	ExportService ExportService
}

// Deps carries everything the services need: the repositories, the crypto
// primitives sharing one key store, and the temp-file janitor.
type Deps struct {
	Storages   *store.Storages
	Keys       crypto.KeyStore
	Hasher     crypto.PasswordHasher
	TextCipher crypto.TextCipher
	FileCipher crypto.FileCipher
	Janitor    *workers.Janitor
}

// NewServices wires the services over the shared dependencies.
func NewServices(deps Deps, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(deps.Storages.Accounts, deps.Keys, deps.Hasher, cfg.Auth, logger),
		DiaryService:  NewDiaryService(deps.Storages.Diary, deps.Storages.Files, deps.Keys, deps.TextCipher, logger),
		FileService:   NewFileService(deps.Storages.Files, deps.Keys, deps.TextCipher, deps.FileCipher, deps.Janitor, cfg.Storage.Files, logger),
		ExportService: NewExportService(deps.Storages.Diary, deps.Storages.Files, deps.Keys, deps.TextCipher, deps.FileCipher, logger),
	}
}

// sessionKey fetches the cached key material for userID or reports the
// absence of a session.
func sessionKey(keys crypto.KeyStore, userID int64) ([]byte, error) {
	material, ok := keys.Get(userID)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return material, nil
}
