package service

import (
	"context"

	"github.com/alexsky74/Anamneon/internal/store"
	"github.com/alexsky74/Anamneon/models"
)

// AuthService handles account lifecycle and session management. A
// successful login caches the verified password in the key store; it is
// the only moment the system ever sees the password in the clear.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.Account, models.Token, error)
	Login(ctx context.Context, req models.LoginRequest) (models.Account, models.Token, error)
	Logout(ctx context.Context, userID int64)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// DiaryService owns the plaintext boundary for diary entries: it encrypts
// before anything reaches the store and decrypts on the way out.
type DiaryService interface {
	SaveEntry(ctx context.Context, userID int64, req models.SaveEntryRequest) (models.DiaryEntry, error)
	ListEntries(ctx context.Context, userID int64, filter store.EntryFilter) ([]models.DiaryEntry, error)
	DeleteEntry(ctx context.Context, userID int64, id string) error
}

// FileService owns encrypted file bodies on disk plus their records.
type FileService interface {
	Upload(ctx context.Context, userID int64, req models.UploadFileRequest) (models.FileRecord, error)
	List(ctx context.Context, userID int64, filter store.FileFilter) ([]models.FileRecord, error)
	Open(ctx context.Context, userID int64, recordID string) (string, error)
	Delete(ctx context.Context, userID int64, recordID string) error
}

// ExportService bulk-decrypts the whole archive into a directory tree.
type ExportService interface {
	ExportAll(ctx context.Context, userID int64, destDir string) (models.ExportSummary, error)
}
