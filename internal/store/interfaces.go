package store

import (
	"context"

	"github.com/alexsky74/Anamneon/models"
)

// AccountRepository persists registered archive owners.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)
}

// DiaryRepository persists diary entries. Title and content are ciphertext
// blobs by the time they reach this layer.
type DiaryRepository interface {
	SaveEntry(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error)
	GetEntry(ctx context.Context, id string, userID int64) (models.DiaryEntry, error)
	GetEntries(ctx context.Context, userID int64, filter EntryFilter) ([]models.DiaryEntry, error)
	DeleteEntry(ctx context.Context, id string, userID int64) error
}

// FileRepository persists file records. The encrypted bodies live on disk;
// only paths and metadata are stored here.
type FileRepository interface {
	CreateFileRecord(ctx context.Context, record models.FileRecord) (models.FileRecord, error)
	GetFileRecord(ctx context.Context, id string, userID int64) (models.FileRecord, error)
	GetFileRecords(ctx context.Context, userID int64, filter FileFilter) ([]models.FileRecord, error)
	DeleteFileRecord(ctx context.Context, id string, userID int64) error
}

// EntryFilter narrows diary entry listings. Zero value matches everything.
type EntryFilter struct {
	// Types restricts the result to the given category labels when non-empty.
	Types []string

	// Mode restricts the result to one entry mode when set.
	Mode models.EntryMode

	// LinkedItemID restricts the result to entries attached to the given
	// file record when set.
	LinkedItemID string
}

// FileFilter narrows file record listings. Zero value matches everything.
type FileFilter struct {
	// Kinds restricts the result to the given file kinds when non-empty.
	Kinds []models.FileKind
}
