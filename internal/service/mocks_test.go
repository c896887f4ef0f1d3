package service

import (
	"context"

	"github.com/alexsky74/Anamneon/internal/store"
	"github.com/alexsky74/Anamneon/models"
)

// Hand-rolled repository fakes with function fields. A nil field means the
// test does not expect that call.

type accountRepoMock struct {
	createAccount      func(ctx context.Context, account models.Account) (models.Account, error)
	findAccountByEmail func(ctx context.Context, email string) (models.Account, error)
}

func (m *accountRepoMock) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	return m.createAccount(ctx, account)
}

func (m *accountRepoMock) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	return m.findAccountByEmail(ctx, email)
}

type diaryRepoMock struct {
	saveEntry   func(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error)
	getEntry    func(ctx context.Context, id string, userID int64) (models.DiaryEntry, error)
	getEntries  func(ctx context.Context, userID int64, filter store.EntryFilter) ([]models.DiaryEntry, error)
	deleteEntry func(ctx context.Context, id string, userID int64) error
}

func (m *diaryRepoMock) SaveEntry(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	return m.saveEntry(ctx, entry)
}

func (m *diaryRepoMock) GetEntry(ctx context.Context, id string, userID int64) (models.DiaryEntry, error) {
	return m.getEntry(ctx, id, userID)
}

func (m *diaryRepoMock) GetEntries(ctx context.Context, userID int64, filter store.EntryFilter) ([]models.DiaryEntry, error) {
	return m.getEntries(ctx, userID, filter)
}

func (m *diaryRepoMock) DeleteEntry(ctx context.Context, id string, userID int64) error {
	return m.deleteEntry(ctx, id, userID)
}

type fileRepoMock struct {
	createFileRecord func(ctx context.Context, record models.FileRecord) (models.FileRecord, error)
	getFileRecord    func(ctx context.Context, id string, userID int64) (models.FileRecord, error)
	getFileRecords   func(ctx context.Context, userID int64, filter store.FileFilter) ([]models.FileRecord, error)
	deleteFileRecord func(ctx context.Context, id string, userID int64) error
}

func (m *fileRepoMock) CreateFileRecord(ctx context.Context, record models.FileRecord) (models.FileRecord, error) {
	return m.createFileRecord(ctx, record)
}

func (m *fileRepoMock) GetFileRecord(ctx context.Context, id string, userID int64) (models.FileRecord, error) {
	return m.getFileRecord(ctx, id, userID)
}

func (m *fileRepoMock) GetFileRecords(ctx context.Context, userID int64, filter store.FileFilter) ([]models.FileRecord, error) {
	return m.getFileRecords(ctx, userID, filter)
}

func (m *fileRepoMock) DeleteFileRecord(ctx context.Context, id string, userID int64) error {
	return m.deleteFileRecord(ctx, id, userID)
}
