package http

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/internal/service"
	"github.com/alexsky74/Anamneon/internal/store"
	"github.com/alexsky74/Anamneon/models"
)

// Hand-rolled service fakes with function fields. A nil field means the
// test does not expect that call.

type authServiceMock struct {
	register   func(ctx context.Context, req models.RegisterRequest) (models.Account, models.Token, error)
	login      func(ctx context.Context, req models.LoginRequest) (models.Account, models.Token, error)
	logout     func(ctx context.Context, userID int64)
	parseToken func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *authServiceMock) Register(ctx context.Context, req models.RegisterRequest) (models.Account, models.Token, error) {
	return m.register(ctx, req)
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (models.Account, models.Token, error) {
	return m.login(ctx, req)
}

func (m *authServiceMock) Logout(ctx context.Context, userID int64) {
	m.logout(ctx, userID)
}

func (m *authServiceMock) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseToken(ctx, tokenString)
}

type diaryServiceMock struct {
	saveEntry   func(ctx context.Context, userID int64, req models.SaveEntryRequest) (models.DiaryEntry, error)
	listEntries func(ctx context.Context, userID int64, filter store.EntryFilter) ([]models.DiaryEntry, error)
	deleteEntry func(ctx context.Context, userID int64, id string) error
}

func (m *diaryServiceMock) SaveEntry(ctx context.Context, userID int64, req models.SaveEntryRequest) (models.DiaryEntry, error) {
	return m.saveEntry(ctx, userID, req)
}

func (m *diaryServiceMock) ListEntries(ctx context.Context, userID int64, filter store.EntryFilter) ([]models.DiaryEntry, error) {
	return m.listEntries(ctx, userID, filter)
}

func (m *diaryServiceMock) DeleteEntry(ctx context.Context, userID int64, id string) error {
	return m.deleteEntry(ctx, userID, id)
}

type fileServiceMock struct {
	upload func(ctx context.Context, userID int64, req models.UploadFileRequest) (models.FileRecord, error)
	list   func(ctx context.Context, userID int64, filter store.FileFilter) ([]models.FileRecord, error)
	open   func(ctx context.Context, userID int64, recordID string) (string, error)
	delete func(ctx context.Context, userID int64, recordID string) error
}

func (m *fileServiceMock) Upload(ctx context.Context, userID int64, req models.UploadFileRequest) (models.FileRecord, error) {
	return m.upload(ctx, userID, req)
}

func (m *fileServiceMock) List(ctx context.Context, userID int64, filter store.FileFilter) ([]models.FileRecord, error) {
	return m.list(ctx, userID, filter)
}

func (m *fileServiceMock) Open(ctx context.Context, userID int64, recordID string) (string, error) {
	return m.open(ctx, userID, recordID)
}

func (m *fileServiceMock) Delete(ctx context.Context, userID int64, recordID string) error {
	return m.delete(ctx, userID, recordID)
}

type exportServiceMock struct {
	exportAll func(ctx context.Context, userID int64, destDir string) (models.ExportSummary, error)
}

func (m *exportServiceMock) ExportAll(ctx context.Context, userID int64, destDir string) (models.ExportSummary, error) {
	return m.exportAll(ctx, userID, destDir)
}

type storeMaintainerMock struct {
	backup  func(ctx context.Context, dst string) error
	restore func(ctx context.Context, src string) error
}

func (m *storeMaintainerMock) Backup(ctx context.Context, dst string) error {
	return m.backup(ctx, dst)
}

func (m *storeMaintainerMock) Restore(ctx context.Context, src string) error {
	return m.restore(ctx, src)
}

const testUserID int64 = 7

// sessionToken is the bearer token the default ParseToken fake accepts.
const sessionToken = "valid-session-token"

// defaultAuthMock accepts sessionToken for testUserID and rejects anything
// else, so private routes can be exercised without real JWTs.
func defaultAuthMock() *authServiceMock {
	return &authServiceMock{
		parseToken: func(_ context.Context, tokenString string) (models.Token, error) {
			if tokenString != sessionToken {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{UserID: testUserID}, nil
		},
	}
}

func newTestServer(services *service.Services, storages StoreMaintainer) *httptest.Server {
	h := NewHandler(services, storages, logger.Nop())
	return httptest.NewServer(h.Init())
}

func authorized(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	return req
}
