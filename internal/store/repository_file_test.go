package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/models"
)

func newTestFileRepo(t *testing.T) (*fileRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &fileRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func testFileRecord() models.FileRecord {
	return models.FileRecord{
		ID:     "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
		UserID: 1,
		Name:   "vacation.jpg",
		Path:   "/archive/vacation.jpg.enc",
		Kind:   models.FileKindPhoto,
		Metadata: models.FileMetadata{
			Title:    "aa:bb:cc:dd",
			Size:     1024,
			MimeType: "image/jpeg",
		},
		CreatedAt: time.Now(),
	}
}

func TestCreateFileRecord_Success(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()
	record := testFileRecord()

	mock.ExpectExec("INSERT INTO file_records").
		WithArgs(
			record.ID,
			record.UserID,
			record.Name,
			record.Path,
			string(record.Kind),
			`{"title":"aa:bb:cc:dd","size":1024,"mime_type":"image/jpeg"}`,
			record.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateFileRecord(ctx, record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != record.ID {
		t.Errorf("expected id %s, got %s", record.ID, created.ID)
	}
}

func TestCreateFileRecord_ExecError(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("INSERT INTO file_records").
		WillReturnError(errors.New("disk full"))

	_, err := repo.CreateFileRecord(ctx, testFileRecord())
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestGetFileRecord_Success(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()
	record := testFileRecord()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "name", "path", "kind", "metadata", "created_at"}).
		AddRow(record.ID, record.UserID, record.Name, record.Path, string(record.Kind),
			`{"title":"aa:bb:cc:dd","size":1024,"mime_type":"image/jpeg"}`, record.CreatedAt)

	mock.ExpectQuery("SELECT id").
		WithArgs(record.ID, record.UserID).
		WillReturnRows(rows)

	found, err := repo.GetFileRecord(ctx, record.ID, record.UserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Kind != models.FileKindPhoto {
		t.Errorf("expected kind photo, got %s", found.Kind)
	}
	if found.Metadata.Title != record.Metadata.Title {
		t.Errorf("expected metadata title blob %s, got %s", record.Metadata.Title, found.Metadata.Title)
	}
	if found.Metadata.Size != 1024 {
		t.Errorf("expected metadata size 1024, got %d", found.Metadata.Size)
	}
}

func TestGetFileRecord_NotFound(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "path", "kind", "metadata", "created_at"})

	mock.ExpectQuery("SELECT id").
		WithArgs("missing-id", int64(1)).
		WillReturnRows(rows)

	_, err := repo.GetFileRecord(ctx, "missing-id", 1)
	if !errors.Is(err, ErrFileRecordNotFound) {
		t.Fatalf("expected ErrFileRecordNotFound, got %v", err)
	}
}

func TestGetFileRecord_BadMetadata(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()
	record := testFileRecord()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "name", "path", "kind", "metadata", "created_at"}).
		AddRow(record.ID, record.UserID, record.Name, record.Path, string(record.Kind),
			`{not json`, record.CreatedAt)

	mock.ExpectQuery("SELECT id").
		WithArgs(record.ID, record.UserID).
		WillReturnRows(rows)

	_, err := repo.GetFileRecord(ctx, record.ID, record.UserID)
	if err == nil {
		t.Fatal("expected metadata unmarshal error, got nil")
	}
}

func TestGetFileRecords_KindFilter(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()
	record := testFileRecord()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "name", "path", "kind", "metadata", "created_at"}).
		AddRow(record.ID, record.UserID, record.Name, record.Path, string(record.Kind),
			`{"title":"aa:bb:cc:dd","size":1024}`, record.CreatedAt)

	// squirrel generates IN (?,?) for a two-element slice.
	mock.ExpectQuery("SELECT .+ FROM file_records WHERE user_id = \\? AND kind IN \\(\\?,\\?\\)").
		WithArgs(int64(1), "photo", "video").
		WillReturnRows(rows)

	records, err := repo.GetFileRecords(ctx, 1, FileFilter{
		Kinds: []models.FileKind{models.FileKindPhoto, models.FileKindVideo},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestGetFileRecords_QueryError(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT .+ FROM file_records").
		WillReturnError(errors.New("db failure"))

	_, err := repo.GetFileRecords(ctx, 1, FileFilter{})
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestDeleteFileRecord_Success(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM file_records").
		WithArgs("some-id", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteFileRecord(ctx, "some-id", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteFileRecord_NotFound(t *testing.T) {
	repo, mock, db := newTestFileRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM file_records").
		WithArgs("missing-id", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteFileRecord(ctx, "missing-id", 1)
	if !errors.Is(err, ErrFileRecordNotFound) {
		t.Fatalf("expected ErrFileRecordNotFound, got %v", err)
	}
}
