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

func newTestDiaryRepo(t *testing.T) (*diaryRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &diaryRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func testEntry() models.DiaryEntry {
	now := time.Now()
	return models.DiaryEntry{
		ID:        "11111111-2222-3333-4444-555555555555",
		UserID:    1,
		Title:     "aa:bb:cc:dd",
		Content:   "ee:ff:00:11",
		Type:      "journal",
		EntryMode: models.EntryModeStandalone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSaveEntry_Success(t *testing.T) {
	repo, mock, db := newTestDiaryRepo(t)
	defer db.Close()

	ctx := context.Background()
	entry := testEntry()

	mock.ExpectExec("INSERT INTO diary_entries").
		WithArgs(
			entry.ID,
			entry.UserID,
			entry.Title,
			entry.Content,
			entry.Type,
			string(entry.EntryMode),
			sqlmock.AnyArg(), // linked_item_id NULL for standalone
			entry.CreatedAt,
			entry.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := repo.SaveEntry(ctx, entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != entry.ID {
		t.Errorf("expected id %s, got %s", entry.ID, saved.ID)
	}
}

func TestSaveEntry_ExecError(t *testing.T) {
	repo, mock, db := newTestDiaryRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("INSERT INTO diary_entries").
		WillReturnError(errors.New("disk full"))

	_, err := repo.SaveEntry(ctx, testEntry())
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestGetEntry_Success(t *testing.T) {
	repo, mock, db := newTestDiaryRepo(t)
	defer db.Close()

	ctx := context.Background()
	entry := testEntry()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "title", "content", "type", "entry_mode", "linked_item_id", "created_at", "updated_at"}).
		AddRow(entry.ID, entry.UserID, entry.Title, entry.Content, entry.Type, string(entry.EntryMode), nil, entry.CreatedAt, entry.UpdatedAt)

	mock.ExpectQuery("SELECT id").
		WithArgs(entry.ID, entry.UserID).
		WillReturnRows(rows)

	found, err := repo.GetEntry(ctx, entry.ID, entry.UserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Title != entry.Title {
		t.Errorf("expected title blob %s, got %s", entry.Title, found.Title)
	}
	if found.EntryMode != models.EntryModeStandalone {
		t.Errorf("expected standalone mode, got %s", found.EntryMode)
	}
	if found.LinkedItemID != "" {
		t.Errorf("expected empty linked item id, got %s", found.LinkedItemID)
	}
}

func TestGetEntry_NotFound(t *testing.T) {
	repo, mock, db := newTestDiaryRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "content", "type", "entry_mode", "linked_item_id", "created_at", "updated_at"})

	mock.ExpectQuery("SELECT id").
		WithArgs("missing-id", int64(1)).
		WillReturnRows(rows)

	_, err := repo.GetEntry(ctx, "missing-id", 1)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestGetEntries_NoFilter(t *testing.T) {
	repo, mock, db := newTestDiaryRepo(t)
	defer db.Close()

	ctx := context.Background()
	first := testEntry()
	second := testEntry()
	second.ID = "66666666-7777-8888-9999-000000000000"
	second.EntryMode = models.EntryModeLinked
	second.LinkedItemID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "title", "content", "type", "entry_mode", "linked_item_id", "created_at", "updated_at"}).
		AddRow(second.ID, second.UserID, second.Title, second.Content, second.Type, string(second.EntryMode), second.LinkedItemID, second.CreatedAt, second.UpdatedAt).
		AddRow(first.ID, first.UserID, first.Title, first.Content, first.Type, string(first.EntryMode), nil, first.CreatedAt, first.UpdatedAt)

	mock.ExpectQuery("SELECT id, user_id, title, content, type, entry_mode, linked_item_id, created_at, updated_at FROM diary_entries").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	entries, err := repo.GetEntries(ctx, 1, EntryFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].LinkedItemID != second.LinkedItemID {
		t.Errorf("expected linked item id %s, got %s", second.LinkedItemID, entries[0].LinkedItemID)
	}
}

func TestGetEntries_TypeFilter(t *testing.T) {
	repo, mock, db := newTestDiaryRepo(t)
	defer db.Close()

	ctx := context.Background()
	entry := testEntry()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "title", "content", "type", "entry_mode", "linked_item_id", "created_at", "updated_at"}).
		AddRow(entry.ID, entry.UserID, entry.Title, entry.Content, entry.Type, string(entry.EntryMode), nil, entry.CreatedAt, entry.UpdatedAt)

	// squirrel generates IN (?) for a single-element slice.
	mock.ExpectQuery("SELECT .+ FROM diary_entries WHERE user_id = \\? AND type IN \\(\\?\\)").
		WithArgs(int64(1), "journal").
		WillReturnRows(rows)

	entries, err := repo.GetEntries(ctx, 1, EntryFilter{Types: []string{"journal"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestGetEntries_QueryError(t *testing.T) {
	repo, mock, db := newTestDiaryRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT .+ FROM diary_entries").
		WillReturnError(errors.New("db failure"))

	_, err := repo.GetEntries(ctx, 1, EntryFilter{})
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestDeleteEntry_Success(t *testing.T) {
	repo, mock, db := newTestDiaryRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM diary_entries").
		WithArgs("some-id", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteEntry(ctx, "some-id", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteEntry_NotFound(t *testing.T) {
	repo, mock, db := newTestDiaryRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM diary_entries").
		WithArgs("missing-id", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteEntry(ctx, "missing-id", 1)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}
