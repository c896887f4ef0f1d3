package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexsky74/Anamneon/internal/config"
	"github.com/alexsky74/Anamneon/internal/crypto"
	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/internal/store"
	"github.com/alexsky74/Anamneon/internal/utils"
	"github.com/alexsky74/Anamneon/internal/workers"
	"github.com/alexsky74/Anamneon/models"
)

// encryptedSuffix is appended to the plaintext path to name the encrypted
// sibling file. The suffix is reserved: a plaintext original may not carry
// it, so an encrypted body can never be mistaken for an upload source.
const encryptedSuffix = ".enc"

// fileService is the concrete implementation of FileService. It owns the
// encrypted bodies on disk, their database records, and the short-lived
// plaintext copies produced by Open.
type fileService struct {
	files   store.FileRepository
	keys    crypto.KeyStore
	texts   crypto.TextCipher
	cipher  crypto.FileCipher
	janitor *workers.Janitor
	ids     *utils.UUIDGenerator
	tempTTL time.Duration
	logger  *logger.Logger
}

// NewFileService constructs a FileService. The janitor removes decrypted
// temporary copies after cfg.TempTTL.
func NewFileService(files store.FileRepository, keys crypto.KeyStore, texts crypto.TextCipher, cipher crypto.FileCipher, janitor *workers.Janitor, cfg config.Files, logger *logger.Logger) FileService {
	return &fileService{
		files:   files,
		keys:    keys,
		texts:   texts,
		cipher:  cipher,
		janitor: janitor,
		ids:     utils.NewUUIDGenerator(),
		tempTTL: cfg.TempTTL,
		logger:  logger,
	}
}

// Upload encrypts the plaintext file at req.Path in place next to the
// original, registers the record, and deletes the plaintext original.
//
// The encrypted sibling is req.Path + ".enc"; a source already carrying the
// suffix is rejected. The display title (req.Title, defaulting to the base
// name) is encrypted inside the metadata document; name, size and mime type
// are stored in clear.
func (f *fileService) Upload(ctx context.Context, userID int64, req models.UploadFileRequest) (models.FileRecord, error) {
	log := logger.FromContext(ctx)

	if req.Path == "" {
		return models.FileRecord{}, ErrInvalidDataProvided
	}
	if strings.HasSuffix(req.Path, encryptedSuffix) {
		return models.FileRecord{}, fmt.Errorf("%w: source path carries the reserved %q suffix", ErrInvalidDataProvided, encryptedSuffix)
	}
	if !req.Kind.Valid() {
		return models.FileRecord{}, fmt.Errorf("%w: %q", ErrInvalidFileKind, req.Kind)
	}

	key, err := sessionKey(f.keys, userID)
	if err != nil {
		return models.FileRecord{}, err
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		log.Err(err).Str("path", req.Path).Msg("upload source is not readable")
		return models.FileRecord{}, fmt.Errorf("upload source is not readable: %w", err)
	}

	encryptedPath := req.Path + encryptedSuffix
	if err = f.cipher.EncryptFile(ctx, req.Path, encryptedPath, key); err != nil {
		log.Err(err).Str("path", req.Path).Msg("file encryption failed")
		return models.FileRecord{}, fmt.Errorf("file encryption failed: %w", err)
	}

	name := filepath.Base(req.Path)

	title := req.Title
	if title == "" {
		title = name
	}
	encryptedTitle, err := f.texts.Encrypt(ctx, title, key)
	if err != nil {
		log.Err(err).Str("path", req.Path).Msg("title encryption failed")
		return models.FileRecord{}, fmt.Errorf("title encryption failed: %w", err)
	}

	record := models.FileRecord{
		ID:     f.ids.Generate(),
		UserID: userID,
		Name:   name,
		Path:   encryptedPath,
		Kind:   req.Kind,
		Metadata: models.FileMetadata{
			Title:    encryptedTitle,
			Size:     info.Size(),
			MimeType: mime.TypeByExtension(filepath.Ext(name)),
		},
	}

	saved, err := f.files.CreateFileRecord(ctx, record)
	if err != nil {
		log.Err(err).Str("path", req.Path).Msg("saving file record ended with error")
		return models.FileRecord{}, fmt.Errorf("saving file record ended with error: %w", err)
	}

	// the plaintext original must not outlive a successful upload
	if err = os.Remove(req.Path); err != nil {
		log.Warn().Err(err).Str("path", req.Path).Msg("plaintext original could not be removed")
	}

	saved.Metadata.Title = title

	return saved, nil
}

// List returns the file records of the user matching the filter, newest
// first, with display titles decrypted. A title that fails to decrypt is
// replaced by a placeholder; the record itself stays in the result.
func (f *fileService) List(ctx context.Context, userID int64, filter store.FileFilter) ([]models.FileRecord, error) {
	log := logger.FromContext(ctx)

	key, err := sessionKey(f.keys, userID)
	if err != nil {
		return nil, err
	}

	records, err := f.files.GetFileRecords(ctx, userID, filter)
	if err != nil {
		log.Err(err).Msg("listing file records ended with error")
		return nil, fmt.Errorf("listing file records ended with error: %w", err)
	}

	for i := range records {
		title, titleErr := f.texts.Decrypt(ctx, records[i].Metadata.Title, key)
		if titleErr != nil {
			log.Warn().
				Str("id", records[i].ID).
				Int64("user_id", userID).
				Msg("file title failed to decrypt, returning placeholder")
			records[i].Metadata.Title = entryPlaceholder
			continue
		}

		records[i].Metadata.Title = title
	}

	return records, nil
}

// Open decrypts the file body into a temporary plaintext copy and returns
// its path. The copy is scheduled for removal after the configured TTL;
// callers that need the content longer must copy it elsewhere.
func (f *fileService) Open(ctx context.Context, userID int64, recordID string) (string, error) {
	log := logger.FromContext(ctx)

	if recordID == "" {
		return "", ErrInvalidDataProvided
	}

	key, err := sessionKey(f.keys, userID)
	if err != nil {
		return "", err
	}

	record, err := f.files.GetFileRecord(ctx, recordID, userID)
	if err != nil {
		if errors.Is(err, store.ErrFileRecordNotFound) {
			return "", err
		}
		log.Err(err).Str("id", recordID).Msg("file record lookup ended with error")
		return "", fmt.Errorf("file record lookup ended with error: %w", err)
	}

	tempPath := filepath.Join(os.TempDir(), "anamneon-"+record.ID+filepath.Ext(record.Name))
	if err = f.cipher.DecryptFile(ctx, record.Path, tempPath, key); err != nil {
		log.Err(err).Str("id", recordID).Msg("file decryption failed")
		return "", fmt.Errorf("file decryption failed: %w", err)
	}

	f.janitor.Schedule(tempPath, f.tempTTL)
	log.Info().
		Str("id", recordID).
		Str("path", tempPath).
		Dur("ttl", f.tempTTL).
		Msg("decrypted temporary copy created")

	return tempPath, nil
}

// Delete removes the record and its encrypted body. A body already missing
// from disk is not an error; the record is gone either way.
func (f *fileService) Delete(ctx context.Context, userID int64, recordID string) error {
	log := logger.FromContext(ctx)

	if recordID == "" {
		return ErrInvalidDataProvided
	}

	record, err := f.files.GetFileRecord(ctx, recordID, userID)
	if err != nil {
		if errors.Is(err, store.ErrFileRecordNotFound) {
			return err
		}
		log.Err(err).Str("id", recordID).Msg("file record lookup ended with error")
		return fmt.Errorf("file record lookup ended with error: %w", err)
	}

	if err = f.files.DeleteFileRecord(ctx, recordID, userID); err != nil {
		log.Err(err).Str("id", recordID).Msg("deleting file record ended with error")
		return fmt.Errorf("deleting file record ended with error: %w", err)
	}

	if err = os.Remove(record.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("path", record.Path).Msg("encrypted body could not be removed")
	}

	log.Info().Str("id", recordID).Int64("user_id", userID).Msg("file record deleted")

	return nil
}
