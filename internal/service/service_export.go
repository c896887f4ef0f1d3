package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alexsky74/Anamneon/internal/crypto"
	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/internal/store"
	"github.com/alexsky74/Anamneon/models"
)

const (
	exportEntriesDir  = "entries"
	exportFilesDir    = "files"
	exportManifest    = "manifest.json"
	exportDirPerm     = 0o755
	exportFilePerm    = 0o600
	exportTimeLayout  = "2006-01-02"
	exportEntryFormat = "# %s\n\n%s\n"
)

// exportService is the concrete implementation of ExportService. It walks
// the whole archive of one user and materialises a plaintext directory
// tree: entries/ for diary entries, files/ for decrypted bodies, plus a
// manifest.json describing what was written and what was skipped.
type exportService struct {
	diary  store.DiaryRepository
	files  store.FileRepository
	keys   crypto.KeyStore
	texts  crypto.TextCipher
	cipher crypto.FileCipher
	logger *logger.Logger
}

// NewExportService constructs an ExportService over the given repositories
// and ciphers.
func NewExportService(diary store.DiaryRepository, files store.FileRepository, keys crypto.KeyStore, texts crypto.TextCipher, cipher crypto.FileCipher, logger *logger.Logger) ExportService {
	return &exportService{
		diary:  diary,
		files:  files,
		keys:   keys,
		texts:  texts,
		cipher: cipher,
		logger: logger,
	}
}

// ExportAll decrypts every diary entry and file body of the user into
// destDir and writes a manifest.json at its root.
//
// Per-item decryption failures are counted as skipped and do not abort the
// export; a partially corrupted archive still yields everything readable.
// Store and filesystem failures are fatal.
func (e *exportService) ExportAll(ctx context.Context, userID int64, destDir string) (models.ExportSummary, error) {
	log := logger.FromContext(ctx)

	if destDir == "" {
		return models.ExportSummary{}, ErrInvalidDataProvided
	}

	key, err := sessionKey(e.keys, userID)
	if err != nil {
		return models.ExportSummary{}, err
	}

	for _, dir := range []string{exportEntriesDir, exportFilesDir} {
		if err = os.MkdirAll(filepath.Join(destDir, dir), exportDirPerm); err != nil {
			return models.ExportSummary{}, fmt.Errorf("creating export directory ended with error: %w", err)
		}
	}

	manifest := models.ExportManifest{
		ExportedAt: time.Now(),
		Items:      make([]models.ExportItem, 0, 50),
	}

	if err = e.exportEntries(ctx, userID, destDir, key, &manifest); err != nil {
		return models.ExportSummary{}, err
	}
	if err = e.exportFiles(ctx, userID, destDir, key, &manifest); err != nil {
		return models.ExportSummary{}, err
	}

	manifestPath := filepath.Join(destDir, exportManifest)
	body, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return models.ExportSummary{}, fmt.Errorf("encoding manifest ended with error: %w", err)
	}
	if err = os.WriteFile(manifestPath, body, exportFilePerm); err != nil {
		return models.ExportSummary{}, fmt.Errorf("writing manifest ended with error: %w", err)
	}

	log.Info().
		Int64("user_id", userID).
		Int("exported", manifest.Exported).
		Int("skipped", manifest.Skipped).
		Str("dest", destDir).
		Msg("archive export finished")

	return models.ExportSummary{
		Exported:     manifest.Exported,
		Skipped:      manifest.Skipped,
		ManifestPath: manifestPath,
	}, nil
}

// exportEntries writes each decryptable diary entry as a markdown file
// under entries/.
func (e *exportService) exportEntries(ctx context.Context, userID int64, destDir string, key []byte, manifest *models.ExportManifest) error {
	log := logger.FromContext(ctx)

	entries, err := e.diary.GetEntries(ctx, userID, store.EntryFilter{})
	if err != nil {
		return fmt.Errorf("listing diary entries for export ended with error: %w", err)
	}

	for _, entry := range entries {
		title, titleErr := e.texts.Decrypt(ctx, entry.Title, key)
		content, contentErr := e.texts.Decrypt(ctx, entry.Content, key)
		if titleErr != nil || contentErr != nil {
			log.Warn().Str("id", entry.ID).Msg("diary entry failed to decrypt, skipping in export")
			manifest.Skipped++
			continue
		}

		relPath := filepath.Join(exportEntriesDir, entry.CreatedAt.Format(exportTimeLayout)+"_"+entry.ID+".md")
		body := []byte(fmt.Sprintf(exportEntryFormat, title, content))

		if err = os.WriteFile(filepath.Join(destDir, relPath), body, exportFilePerm); err != nil {
			return fmt.Errorf("writing exported entry ended with error: %w", err)
		}

		sum := sha256.Sum256(body)
		manifest.Exported++
		manifest.Items = append(manifest.Items, models.ExportItem{
			Kind:   models.ExportItemEntry,
			ID:     entry.ID,
			Path:   relPath,
			SHA256: hex.EncodeToString(sum[:]),
			Size:   int64(len(body)),
		})
	}

	return nil
}

// exportFiles decrypts each file body under files/. Exported names are
// prefixed with the record id so two records sharing an original name
// cannot collide.
func (e *exportService) exportFiles(ctx context.Context, userID int64, destDir string, key []byte, manifest *models.ExportManifest) error {
	log := logger.FromContext(ctx)

	records, err := e.files.GetFileRecords(ctx, userID, store.FileFilter{})
	if err != nil {
		return fmt.Errorf("listing file records for export ended with error: %w", err)
	}

	for _, record := range records {
		relPath := filepath.Join(exportFilesDir, record.ID+"_"+record.Name)
		outPath := filepath.Join(destDir, relPath)

		if err = e.cipher.DecryptFile(ctx, record.Path, outPath, key); err != nil {
			log.Warn().Err(err).Str("id", record.ID).Msg("file body failed to decrypt, skipping in export")
			manifest.Skipped++
			continue
		}

		sum, size, hashErr := hashFile(outPath)
		if hashErr != nil {
			return fmt.Errorf("hashing exported file ended with error: %w", hashErr)
		}

		manifest.Exported++
		manifest.Items = append(manifest.Items, models.ExportItem{
			Kind:   models.ExportItemFile,
			ID:     record.ID,
			Path:   relPath,
			SHA256: sum,
			Size:   size,
		})
	}

	return nil
}

func hashFile(path string) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer file.Close()

	hash := sha256.New()
	size, err := io.Copy(hash, file)
	if err != nil {
		return "", 0, err
	}

	return hex.EncodeToString(hash.Sum(nil)), size, nil
}
