package models

import "time"

// FileKind is the tagged variant of stored file bodies. The historical
// split between "media" and "file" tables collapsed into this single
// enumeration; the schema migration folds legacy rows into it.
type FileKind string

const (
	FileKindPhoto    FileKind = "photo"
	FileKindVideo    FileKind = "video"
	FileKindAudio    FileKind = "audio"
	FileKindDocument FileKind = "document"
)

// Valid reports whether the kind is one of the known enumeration values.
func (k FileKind) Valid() bool {
	switch k {
	case FileKindPhoto, FileKindVideo, FileKindAudio, FileKindDocument:
		return true
	}
	return false
}

// FileMetadata is the per-record metadata document persisted as JSON.
//
// Title is an encrypted blob at rest: display titles are secret even though
// the filesystem-visible Name of the record is not.
type FileMetadata struct {
	// Title is the user-facing display title. Encrypted blob at rest.
	Title string `json:"title"`

	// Size is the size of the original plaintext file in bytes.
	Size int64 `json:"size"`

	// MimeType is the detected content type of the original file, if known.
	MimeType string `json:"mime_type,omitempty"`
}

// FileRecord represents one encrypted file body stored on disk plus its
// database row. Path points at the encrypted sibling file
// (salt ‖ iv ‖ ciphertext ‖ tag), named with the reserved ".enc" suffix so
// it can never be confused with a plaintext original.
type FileRecord struct {
	// ID is the record identifier (UUID), generated by the service layer.
	ID string `json:"id"`

	// UserID is the owning account identifier.
	UserID int64 `json:"-"`

	// Name is the original file name. Stored in clear: the name is already
	// visible on the filesystem and is not treated as secret.
	Name string `json:"name"`

	// Path is the location of the encrypted file body on disk.
	Path string `json:"path"`

	// Kind is the tagged variant of the stored body; see [FileKind].
	Kind FileKind `json:"kind"`

	// Metadata holds the encrypted display title and clear auxiliary fields.
	Metadata FileMetadata `json:"metadata"`

	// CreatedAt is the timestamp when the record was persisted.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the FileRecord model.
func (f FileRecord) TableName() string {
	return "file_records"
}
