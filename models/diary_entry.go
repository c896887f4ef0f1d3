package models

import "time"

// EntryMode describes how a diary entry relates to the rest of the archive.
type EntryMode string

const (
	// EntryModeStandalone marks an entry that exists on its own.
	EntryModeStandalone EntryMode = "standalone"

	// EntryModeLinked marks an entry attached to a file record
	// (a caption for a photo, notes for a document, and so on).
	// LinkedItemID must reference an existing file record.
	EntryModeLinked EntryMode = "linked"
)

// Valid reports whether the mode is one of the known enumeration values.
func (m EntryMode) Valid() bool {
	return m == EntryModeStandalone || m == EntryModeLinked
}

// DiaryEntry represents a single diary record.
//
// Title and Content are ciphertext blobs at rest
// ("salt:iv:tag:ciphertext", hex-encoded). Only in-memory representations
// produced by the service layer after decryption hold plaintext; the
// persistence layer never sees it.
type DiaryEntry struct {
	// ID is the entry identifier (UUID), generated by the service layer.
	ID string `json:"id"`

	// UserID is the owning account identifier.
	UserID int64 `json:"-"`

	// Title is the entry title. Encrypted blob at rest, plaintext only
	// in decrypted in-memory copies.
	Title string `json:"title"`

	// Content is the entry body. Same encryption contract as Title.
	Content string `json:"content"`

	// Type is a free-form category label ("journal", "dream", ...).
	// Stored in clear; categories are not considered secret.
	Type string `json:"type"`

	// EntryMode is standalone or linked; see [EntryMode].
	EntryMode EntryMode `json:"entry_mode"`

	// LinkedItemID references the file record this entry is attached to.
	// Empty unless EntryMode is EntryModeLinked.
	LinkedItemID string `json:"linked_item_id,omitempty"`

	// CreatedAt is the timestamp when the entry was first persisted.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the DiaryEntry model.
func (e DiaryEntry) TableName() string {
	return "diary_entries"
}
