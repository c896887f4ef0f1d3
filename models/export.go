package models

import "time"

// ExportItemKind distinguishes manifest entries produced by a bulk export.
type ExportItemKind string

const (
	ExportItemEntry ExportItemKind = "entry"
	ExportItemFile  ExportItemKind = "file"
)

// ExportItem describes one successfully exported record in the manifest.
type ExportItem struct {
	// Kind tells whether the item came from the diary or the file library.
	Kind ExportItemKind `json:"kind"`

	// ID is the identifier of the source record.
	ID string `json:"id"`

	// Path is the location of the exported plaintext, relative to the
	// export root.
	Path string `json:"path"`

	// SHA256 is the hex-encoded content hash of the exported file.
	SHA256 string `json:"sha256"`

	// Size is the exported file size in bytes.
	Size int64 `json:"size"`
}

// ExportManifest is written as manifest.json at the root of every export
// tree. Per-item decryption failures are skipped, not fatal: Skipped counts
// them so a partially corrupted archive still exports everything readable.
type ExportManifest struct {
	ExportedAt time.Time    `json:"exported_at"`
	Exported   int          `json:"exported"`
	Skipped    int          `json:"skipped"`
	Items      []ExportItem `json:"items"`
}

// ExportSummary is the result reported back to the caller of a bulk export.
type ExportSummary struct {
	// Exported is the number of records written to the export tree.
	Exported int `json:"exported"`

	// Skipped is the number of records that failed to decrypt and were
	// left out of the tree.
	Skipped int `json:"skipped"`

	// ManifestPath is the absolute path of the written manifest.json.
	ManifestPath string `json:"manifest_path"`
}
