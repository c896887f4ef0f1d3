package models

// Request and response bodies of the local HTTP API. The interactive
// surface (desktop shell, CLI) talks to the archive core exclusively
// through these shapes.

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest opens a session for an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login on success.
type AuthResponse struct {
	Token string  `json:"token"`
	User  Account `json:"user"`
}

// SaveEntryRequest creates or updates a diary entry. Title and Content are
// plaintext here; they travel only over the loopback connection and are
// encrypted before they reach the store.
type SaveEntryRequest struct {
	ID           string    `json:"id,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Type         string    `json:"type,omitempty"`
	EntryMode    EntryMode `json:"entry_mode,omitempty"`
	LinkedItemID string    `json:"linked_item_id,omitempty"`
}

// UploadFileRequest encrypts a file already present on local disk and
// registers it in the archive. Path must point at the plaintext original,
// which is deleted after successful encryption.
type UploadFileRequest struct {
	Path  string   `json:"path"`
	Kind  FileKind `json:"kind"`
	Title string   `json:"title,omitempty"`
}

// OpenFileResponse carries the temporary plaintext location of a decrypted
// file. The copy is deleted again after the configured delay.
type OpenFileResponse struct {
	Path string `json:"path"`
}

// ExportRequest bulk-decrypts the whole archive into a directory tree.
type ExportRequest struct {
	DestDir string `json:"dest_dir"`
}

// StoreFileRequest names a backup target or restore source for the
// persistent store file.
type StoreFileRequest struct {
	Path string `json:"path"`
}

// ErrorResponse is the uniform error body of the API. Authentication
// failures deliberately carry a generic message that does not reveal which
// credential field mismatched.
type ErrorResponse struct {
	Error string `json:"error"`
}
