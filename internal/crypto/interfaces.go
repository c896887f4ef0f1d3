package crypto

import "context"

// The crypto package knows nothing about the network, the database, or
// users. Its job is to turn the password cached for a session into keys and
// to move data between plaintext and the two self-describing ciphertext
// formats of the archive:
//
//	text blob:  hex(salt) ":" hex(iv) ":" hex(tag) ":" hex(ciphertext)
//	file body:  salt(64) ‖ iv(16) ‖ ciphertext ‖ tag(16)
//
// Every blob and file carries its own fresh salt, so each one is
// independently decryptable given only the password.

// KeyStore caches per-session key material for authenticated users.
//
// The stored material is the verified login password: the ciphers re-derive
// a fresh subkey from it plus a per-blob salt on every operation. Holding
// the raw password in process memory for the session lifetime is a
// deliberate trade-off: deriving once per field would be prohibitively
// expensive, and the blobs must stay decryptable standalone.
//
// Implementations must be safe for concurrent use. At most one entry exists
// per user; a second login overwrites the first.
type KeyStore interface {
	// Set stores or overwrites the session key material for a user.
	Set(userID int64, material []byte)

	// Get returns the cached material and true, or nil and false when the
	// user has no active session.
	Get(userID int64) ([]byte, bool)

	// Clear removes the entry for one user. Clearing an absent entry is a
	// no-op.
	Clear(userID int64)

	// ClearAll removes every entry. Called at application shutdown.
	ClearAll()
}

// Deriver produces key bytes from a password and salt. The production
// implementation offloads the CPU-bound PBKDF2 computation to a bounded
// worker pool so a slow login cannot stall unrelated requests; tests use
// the synchronous SyncDeriver.
type Deriver interface {
	// Derive returns keyLen bytes derived from password and salt.
	// It honors ctx cancellation while waiting for a worker.
	Derive(ctx context.Context, password, salt []byte, keyLen int) ([]byte, error)
}

// PasswordHasher provides one-way storage and verification of login
// passwords. A stored hash can never double as encryption key material:
// it is one-way by construction and cannot decrypt anything.
type PasswordHasher interface {
	// Hash returns "hex(salt):hex(derived)" for the given password with a
	// fresh random salt. Two calls produce different strings.
	Hash(ctx context.Context, password string) (string, error)

	// Verify recomputes the hash with the salt embedded in stored and
	// compares in constant time. A malformed stored value verifies false
	// without error; the returned error reports derivation failures only
	// (e.g. cancelled context).
	Verify(ctx context.Context, password, stored string) (bool, error)
}

// TextCipher encrypts and decrypts short strings (titles, contents,
// metadata fields) as self-describing hex blobs.
type TextCipher interface {
	// Encrypt produces a "salt:iv:tag:ciphertext" blob for plaintext.
	// Fresh salt and IV every call: encrypting the same plaintext twice
	// never yields the same blob.
	Encrypt(ctx context.Context, plaintext string, password []byte) (string, error)

	// Decrypt reverses Encrypt. It fails with ErrMalformedBlob when the
	// blob does not split into exactly four hex fields, and with
	// ErrAuthenticationFailed when the tag does not verify, whether wrong
	// password and tampered ciphertext are indistinguishable by design.
	Decrypt(ctx context.Context, blob string, password []byte) (string, error)
}

// FileCipher encrypts and decrypts arbitrarily large files in a single
// streaming pass with bounded memory.
type FileCipher interface {
	// EncryptFile streams sourcePath into destPath as
	// salt ‖ iv ‖ ciphertext ‖ tag. The destination appears atomically:
	// it is written to a temporary sibling and renamed on success.
	// Deleting the plaintext source is the caller's responsibility.
	EncryptFile(ctx context.Context, sourcePath, destPath string, password []byte) error

	// DecryptFile reverses EncryptFile. Files shorter than the minimum
	// header+tag size fail with ErrMalformedFile before any output exists;
	// a tag mismatch fails with ErrAuthenticationFailed and leaves no
	// partial plaintext behind: either the complete file exists at
	// destPath or nothing does.
	DecryptFile(ctx context.Context, sourcePath, destPath string, password []byte) error
}
