package crypto

import (
	"context"
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

// Key derivation parameters shared by the hasher and both ciphers.
const (
	// Iterations is the PBKDF2 iteration count. 100k keeps brute-forcing a
	// stolen store expensive while a single interactive login stays under
	// a few hundred milliseconds on desktop hardware.
	Iterations = 100_000

	// CipherSaltLen is the salt length for encryption key derivation.
	CipherSaltLen = 64

	// CipherKeyLen is the AES-256 key length.
	CipherKeyLen = 32

	// IVLen is the cipher IV length.
	IVLen = 16

	// TagLen is the authentication tag length.
	TagLen = 16

	// HashSaltLen is the salt length for login password hashing.
	HashSaltLen = 16

	// HashKeyLen is the derived length for login password hashing.
	HashKeyLen = 64
)

// DeriveKey computes keyLen bytes of PBKDF2-SHA512 output. It is the single
// derivation primitive of the application; both the worker pool and
// SyncDeriver delegate here.
func DeriveKey(password, salt []byte, keyLen int) []byte {
	return pbkdf2.Key(password, salt, Iterations, keyLen, sha512.New)
}

// SyncDeriver is a [Deriver] that computes PBKDF2 on the calling goroutine.
// Suitable for tests and one-shot tools; the long-running process wires the
// workers pool instead so derivation cannot block the request path.
type SyncDeriver struct{}

// Derive implements [Deriver].
func (SyncDeriver) Derive(_ context.Context, password, salt []byte, keyLen int) ([]byte, error) {
	return DeriveKey(password, salt, keyLen), nil
}
