package crypto

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// passwordHasher is the PBKDF2-SHA512 implementation of [PasswordHasher].
// Stored form: "hex(salt16):hex(key64)". The derivation runs through the
// injected [Deriver] so login verification shares the worker pool with the
// ciphers.
type passwordHasher struct {
	deriver Deriver
}

// NewPasswordHasher constructs a [PasswordHasher] backed by the given
// [Deriver].
func NewPasswordHasher(deriver Deriver) PasswordHasher {
	return &passwordHasher{deriver: deriver}
}

// Hash implements [PasswordHasher]. It reads a fresh 16-byte salt from the
// OS CSPRNG, so two hashes of the same password never match; both still
// verify.
func (h *passwordHasher) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, HashSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate hash salt: %w", err)
	}

	derived, err := h.deriver.Derive(ctx, []byte(password), salt, HashKeyLen)
	if err != nil {
		return "", fmt.Errorf("derive password hash: %w", err)
	}

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(derived), nil
}

// Verify implements [PasswordHasher]. The comparison uses
// [subtle.ConstantTimeCompare] so equality checking does not leak a length
// of the matching prefix.
func (h *passwordHasher) Verify(ctx context.Context, password, stored string) (bool, error) {
	parts := strings.Split(stored, ":")
	if len(parts) != 2 {
		return false, nil
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false, nil
	}
	want, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, nil
	}

	derived, err := h.deriver.Derive(ctx, []byte(password), salt, len(want))
	if err != nil {
		return false, fmt.Errorf("derive password hash: %w", err)
	}

	return subtle.ConstantTimeCompare(derived, want) == 1, nil
}
