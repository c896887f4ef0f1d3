package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// textCipher is the AES-256-GCM implementation of [TextCipher].
//
// Blob layout: hex(salt64) ":" hex(iv16) ":" hex(tag16) ":" hex(ciphertext).
// The 16-byte IV (instead of GCM's default 12) matches the archive's file
// framing, so both formats share one IV size.
type textCipher struct {
	deriver Deriver
}

// NewTextCipher constructs a [TextCipher] backed by the given [Deriver].
func NewTextCipher(deriver Deriver) TextCipher {
	return &textCipher{deriver: deriver}
}

// Encrypt implements [TextCipher].
func (c *textCipher) Encrypt(ctx context.Context, plaintext string, password []byte) (string, error) {
	salt := make([]byte, CipherSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key, err := c.deriver.Derive(ctx, password, salt, CipherKeyLen)
	if err != nil {
		return "", fmt.Errorf("derive text key: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, IVLen)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	// Seal appends the tag to the ciphertext; the blob format keeps them
	// in separate fields.
	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext, tag := sealed[:len(sealed)-TagLen], sealed[len(sealed)-TagLen:]

	return strings.Join([]string{
		hex.EncodeToString(salt),
		hex.EncodeToString(iv),
		hex.EncodeToString(tag),
		hex.EncodeToString(ciphertext),
	}, ":"), nil
}

// Decrypt implements [TextCipher]. The tag is verified before a single
// plaintext byte is released; on mismatch the only signal is
// [ErrAuthenticationFailed].
func (c *textCipher) Decrypt(ctx context.Context, blob string, password []byte) (string, error) {
	parts := strings.Split(blob, ":")
	if len(parts) != 4 {
		return "", ErrMalformedBlob
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", ErrMalformedBlob
	}
	iv, err := hex.DecodeString(parts[1])
	if err != nil || len(iv) != IVLen {
		return "", ErrMalformedBlob
	}
	tag, err := hex.DecodeString(parts[2])
	if err != nil || len(tag) != TagLen {
		return "", ErrMalformedBlob
	}
	ciphertext, err := hex.DecodeString(parts[3])
	if err != nil {
		return "", ErrMalformedBlob
	}

	key, err := c.deriver.Derive(ctx, password, salt, CipherKeyLen)
	if err != nil {
		return "", fmt.Errorf("derive text key: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", ErrAuthenticationFailed
	}

	return string(plaintext), nil
}

// newGCM builds an AES-256-GCM AEAD with the archive's 16-byte IV size.
func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, IVLen)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
