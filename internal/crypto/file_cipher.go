package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
)

// fileCipher is the streaming implementation of [FileCipher].
//
// On-disk layout: salt(64) ‖ iv(16) ‖ ciphertext ‖ tag(16). The body is
// processed in fixed-size chunks so memory stays bounded regardless of the
// file size, and the tag is appended once the whole stream has been
// consumed.
//
// GCM cannot be streamed with the standard library, so the file path uses
// encrypt-then-MAC with the same layout and the same fail-closed semantics:
// AES-256-CTR for confidentiality and HMAC-SHA256 over iv ‖ ciphertext,
// truncated to 16 bytes, for integrity. PBKDF2 derives 64 bytes per file:
// the first half keys the cipher, the second half keys the MAC.
type fileCipher struct {
	deriver Deriver
}

// fileChunkSize is the streaming buffer size.
const fileChunkSize = 32 * 1024

// minEncryptedFileSize is the smallest possible output: empty plaintext
// still carries the full salt+iv+tag framing.
const minEncryptedFileSize = CipherSaltLen + IVLen + TagLen

// NewFileCipher constructs a [FileCipher] backed by the given [Deriver].
func NewFileCipher(deriver Deriver) FileCipher {
	return &fileCipher{deriver: deriver}
}

// EncryptFile implements [FileCipher]. Output is written to a hidden
// temporary sibling of destPath and renamed into place after the tag is
// flushed, so a crash mid-stream never leaves a half-written encrypted
// file under the final name.
func (c *fileCipher) EncryptFile(ctx context.Context, sourcePath, destPath string, password []byte) error {
	src, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer src.Close()

	salt := make([]byte, CipherSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	iv := make([]byte, IVLen)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return fmt.Errorf("generate iv: %w", err)
	}

	stream, mac, err := c.keystream(ctx, password, salt, iv)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".anamneon-enc-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath) // no-op after successful rename
	}()

	if _, err := tmp.Write(salt); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := tmp.Write(iv); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	buf := make([]byte, fileChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			stream.XORKeyStream(chunk, chunk)
			mac.Write(chunk)
			if _, err := tmp.Write(chunk); err != nil {
				return fmt.Errorf("write ciphertext: %w", err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("read source file: %w", readErr)
		}
	}

	// The tag is only known once the whole plaintext has been consumed.
	if _, err := tmp.Write(mac.Sum(nil)[:TagLen]); err != nil {
		return fmt.Errorf("write tag: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync encrypted file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close encrypted file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("publish encrypted file: %w", err)
	}

	return nil
}

// DecryptFile implements [FileCipher]. Plaintext is streamed into a hidden
// temporary sibling of destPath while the MAC accumulates over the
// ciphertext; the temp file is renamed to destPath only after the trailing
// tag verifies. On any failure the temp file is removed, so callers never
// observe partial plaintext.
func (c *fileCipher) DecryptFile(ctx context.Context, sourcePath, destPath string, password []byte) error {
	src, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("open encrypted file: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat encrypted file: %w", err)
	}
	if info.Size() < minEncryptedFileSize {
		return ErrMalformedFile
	}

	salt := make([]byte, CipherSaltLen)
	if _, err := io.ReadFull(src, salt); err != nil {
		return fmt.Errorf("read salt: %w", err)
	}
	iv := make([]byte, IVLen)
	if _, err := io.ReadFull(src, iv); err != nil {
		return fmt.Errorf("read iv: %w", err)
	}

	stream, mac, err := c.keystream(ctx, password, salt, iv)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".anamneon-dec-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	// Everything between the header and the trailing tag is ciphertext.
	remaining := info.Size() - minEncryptedFileSize
	buf := make([]byte, fileChunkSize)
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := int64(len(buf))
		if remaining < n {
			n = remaining
		}
		if _, err := io.ReadFull(src, buf[:n]); err != nil {
			return fmt.Errorf("read ciphertext: %w", err)
		}

		chunk := buf[:n]
		mac.Write(chunk)
		stream.XORKeyStream(chunk, chunk)
		if _, err := tmp.Write(chunk); err != nil {
			return fmt.Errorf("write plaintext: %w", err)
		}
		remaining -= n
	}

	tag := make([]byte, TagLen)
	if _, err := io.ReadFull(src, tag); err != nil {
		return fmt.Errorf("read tag: %w", err)
	}

	if !hmac.Equal(tag, mac.Sum(nil)[:TagLen]) {
		return ErrAuthenticationFailed
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync plaintext file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close plaintext file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("publish plaintext file: %w", err)
	}

	return nil
}

// keystream derives the per-file keys and returns the CTR stream plus the
// MAC primed with the IV, so the tag binds the IV to the ciphertext.
func (c *fileCipher) keystream(ctx context.Context, password, salt, iv []byte) (cipher.Stream, hash.Hash, error) {
	keys, err := c.deriver.Derive(ctx, password, salt, 2*CipherKeyLen)
	if err != nil {
		return nil, nil, fmt.Errorf("derive file keys: %w", err)
	}

	block, err := aes.NewCipher(keys[:CipherKeyLen])
	if err != nil {
		return nil, nil, fmt.Errorf("create cipher: %w", err)
	}

	mac := hmac.New(sha256.New, keys[CipherKeyLen:])
	mac.Write(iv)

	return cipher.NewCTR(block, iv), mac, nil
}
