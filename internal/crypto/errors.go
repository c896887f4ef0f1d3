package crypto

import "errors"

// Sentinel errors returned by the ciphers and the password hasher. Callers
// should use [errors.Is] to match against these values.
var (
	// ErrAuthenticationFailed is returned when an authentication tag does
	// not verify. The cause (wrong password or tampered ciphertext) is
	// deliberately indistinguishable: this is the only signal the cipher
	// has.
	ErrAuthenticationFailed = errors.New("authentication failed: wrong password or corrupted data")

	// ErrMalformedBlob is returned when a text blob does not have the
	// expected "salt:iv:tag:ciphertext" shape or a field is not valid hex.
	ErrMalformedBlob = errors.New("malformed encrypted blob")

	// ErrMalformedFile is returned when an encrypted file is shorter than
	// the minimum salt+iv+tag framing and therefore cannot have been
	// produced by EncryptFile.
	ErrMalformedFile = errors.New("malformed encrypted file")
)
