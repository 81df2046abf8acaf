// Package cryptounwrap decrypts the payload of an FCM DataMessageStanza
// under RFC 8291 (Web Push message encryption, ECDH over P-256 plus
// HKDF-SHA256 key derivation) and RFC 8188 (the aes128gcm content
// encoding the derived key protects).
package cryptounwrap

import "errors"

var (
	// ErrMalformedHeader means the crypto-key or encryption app_data
	// header was missing its dh=/salt= parameter or failed to
	// base64url-decode, or the decoded salt was not 16 bytes.
	ErrMalformedHeader = errors.New("cryptounwrap: malformed crypto-key/encryption header")
	// ErrBadKey means the receiver's private scalar or the sender's
	// ephemeral public key was not a valid P-256 point, or auth_secret
	// was not 16 bytes.
	ErrBadKey = errors.New("cryptounwrap: invalid key material")
	// ErrAuthTag reports an AEAD open failure (a tampered ciphertext and
	// a wrong derived key both look the same from here), or a decrypted
	// record that lacks the RFC 8188 padding delimiter.
	ErrAuthTag = errors.New("cryptounwrap: authentication tag check failed")
)
