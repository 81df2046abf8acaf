package cryptounwrap

import (
	"crypto/aes"
	"crypto/cipher"
)

// Unwrap decrypts ciphertext, the raw_data of one DataMessageStanza,
// using the receiver's Keys and the sender's ephemeral P-256 public
// key and salt recovered from that same message's crypto-key/
// encryption app_data headers (see ParseCryptoKeyHeader,
// ParseEncryptionHeader). Pure function: same inputs always yield the
// same output, per spec §8 invariant 5.
func Unwrap(keys Keys, serverPub, salt, ciphertext []byte) ([]byte, error) {
	if len(salt) != saltLen {
		return nil, ErrMalformedHeader
	}

	cek, nonce, err := deriveContentKeys(keys, serverPub, salt)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(cek)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.Overhead() {
		return nil, ErrAuthTag
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthTag
	}
	return unpad(plaintext)
}
