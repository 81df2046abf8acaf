package cryptounwrap

import (
	"crypto/ecdh"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

const authSecretLen = 16

// saltLen is the salt size RFC 8291/8188 fix at 16 bytes.
const saltLen = 16

// Keys is the receiver's half of the RFC 8291 key agreement: the
// ECDH P-256 key pair and shared auth_secret Register generated and
// handed to the application server out of band. PublicKey is
// optional; when empty it is recomputed from PrivateKey.
type Keys struct {
	PrivateKey []byte // raw ECDH P-256 scalar
	PublicKey  []byte // uncompressed P-256 point, 65 bytes
	AuthSecret []byte // 16 bytes
}

// deriveContentKeys runs RFC 8291 §3.3/3.4 followed by RFC 8188 §3.3:
// ECDH(receiver, sender) -> auth_secret-salted HKDF -> per-message
// HKDF(salt) -> CEK (16 bytes) and nonce (12 bytes).
func deriveContentKeys(keys Keys, senderPublicKey, salt []byte) (cek, nonce []byte, err error) {
	if len(keys.AuthSecret) != authSecretLen {
		return nil, nil, ErrBadKey
	}

	curve := ecdh.P256()
	receiverPriv, err := curve.NewPrivateKey(keys.PrivateKey)
	if err != nil {
		return nil, nil, ErrBadKey
	}
	senderPub, err := curve.NewPublicKey(senderPublicKey)
	if err != nil {
		return nil, nil, ErrBadKey
	}
	ecdhSecret, err := receiverPriv.ECDH(senderPub)
	if err != nil {
		return nil, nil, ErrBadKey
	}

	receiverPub := keys.PublicKey
	if len(receiverPub) == 0 {
		receiverPub = receiverPriv.PublicKey().Bytes()
	}
	return deriveFromSecret(ecdhSecret, keys.AuthSecret, receiverPub, senderPublicKey, salt)
}

// deriveFromSecret implements the HKDF chain of RFC 8291 §3.3/3.4 and
// RFC 8188 §3.3 given an already-computed ECDH secret: an
// auth_secret-salted extract keyed to the (receiver, sender) public
// key pair, then a per-message salt-keyed expand into a content
// encryption key and nonce. Split out from deriveContentKeys so tests
// can exercise the same derivation from the sender's side of the ECDH
// (where the "receiver" role is the fixed party and "sender" is the
// ephemeral one) without needing the receiver's private scalar.
func deriveFromSecret(ecdhSecret, authSecret, receiverPub, senderPub, salt []byte) (cek, nonce []byte, err error) {
	authInfo := make([]byte, 0, len("WebPush: info")+1+len(receiverPub)+len(senderPub))
	authInfo = append(authInfo, "WebPush: info"...)
	authInfo = append(authInfo, 0x00)
	authInfo = append(authInfo, receiverPub...)
	authInfo = append(authInfo, senderPub...)

	ikm := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ecdhSecret, authSecret, authInfo), ikm); err != nil {
		return nil, nil, err
	}

	cek = make([]byte, 16)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, salt, append([]byte("Content-Encoding: aes128gcm"), 0x00)), cek); err != nil {
		return nil, nil, err
	}
	nonce = make([]byte, 12)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, salt, append([]byte("Content-Encoding: nonce"), 0x00)), nonce); err != nil {
		return nil, nil, err
	}
	return cek, nonce, nil
}
