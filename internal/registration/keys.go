package registration

import (
	"crypto/ecdh"
	"crypto/rand"
)

const authSecretLen = 16

// webPushKeyPair is the key material Register generates locally: the
// ECDH P-256 keypair an application server encrypts push payloads
// against, and the auth_secret RFC 8291 mixes into key derivation.
type webPushKeyPair struct {
	PrivateKey []byte
	PublicKey  []byte
	AuthSecret []byte
}

func generateWebPushKeyPair() (webPushKeyPair, error) {
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return webPushKeyPair{}, err
	}
	authSecret := make([]byte, authSecretLen)
	if _, err := rand.Read(authSecret); err != nil {
		return webPushKeyPair{}, err
	}
	return webPushKeyPair{
		PrivateKey: priv.Bytes(),
		PublicKey:  priv.PublicKey().Bytes(),
		AuthSecret: authSecret,
	}, nil
}
