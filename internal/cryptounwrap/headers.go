package cryptounwrap

import (
	"encoding/base64"
	"strings"
)

// ParseCryptoKeyHeader extracts the server's ephemeral P-256 public
// key from a Web Push "crypto-key" app_data header, e.g.
// "dh=BPpL...;p256ecdsa=...". Only the dh parameter matters here;
// unrecognized parameters (p256ecdsa, aesgcm128) are ignored.
func ParseCryptoKeyHeader(header string) ([]byte, error) {
	for _, part := range strings.Split(header, ";") {
		key, value, ok := splitParam(part)
		if ok && key == "dh" {
			return decodeB64URLNoPad(value)
		}
	}
	return nil, ErrMalformedHeader
}

// ParseEncryptionHeader extracts the 16-byte salt from a Web Push
// "encryption" app_data header, e.g. "salt=OVE...". Per spec.md §9
// Open Questions, when the header lists multiple comma-separated
// entries (one per recipient), only the first is used.
func ParseEncryptionHeader(header string) ([]byte, error) {
	first := header
	if i := strings.IndexByte(header, ','); i >= 0 {
		first = header[:i]
	}
	for _, part := range strings.Split(first, ";") {
		key, value, ok := splitParam(part)
		if !ok || key != "salt" {
			continue
		}
		salt, err := decodeB64URLNoPad(value)
		if err != nil {
			return nil, err
		}
		if len(salt) != saltLen {
			return nil, ErrMalformedHeader
		}
		return salt, nil
	}
	return nil, ErrMalformedHeader
}

func splitParam(s string) (key, value string, ok bool) {
	s = strings.TrimSpace(s)
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
}

func decodeB64URLNoPad(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrMalformedHeader
	}
	return b, nil
}
