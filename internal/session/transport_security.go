package session

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
)

var (
	ErrTLSRootCAInvalid = errors.New("session: tls root ca bundle did not parse")
)

// BuildTLSConfig turns a TLSConfig into the *tls.Config used to dial
// the MTalk endpoint. InsecureSkipVerify is honored only so tests can
// point the dialer at a local fake server; production callers never
// set it.
func BuildTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsCfg := &tls.Config{
		ServerName:         cfg.ServerName,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		MinVersion:         tls.VersionTLS12,
	}
	if len(cfg.RootCAs) > 0 {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(cfg.RootCAs) {
			return nil, ErrTLSRootCAInvalid
		}
		tlsCfg.RootCAs = pool
	}
	return tlsCfg, nil
}
