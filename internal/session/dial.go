package session

import (
	"context"
	"crypto/tls"
	"net"
)

// MTalkAddress is the fixed MCS endpoint every FCM client dials.
const MTalkAddress = "mtalk.google.com:5228"

// Dial opens a TLS connection to addr within cfg.ConnectTimeout,
// completing the TLS handshake within cfg.HandshakeTimeout.
func Dial(ctx context.Context, addr string, cfg Config) (net.Conn, error) {
	dialer := net.Dialer{Timeout: cfg.ConnectTimeout}
	rawConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, ErrConnectTimeout
	}

	tlsCfg, err := BuildTLSConfig(cfg.TLS)
	if err != nil {
		_ = rawConn.Close()
		return nil, err
	}
	conn := tls.Client(rawConn, tlsCfg)

	handshakeCtx, cancel := context.WithTimeout(ctx, cfg.HandshakeTimeout)
	defer cancel()
	if err := conn.HandshakeContext(handshakeCtx); err != nil {
		_ = rawConn.Close()
		return nil, ErrConnectTimeout
	}
	return conn, nil
}
