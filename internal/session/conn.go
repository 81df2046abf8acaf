package session

import (
	"bufio"
	"net"

	"github.com/quietpush/fcmreceiver/internal/wire"
)

// frameConn wraps the raw socket with the version-byte-on-first-frame
// bookkeeping wire.ReadFrame/WriteFrame need, one direction each way
// since the client's first write and the server's first read are
// independent.
type frameConn struct {
	conn        net.Conn
	reader      *bufio.Reader
	wroteFirst  bool
	readFirst   bool
}

func newFrameConn(conn net.Conn) *frameConn {
	return &frameConn{conn: conn, reader: bufio.NewReader(conn)}
}

func (c *frameConn) writeFrame(f wire.Frame) error {
	isFirst := !c.wroteFirst
	if err := wire.WriteFrame(c.conn, isFirst, f); err != nil {
		return err
	}
	c.wroteFirst = true
	return nil
}

func (c *frameConn) readFrame() (wire.Frame, error) {
	isFirst := !c.readFirst
	f, err := wire.ReadFrame(c.reader, isFirst)
	if err != nil {
		return wire.Frame{}, err
	}
	c.readFirst = true
	return f, nil
}

func (c *frameConn) Close() error {
	return c.conn.Close()
}
