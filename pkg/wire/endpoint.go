package wire

import (
	"net"

	"github.com/higebu/netfd"

	"github.com/tockemu/tockemu/pkg/applog"
)

// Endpoint is one end of the datagram wire. The strict-length send/recv
// semantics are built on the *net.UnixConn's own ReadMsgUnix/WriteMsgUnix
// (codec.go) so blocking I/O goes through the runtime network poller
// rather than around it; fd is kept purely for log correlation, the same
// bookkeeping-only role pkg/exporter/exporter.go uses netfd for (a
// connEntry keyed by descriptor number, never read from or written to
// directly).
type Endpoint struct {
	conn *net.UnixConn
	fd   int
	log  applog.Sink
}

// NewEndpoint wraps an already bound-or-connected *net.UnixConn. log may
// be nil, in which case diagnostic output is discarded.
func NewEndpoint(conn *net.UnixConn, log applog.Sink) *Endpoint {
	if log == nil {
		log = applog.Discard
	}
	e := &Endpoint{
		conn: conn,
		fd:   netfd.GetFdFromConn(conn),
		log:  log,
	}
	e.log.Debugf("wire: endpoint fd=%d local=%s", e.fd, conn.LocalAddr())
	return e
}

// Close releases the underlying socket.
func (e *Endpoint) Close() error {
	return e.conn.Close()
}

// Addr reports the local address the endpoint is bound to, for diagnostics.
func (e *Endpoint) Addr() net.Addr {
	return e.conn.LocalAddr()
}
