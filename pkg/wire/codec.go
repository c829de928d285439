package wire

import (
	"golang.org/x/sys/unix"

	"github.com/tockemu/tockemu/pkg/appfatal"
)

// payloadPtr constrains a generic parameter to "pointer to a type that
// implements payload", the idiomatic Go shape for send_msg<T>/recv_msg<T>
// without reflection: the pointer receiver is what carries marshal and
// unmarshal, but the type parameter itself names the payload's value type.
type payloadPtr[T any] interface {
	*T
	payload
}

// sendRaw transmits exactly one datagram carrying b and aborts the process
// on a short send; the protocol has no resync mechanism. This goes through
// WriteMsgUnix rather than a raw sendto(2) against e.fd: the descriptor
// behind a *net.UnixConn is owned by the runtime network poller and left
// in non-blocking mode, so only the conn's own blocking methods integrate
// with that poller correctly.
func (e *Endpoint) sendRaw(b []byte) {
	n, _, err := e.conn.WriteMsgUnix(b, nil, nil)
	if err != nil {
		appfatal.Abort(e.log, "wire: sendmsg: %v", err)
		return
	}
	if n != len(b) {
		appfatal.Abort(e.log, "wire: short send: wrote %d of %d bytes", n, len(b))
	}
}

// sendBytes logs at DEBUG and delegates to sendRaw.
func (e *Endpoint) sendBytes(tag string, b []byte) {
	e.log.Debugf("wire[%s]: send %d bytes", tag, len(b))
	e.sendRaw(b)
}

// SendRaw exposes the raw byte burst send for peers that assemble the
// ALLOW sub-protocol's datagrams manually rather than through
// SendAllow/RecvAllows - a test-kernel peer, for instance, which has no
// application memory of its own to read SendAllow's way.
func (e *Endpoint) SendRaw(tag string, b []byte) {
	e.sendBytes(tag, b)
}

// RecvN receives exactly n raw bytes not preceded by a header, for the
// same manually-assembled-protocol peers SendRaw serves.
func (e *Endpoint) RecvN(tag string, n int) []byte {
	buf := make([]byte, n)
	e.recvBytes(tag, buf)
	return buf
}

// recvRaw receives exactly len(buf) bytes into buf and aborts on any
// length mismatch, via ReadMsgUnix so the blocking wait happens through
// the *net.UnixConn's own runtime-poller integration (see sendRaw). The
// kernel sets MSG_TRUNC in the returned flags whenever the datagram was
// larger than buf, so an oversized datagram is caught the same way a
// short one is, rather than being silently truncated.
func (e *Endpoint) recvRaw(buf []byte) {
	n, _, flags, _, err := e.conn.ReadMsgUnix(buf, nil)
	if err != nil {
		appfatal.Abort(e.log, "wire: recvmsg: %v", err)
		return
	}
	if flags&unix.MSG_TRUNC != 0 {
		appfatal.Abort(e.log, "wire: datagram length mismatch: truncated, wanted %d bytes", len(buf))
		return
	}
	if n != len(buf) {
		appfatal.Abort(e.log, "wire: datagram length mismatch: got %d, want %d bytes", n, len(buf))
	}
}

// recvBytes is recvRaw's "receive into existing buffer" alias, kept as a
// distinct name matching sendBytes and logging at the same DEBUG level.
func (e *Endpoint) recvBytes(tag string, buf []byte) {
	e.recvRaw(buf)
	e.log.Debugf("wire[%s]: recv %d bytes", tag, len(buf))
}

// SendMsg computes the payload's declared size and wire type, sends the
// header as one datagram and the payload as a second. tag
// is an opaque string used only for DEBUG log correlation (e.g. the
// invoking call's correlation ID); it has no wire meaning.
func SendMsg[T any, PT payloadPtr[T]](e *Endpoint, tag string, msg PT) {
	size := msg.wireSize()
	typ := msg.wireType()

	e.log.Debugf("wire[%s]: send %s", tag, typ)

	h := newHeader(size, typ)
	e.sendBytes(tag, h.marshal())

	buf := make([]byte, size)
	msg.marshal(buf)
	e.sendBytes(tag, buf)
}

// RecvMsg receives exactly one header datagram, validates it against T's
// declared size and wire type plus the checksum relation, then receives
// exactly sizeof(T) bytes and decodes them. Any validation failure is
// fatal.
func RecvMsg[T any, PT payloadPtr[T]](e *Endpoint, tag string) T {
	var zero T
	var pt PT = &zero
	wantSize := pt.wireSize()
	wantType := pt.wireType()

	hb := make([]byte, headerSize)
	e.recvBytes(tag, hb)
	h := unmarshalHeader(hb)
	if err := h.validate(wantSize, wantType); err != nil {
		appfatal.Abort(e.log, "wire[%s]: %v", tag, err)
		return zero
	}

	buf := make([]byte, wantSize)
	e.recvBytes(tag, buf)
	pt.unmarshal(buf)

	e.log.Debugf("wire[%s]: recv %s", tag, wantType)
	return zero
}
