package wire

import (
	"net"
	"os"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/tockemu/tockemu/pkg/applog"
)

// endpointPair returns two *Endpoint backed by a connected
// AF_UNIX/SOCK_DGRAM socket pair, a loopback stand-in for the real
// app/kernel socket pair that avoids touching the
// filesystem.
func endpointPair(t *testing.T) (a, b *Endpoint) {
	t.Helper()

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_DGRAM, 0)
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}

	connA := toUnixConn(t, fds[0])
	connB := toUnixConn(t, fds[1])

	t.Cleanup(func() {
		_ = connA.Close()
		_ = connB.Close()
	})

	return NewEndpoint(connA, applog.Discard), NewEndpoint(connB, applog.Discard)
}

func toUnixConn(t *testing.T, fd int) *net.UnixConn {
	t.Helper()
	f := os.NewFile(uintptr(fd), "socketpair")
	conn, err := net.FileConn(f)
	if err != nil {
		t.Fatalf("FileConn: %v", err)
	}
	_ = f.Close()
	uc, ok := conn.(*net.UnixConn)
	if !ok {
		t.Fatalf("FileConn returned %T, want *net.UnixConn", conn)
	}
	return uc
}
