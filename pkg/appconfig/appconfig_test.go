package appconfig

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/tockemu/tockemu/pkg/appfatal"
	"github.com/tockemu/tockemu/pkg/applog"
)

func newUnixgram(path string) (*net.UnixConn, error) {
	return net.ListenUnixgram("unixgram", &net.UnixAddr{Name: path, Net: "unixgram"})
}

func withFatalCapture(t *testing.T) {
	t.Helper()
	orig := appfatal.Exit
	appfatal.Exit = func(int) { panic(&appfatal.AbortError{Message: "aborted"}) }
	t.Cleanup(func() {
		appfatal.Exit = orig
		SetForTest(nil)
	})
}

func expectAbort(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected fatal abort, got none")
		}
	}()
	fn()
}

func TestSetBindsAndConnects(t *testing.T) {
	withFatalCapture(t)

	dir := t.TempDir()
	kernelPath := filepath.Join(dir, "kernel.sock")
	appPath := filepath.Join(dir, "app.sock")

	kernelConn, err := newUnixgram(kernelPath)
	if err != nil {
		t.Fatalf("bind kernel socket: %v", err)
	}
	defer kernelConn.Close()

	cfg := Set(7, appPath, kernelPath, applog.LevelDebug)
	if cfg == nil {
		t.Fatalf("Set returned nil")
	}
	if cfg.Identifier != 7 {
		t.Fatalf("Identifier = %d, want 7", cfg.Identifier)
	}
	if cfg.Rx == nil || cfg.Tx == nil {
		t.Fatalf("endpoints not populated")
	}

	got, ok := Get()
	if !ok || got != cfg {
		t.Fatalf("Get() = %v, %v, want %v, true", got, ok, cfg)
	}
}

func TestSetTwiceIsFatal(t *testing.T) {
	withFatalCapture(t)

	dir := t.TempDir()
	kernelPath := filepath.Join(dir, "kernel.sock")

	kernelConn, err := newUnixgram(kernelPath)
	if err != nil {
		t.Fatalf("bind kernel socket: %v", err)
	}
	defer kernelConn.Close()

	Set(1, filepath.Join(dir, "app1.sock"), kernelPath, applog.LevelNone)

	expectAbort(t, func() {
		Set(2, filepath.Join(dir, "app2.sock"), kernelPath, applog.LevelNone)
	})
}

func TestSetMissingKernelPathIsFatal(t *testing.T) {
	withFatalCapture(t)

	dir := t.TempDir()
	expectAbort(t, func() {
		Set(1, filepath.Join(dir, "app.sock"), filepath.Join(dir, "nonexistent.sock"), applog.LevelNone)
	})
}

func TestMustGetAbortsWhenUnset(t *testing.T) {
	withFatalCapture(t)
	expectAbort(t, func() {
		MustGet()
	})
}

func TestMarkAndCheckAllowed(t *testing.T) {
	c := &Config{allowSet: make(map[uint64]struct{})}
	if c.Allowed(0x100) {
		t.Fatalf("0x100 should not be allowed yet")
	}
	c.MarkAllowed(0x100)
	if !c.Allowed(0x100) {
		t.Fatalf("0x100 should be allowed")
	}
}
