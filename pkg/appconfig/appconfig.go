// Package appconfig holds the process-wide, write-once configuration a
// single emulated application process needs: its numeric identifier, its
// two datagram endpoints, its log severity, and the set of addresses it
// has outstanding ALLOW registrations for.
//
// It follows the same package-level single-assignment shape
// pkg/linux/init.go uses for its kernel-version globals, generalized from
// an implicit init() to an explicit write-once Set so a second call is a
// detectable, fatal contract violation rather than a silent overwrite.
package appconfig

import (
	"net"
	"os"
	"sync"

	"github.com/tockemu/tockemu/pkg/appfatal"
	"github.com/tockemu/tockemu/pkg/applog"
	"github.com/tockemu/tockemu/pkg/hostinfo"
	"github.com/tockemu/tockemu/pkg/metrics"
	"github.com/tockemu/tockemu/pkg/wire"
)

// Config is the singleton created exactly once per process.
type Config struct {
	Identifier uint64
	Rx         *wire.Endpoint
	Tx         *wire.Endpoint
	Log        applog.Sink
	LogLevel   applog.Level

	// Metrics is optional; nil disables per-invoke observation. It is set
	// once at startup, not protected by mu, matching the single-threaded
	// cooperative single-threaded model.
	Metrics *metrics.SyscallCollector

	mu       sync.Mutex
	allowSet map[uint64]struct{}
}

var (
	cfg *Config
	set bool
)

// Set binds rx to rxPath, connects tx to txPath, and installs the
// resulting Config as the process-wide singleton. txPath must already
// exist - the kernel must have bound its own receive endpoint first - and
// a second call to Set is fatal.
func Set(identifier uint64, rxPath, txPath string, level applog.Level) *Config {
	if set {
		appfatal.Abort(applog.Discard, "appconfig: Set called twice")
		return nil
	}
	set = true

	log := applog.New(level)

	if _, err := os.Stat(txPath); err != nil {
		appfatal.Abort(log, "appconfig: kernel socket %q does not exist - is the kernel running? (%v)", txPath, err)
		return nil
	}

	rxConn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: rxPath, Net: "unixgram"})
	if err != nil {
		appfatal.Abort(log, "appconfig: bind rx %q: %v", rxPath, err)
		return nil
	}

	txConn, err := net.DialUnix("unixgram", nil, &net.UnixAddr{Name: txPath, Net: "unixgram"})
	if err != nil {
		appfatal.Abort(log, "appconfig: connect tx %q: %v", txPath, err)
		return nil
	}

	if v, err := hostinfo.Version(); err == nil {
		log.Infof("appconfig: running on kernel %s", v)
	} else {
		log.Debugf("appconfig: kernel version unavailable: %v", err)
	}

	cfg = &Config{
		Identifier: identifier,
		Rx:         wire.NewEndpoint(rxConn, log),
		Tx:         wire.NewEndpoint(txConn, log),
		Log:        log,
		LogLevel:   level,
		allowSet:   make(map[uint64]struct{}),
	}
	log.Infof("appconfig: process %d configured: rx=%s tx=%s", identifier, rxPath, txPath)
	return cfg
}

// Get returns the singleton and whether it has been set.
func Get() (*Config, bool) {
	return cfg, set
}

// MustGet returns the singleton or aborts the process if Set has not
// been called yet.
func MustGet() *Config {
	c, ok := Get()
	if !ok {
		appfatal.Abort(applog.Discard, "appconfig: no configuration - Set was never called")
		return nil
	}
	return c
}

// MarkAllowed records address as having an outstanding ALLOW registration.
// This bookkeeping is advisory only: the wire transport never
// consults it.
func (c *Config) MarkAllowed(address uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.allowSet == nil {
		c.allowSet = make(map[uint64]struct{})
	}
	c.allowSet[address] = struct{}{}
}

// Allowed reports whether address was last recorded as ALLOW'd.
func (c *Config) Allowed(address uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.allowSet[address]
	return ok
}

// SetForTest installs c as the singleton without the write-once guard, so
// pkg/syscalls and pkg/facade tests can exercise invoke() against a
// *wire.Endpoint pair built directly over a connected socket pair instead
// of Set's filesystem-bound rx/tx paths. Production code never calls this.
func SetForTest(c *Config) {
	cfg = c
	set = c != nil
}
