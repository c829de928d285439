// Package appfatal centralizes the "protocol violation is fatal" policy
// configuration errors, short sends/receives, and malformed
// frames all abort the process rather than returning a recoverable error.
//
// Exit is a package variable rather than a direct os.Exit call so tests can
// substitute a function that panics with *AbortError and recover it,
// verifying an abort path was taken without killing the test binary.
package appfatal

import (
	"fmt"
	"os"

	"github.com/tockemu/tockemu/pkg/applog"
)

// AbortError is the panic value used by the test-time replacement for Exit.
type AbortError struct {
	Message string
}

func (e *AbortError) Error() string { return e.Message }

// Exit terminates the process with the given status code. Production code
// never overrides this; tests do.
var Exit = os.Exit

// Abort logs msg at ERROR via log (if non-nil) and then calls Exit(1). It
// never returns in production; callers should still write a trailing
// `return` after calling it so the function compiles without a fallthrough
// value.
func Abort(log applog.Sink, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if log != nil {
		log.Errorf("%s", msg)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
	Exit(1)
}
