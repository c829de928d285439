// Package hostinfo detects the host kernel version for diagnostic logging.
//
// None of the wire protocol in pkg/wire varies by kernel version - the
// packed records are fixed-layout per spec. This package exists purely so
// that pkg/appconfig can log what it's running on at setup time, the way
// pkg/linux/init.go does before deciding which tcp_info struct size to use.
// We only need the detection half of that pattern, not the size-selection
// half, since there's no kernel-version-dependent layout here.
package hostinfo

import (
	"fmt"

	"github.com/docker/docker/pkg/parsers/kernel"
)

// Version returns a short human-readable kernel version string, or an
// error if it could not be determined (e.g. non-Unix host).
func Version() (string, error) {
	v, err := kernel.GetKernelVersion()
	if err != nil {
		return "", fmt.Errorf("hostinfo: %w", err)
	}
	return v.String(), nil
}
