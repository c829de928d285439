package syscalls

import (
	"github.com/tockemu/tockemu/pkg/appconfig"
	"github.com/tockemu/tockemu/pkg/wire"
)

// Each constructor stamps cfg's identifier and the fixed numeric selector
// for its syscall kind, placing up to four word-sized arguments. None
// validate their arguments; that is the facade's contract to not do either.

func NewYield(cfg *appconfig.Config) *wire.Syscall {
	return &wire.Syscall{Identifier: cfg.Identifier, SyscallNumber: wire.Yield}
}

func NewSubscribe(cfg *appconfig.Config, major, minor, cbHandle, userData uint64) *wire.Syscall {
	return &wire.Syscall{
		Identifier:    cfg.Identifier,
		SyscallNumber: wire.Subscribe,
		Args:          [4]uint64{major, minor, cbHandle, userData},
	}
}

func NewCommand(cfg *appconfig.Config, major, minor, arg1, arg2 uint64) *wire.Syscall {
	return &wire.Syscall{
		Identifier:    cfg.Identifier,
		SyscallNumber: wire.Command,
		Args:          [4]uint64{major, minor, arg1, arg2},
	}
}

// NewCommand1 is a convenience over NewCommand: both emit identical wire
// bytes when the fourth argument is zero.
func NewCommand1(cfg *appconfig.Config, major, minor, arg uint64) *wire.Syscall {
	return NewCommand(cfg, major, minor, arg, 0)
}

func NewAllow(cfg *appconfig.Config, major, minor, slicePtr, length uint64) *wire.Syscall {
	return &wire.Syscall{
		Identifier:    cfg.Identifier,
		SyscallNumber: wire.Allow,
		Args:          [4]uint64{major, minor, slicePtr, length},
	}
}

// NewMemop widens the 32-bit major selector to a full word.
func NewMemop(cfg *appconfig.Config, major uint32, arg1 uint64) *wire.Syscall {
	return &wire.Syscall{
		Identifier:    cfg.Identifier,
		SyscallNumber: wire.Memop,
		Args:          [4]uint64{uint64(major), arg1, 0, 0},
	}
}
