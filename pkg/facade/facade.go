// Package facade exposes the six entry points matching the embedded
// kernel's syscall ABI: yieldk, subscribe, command, command1,
// allow, memop. Each is a thin forwarder with no argument validation -
// that contract is deliberate, matching the on-target syscalls it stands
// in for.
package facade

import (
	"github.com/tockemu/tockemu/pkg/appconfig"
	"github.com/tockemu/tockemu/pkg/syscalls"
)

// Yieldk sends a YIELD and blocks until the kernel returns. If the kernel
// delivers a callback, it runs before Yieldk returns 0; otherwise Yieldk
// returns the kernel's ret_val.
func Yieldk() int64 {
	cfg := appconfig.MustGet()
	return syscalls.Invoke(cfg, syscalls.NewYield(cfg))
}

// Subscribe registers cb to run when driver (major, minor) next fires,
// carrying userData through to the callback unchanged.
func Subscribe(major, minor uint64, cb syscalls.CallbackFunc, userData uint64) int64 {
	cfg := appconfig.MustGet()
	handle := syscalls.RegisterCallback(cb)
	return syscalls.Invoke(cfg, syscalls.NewSubscribe(cfg, major, minor, handle, userData))
}

// Command issues a two-argument command to driver major, sub-command minor.
func Command(major, minor, arg1, arg2 uint64) int64 {
	cfg := appconfig.MustGet()
	return syscalls.Invoke(cfg, syscalls.NewCommand(cfg, major, minor, arg1, arg2))
}

// Command1 is the single-argument convenience form of Command.
func Command1(major, minor, arg uint64) int64 {
	cfg := appconfig.MustGet()
	return syscalls.Invoke(cfg, syscalls.NewCommand1(cfg, major, minor, arg))
}

// Allow shares the memory region [slicePtr, slicePtr+length) with driver
// (major, minor). Its current contents are shipped to the kernel and any
// mutations the kernel reports are written back before Allow returns.
func Allow(major, minor, slicePtr, length uint64) int64 {
	cfg := appconfig.MustGet()
	return syscalls.Invoke(cfg, syscalls.NewAllow(cfg, major, minor, slicePtr, length))
}

// Memop issues a memory-layout operation identified by major with one
// argument.
func Memop(major uint32, arg1 uint64) int64 {
	cfg := appconfig.MustGet()
	return syscalls.Invoke(cfg, syscalls.NewMemop(cfg, major, arg1))
}
