package syscalls

import "sync"

// CallbackFunc is the fixed signature the kernel's returned callback
// descriptor is invoked with.
type CallbackFunc func(a0, a1, a2, a3 uint64)

// Go has no mechanism to cast an arbitrary integer into a callable
// function value, so the raw function pointer a real kernel ABI would
// return across the FFI boundary is modeled here as a handle into a
// process-wide registry instead. Every subscribe() call allocates a fresh
// handle; a kernel return carrying that handle looks it up rather than
// reinterpreting it as code.
var (
	cbMu       sync.Mutex
	cbTable    = map[uint64]CallbackFunc{}
	nextHandle uint64 = 1
)

// RegisterCallback allocates a new handle bound to fn and returns it. The
// handle is what gets carried as the SUBSCRIBE request's cb_ptr argument
// and later echoed back inside a Kernel Return's Callback.PC.
func RegisterCallback(fn CallbackFunc) uint64 {
	cbMu.Lock()
	defer cbMu.Unlock()
	h := nextHandle
	nextHandle++
	cbTable[h] = fn
	return h
}

func lookupCallback(handle uint64) (CallbackFunc, bool) {
	cbMu.Lock()
	defer cbMu.Unlock()
	fn, ok := cbTable[handle]
	return fn, ok
}
