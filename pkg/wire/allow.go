package wire

import (
	"unsafe"
)

// memAt reconstructs a byte slice over a raw application address. This is
// only sound because, in this emulation, the ALLOW sub-protocol's "shared
// memory" is the emulated app's own process memory: the kernel across the
// socket never dereferences the address itself, it only echoes the address
// back alongside the bytes to write there. A real kernel process reaching
// into this address space would not be memory safe; that is not what
// happens here.
func memAt(address, length uint64) []byte {
	if length == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(address))), int(length))
}

// SendAllow runs the request-side ALLOW slice sub-protocol:
// it ships the current contents of the [address, address+length) region
// to the kernel, unconditionally announcing exactly one slice. It must be
// called strictly after the Syscall Request datagram and strictly before
// the caller waits for the Kernel Return.
func SendAllow(e *Endpoint, tag string, address, length uint64) {
	SendMsg[AllowsInfo](e, tag, &AllowsInfo{NumberOfSlices: 1})
	SendMsg[AllowSliceInfo](e, tag, &AllowSliceInfo{Address: address, Length: length})
	e.sendBytes(tag, memAt(address, length))
}

// RecvAllows runs the response-side ALLOW Slice Sub-Protocol
// unconditionally for every invocation: it receives a
// count of slices the kernel believes the app has outstanding, then for
// each one receives its descriptor and raw bytes and writes them back in
// place at the declared address. A length mismatch between the declared
// length and the datagram actually received is fatal.
// It returns the total number of slice bytes received, for callers that
// want to feed a metrics collector.
func RecvAllows(e *Endpoint, tag string) int {
	total := 0
	info := RecvMsg[AllowsInfo](e, tag)
	for i := uint64(0); i < info.NumberOfSlices; i++ {
		slice := RecvMsg[AllowSliceInfo](e, tag)
		buf := make([]byte, slice.Length)
		e.recvBytes(tag, buf)
		copy(memAt(slice.Address, slice.Length), buf)
		total += len(buf)
	}
	return total
}
