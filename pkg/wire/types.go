package wire

// MsgType is the wire-level discriminant carried in the IPC header. It
// names the shape of the payload datagram that follows the header
// datagram, not the Go type directly - the mapping is fixed by the
// protocol, not by reflection.
type MsgType uint16

const (
	MsgSyscall        MsgType = 0
	MsgKernelReturn   MsgType = 1
	MsgAllowsInfo     MsgType = 2
	MsgAllowSliceInfo MsgType = 3
)

func (t MsgType) String() string {
	switch t {
	case MsgSyscall:
		return "SYSCALL"
	case MsgKernelReturn:
		return "KERNELRETURN"
	case MsgAllowsInfo:
		return "ALLOWSINFO"
	case MsgAllowSliceInfo:
		return "ALLOWSLICEINFO"
	default:
		return "UNKNOWN"
	}
}

// SyscallNumber enumerates the five emulated syscalls with their fixed
// wire ordinals.
type SyscallNumber uint64

const (
	Yield     SyscallNumber = 0
	Subscribe SyscallNumber = 1
	Command   SyscallNumber = 2
	Allow     SyscallNumber = 3
	Memop     SyscallNumber = 4
)

func (n SyscallNumber) String() string {
	switch n {
	case Yield:
		return "YIELD"
	case Subscribe:
		return "SUBSCRIBE"
	case Command:
		return "COMMAND"
	case Allow:
		return "ALLOW"
	case Memop:
		return "MEMOP"
	default:
		return "UNKNOWN"
	}
}

// payload is implemented by every packed record type so the generic
// send_msg/recv_msg helpers in codec.go can ask a value for its own wire
// size and type ordinal without a type switch.
type payload interface {
	wireType() MsgType
	wireSize() int
	marshal([]byte)
	unmarshal([]byte)
}

// Syscall is the Syscall Request record: { identifier, syscall_number,
// args[4] }, all machine words, zero padding.
type Syscall struct {
	Identifier    uint64
	SyscallNumber SyscallNumber
	Args          [4]uint64
}

func (*Syscall) wireType() MsgType { return MsgSyscall }
func (*Syscall) wireSize() int     { return wordBytes * 6 }

func (s *Syscall) marshal(b []byte) {
	putWord(b[0*wordBytes:], s.Identifier)
	putWord(b[1*wordBytes:], uint64(s.SyscallNumber))
	for i, a := range s.Args {
		putWord(b[(2+i)*wordBytes:], a)
	}
}

func (s *Syscall) unmarshal(b []byte) {
	s.Identifier = getWord(b[0*wordBytes:])
	s.SyscallNumber = SyscallNumber(getWord(b[1*wordBytes:]))
	for i := range s.Args {
		s.Args[i] = getWord(b[(2+i)*wordBytes:])
	}
}

// Callback is the Callback Descriptor record: { pc, args[4] }. pc == 0
// means "no callback pending".
type Callback struct {
	PC   uint64
	Args [4]uint64
}

func (c *Callback) wireSize() int { return wordBytes * 5 }

func (c *Callback) marshal(b []byte) {
	putWord(b[0*wordBytes:], c.PC)
	for i, a := range c.Args {
		putWord(b[(1+i)*wordBytes:], a)
	}
}

func (c *Callback) unmarshal(b []byte) {
	c.PC = getWord(b[0*wordBytes:])
	for i := range c.Args {
		c.Args[i] = getWord(b[(1+i)*wordBytes:])
	}
}

// KernelReturn is the response record to every Syscall Request: { ret_val
// (signed word), cb Callback }.
type KernelReturn struct {
	RetVal int64
	Cb     Callback
}

func (*KernelReturn) wireType() MsgType { return MsgKernelReturn }
func (*KernelReturn) wireSize() int     { return wordBytes + (&Callback{}).wireSize() }

func (k *KernelReturn) marshal(b []byte) {
	putSignedWord(b, k.RetVal)
	k.Cb.marshal(b[wordBytes:])
}

func (k *KernelReturn) unmarshal(b []byte) {
	k.RetVal = getSignedWord(b)
	k.Cb.unmarshal(b[wordBytes:])
}

// AllowsInfo precedes a burst of zero or more AllowSliceInfo descriptors.
type AllowsInfo struct {
	NumberOfSlices uint64
}

func (*AllowsInfo) wireType() MsgType { return MsgAllowsInfo }
func (*AllowsInfo) wireSize() int     { return wordBytes }

func (a *AllowsInfo) marshal(b []byte)   { putWord(b, a.NumberOfSlices) }
func (a *AllowsInfo) unmarshal(b []byte) { a.NumberOfSlices = getWord(b) }

// AllowSliceInfo describes a single shared-memory region by application
// address and byte length. The raw bytes of the region follow as a plain
// datagram with no header of their own.
type AllowSliceInfo struct {
	Address uint64
	Length  uint64
}

func (*AllowSliceInfo) wireType() MsgType { return MsgAllowSliceInfo }
func (*AllowSliceInfo) wireSize() int     { return wordBytes * 2 }

func (s *AllowSliceInfo) marshal(b []byte) {
	putWord(b[0*wordBytes:], s.Address)
	putWord(b[1*wordBytes:], s.Length)
}

func (s *AllowSliceInfo) unmarshal(b []byte) {
	s.Address = getWord(b[0*wordBytes:])
	s.Length = getWord(b[1*wordBytes:])
}
