// Package syscalls implements the application-side syscall exchange: the
// per-kind request constructors and the single invoke() round trip that
// drives the wire codec, the ALLOW sub-protocol, and callback dispatch.
package syscalls

import (
	"time"

	"github.com/rs/xid"

	"github.com/tockemu/tockemu/pkg/appconfig"
	"github.com/tockemu/tockemu/pkg/appfatal"
	"github.com/tockemu/tockemu/pkg/wire"
)

// Invoke performs the full exchange for req and returns the signed-word
// result the facade hands back to the caller:
//
//	SEND_REQ -> [SEND_ALLOW if ALLOW] -> WAIT_RETURN -> RECV_ALLOWS -> [DISPATCH_CB | RETURN_VAL]
//
// There is no in-flight state retained between calls beyond cfg itself
// and its allow_set.
func Invoke(cfg *appconfig.Config, req *wire.Syscall) int64 {
	tag := xid.New().String()
	start := time.Now()

	cfg.Log.Debugf("syscalls[%s]: invoke %s id=%d args=%v", tag, req.SyscallNumber, req.Identifier, req.Args)

	tx, rx := cfg.Tx, cfg.Rx
	if tx == nil || rx == nil {
		appfatal.Abort(cfg.Log, "syscalls[%s]: no configured endpoints", tag)
		return 0
	}

	wire.SendMsg[wire.Syscall](tx, tag, req)

	if req.SyscallNumber == wire.Allow {
		address, length := req.Args[2], req.Args[3]
		wire.SendAllow(tx, tag, address, length)
		cfg.MarkAllowed(address)
		if cfg.Metrics != nil {
			cfg.Metrics.ObserveAllowTx(int(length))
		}
	}

	kr := wire.RecvMsg[wire.KernelReturn](rx, tag)

	rxBytes := wire.RecvAllows(rx, tag)
	if cfg.Metrics != nil {
		cfg.Metrics.ObserveAllowRx(rxBytes)
	}

	var ret int64
	if kr.Cb.PC != 0 {
		fn, ok := lookupCallback(kr.Cb.PC)
		if !ok {
			appfatal.Abort(cfg.Log, "syscalls[%s]: kernel returned unknown callback handle %d", tag, kr.Cb.PC)
			return 0
		}
		cfg.Log.Debugf("syscalls[%s]: dispatching callback handle=%d args=%v", tag, kr.Cb.PC, kr.Cb.Args)
		fn(kr.Cb.Args[0], kr.Cb.Args[1], kr.Cb.Args[2], kr.Cb.Args[3])
		ret = 0
	} else {
		ret = kr.RetVal
	}

	if cfg.Metrics != nil {
		cfg.Metrics.ObserveInvoke(req.SyscallNumber, time.Since(start))
	}
	cfg.Log.Debugf("syscalls[%s]: invoke %s -> %d", tag, req.SyscallNumber, ret)
	return ret
}
