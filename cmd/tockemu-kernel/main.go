// Command tockemu-kernel is a minimal stand-in for the kernel-side peer
// of the wire protocol: an external collaborator whose only constraint is
// its observable wire behavior. This binary exists purely so tockemu-app
// has something to exchange real datagrams with, implementing one toy
// driver behavior per syscall kind.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/tockemu/tockemu/pkg/applog"
	"github.com/tockemu/tockemu/pkg/wire"
)

func main() {
	listenPath := flag.String("listen", "", "path to bind this test kernel's receive socket to")
	appRxPath := flag.String("app-rx", "", "path of the single app's receive socket to reply to")
	logLevelFlag := flag.String("log-level", "INFO", "NONE|ERROR|WARNING|INFO|DEBUG")
	flag.Parse()

	if *listenPath == "" || *appRxPath == "" {
		fmt.Fprintln(os.Stderr, "tockemu-kernel: -listen and -app-rx are required")
		os.Exit(2)
	}

	level, err := applog.ParseLevel(*logLevelFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tockemu-kernel: %v\n", err)
		os.Exit(2)
	}
	log := applog.New(level)

	_ = os.Remove(*listenPath)
	rxConn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: *listenPath, Net: "unixgram"})
	if err != nil {
		log.Errorf("tockemu-kernel: bind %q: %v", *listenPath, err)
		os.Exit(1)
	}
	rx := wire.NewEndpoint(rxConn, log)

	var txConn *net.UnixConn
	for attempt := 0; attempt < 50; attempt++ {
		txConn, err = net.DialUnix("unixgram", nil, &net.UnixAddr{Name: *appRxPath, Net: "unixgram"})
		if err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if err != nil {
		log.Errorf("tockemu-kernel: connect app rx %q: %v", *appRxPath, err)
		os.Exit(1)
	}
	tx := wire.NewEndpoint(txConn, log)

	log.Infof("tockemu-kernel: listening on %s, replying to %s", *listenPath, *appRxPath)

	for {
		serveOne(log, rx, tx)
	}
}

// serveOne waits for one Syscall Request and replies according to a
// fixed, toy per-syscall policy: ALLOW reverses the bytes it's handed
// back (mirroring scenario S4), SUBSCRIBE always fires the registered
// callback with a fixed argument tuple (mirroring S5), everything else
// returns 0 with no callback. Every reply unconditionally includes the
// response-side ALLOW phase, even when it is empty.
func serveOne(log applog.Sink, rx, tx *wire.Endpoint) {
	const tag = "kernel"

	req := wire.RecvMsg[wire.Syscall](rx, tag)
	log.Infof("tockemu-kernel: recv %s id=%d args=%v", req.SyscallNumber, req.Identifier, req.Args)

	var slices []allowSlice
	if req.SyscallNumber == wire.Allow {
		info := wire.RecvMsg[wire.AllowsInfo](rx, tag)
		for i := uint64(0); i < info.NumberOfSlices; i++ {
			desc := wire.RecvMsg[wire.AllowSliceInfo](rx, tag)
			data := rx.RecvN(tag, int(desc.Length))
			reversed := make([]byte, len(data))
			for j, b := range data {
				reversed[len(data)-1-j] = b
			}
			slices = append(slices, allowSlice{address: desc.Address, length: desc.Length, data: reversed})
		}
	}

	kr := wire.KernelReturn{RetVal: 0}
	if req.SyscallNumber == wire.Subscribe {
		kr.Cb = wire.Callback{PC: req.Args[2], Args: [4]uint64{1, 2, 3, req.Args[3]}}
	}

	wire.SendMsg[wire.KernelReturn](tx, tag, &kr)

	wire.SendMsg[wire.AllowsInfo](tx, tag, &wire.AllowsInfo{NumberOfSlices: uint64(len(slices))})
	for _, s := range slices {
		wire.SendMsg[wire.AllowSliceInfo](tx, tag, &wire.AllowSliceInfo{Address: s.address, Length: s.length})
		tx.SendRaw(tag, s.data)
	}
}

type allowSlice struct {
	address uint64
	length  uint64
	data    []byte
}
