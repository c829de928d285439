// Command tockemu-metrics demonstrates the SyscallCollector wiring in
// isolation, the way cmd/exporter_example1 demonstrates TCPInfoCollector
// against a synthetic connection instead of a real one.
package main

import (
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tockemu/tockemu/pkg/metrics"
	"github.com/tockemu/tockemu/pkg/wire"
)

var syscallKinds = []wire.SyscallNumber{wire.Yield, wire.Subscribe, wire.Command, wire.Allow, wire.Memop}

// simulate feeds the collector a steady trickle of synthetic invokes so
// /metrics has something to show without a real app/kernel pair running.
func simulate(c *metrics.SyscallCollector) {
	for {
		kind := syscallKinds[rand.Intn(len(syscallKinds))]
		c.ObserveInvoke(kind, time.Duration(rand.Intn(500))*time.Microsecond)
		if kind == wire.Allow {
			n := rand.Intn(64)
			c.ObserveAllowTx(n)
			c.ObserveAllowRx(n)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func main() {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	collector := metrics.NewSyscallCollector(hostname)
	prometheus.MustRegister(collector)

	go simulate(collector)

	http.Handle("/metrics", promhttp.Handler())
	http.ListenAndServe(":18080", nil)
}
