// Command tockemu-app is a minimal demo of an emulated application
// process: it configures itself from flags, exercises a handful of
// syscalls through the facade, and exits. Parsing process identity and
// socket paths from the command line is explicitly outside the core's
// contract - this is the external collaborator the core transport
// assumes exists.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tockemu/tockemu/pkg/appconfig"
	"github.com/tockemu/tockemu/pkg/applog"
	"github.com/tockemu/tockemu/pkg/facade"
	"github.com/tockemu/tockemu/pkg/metrics"
)

func main() {
	id := flag.Uint64("id", 0, "numeric application identifier")
	rxPath := flag.String("rx", "", "path to bind this app's receive socket to")
	txPath := flag.String("tx", "", "path of the kernel's receive socket")
	logLevelFlag := flag.String("log-level", "INFO", "NONE|ERROR|WARNING|INFO|DEBUG")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address")
	flag.Parse()

	if *rxPath == "" || *txPath == "" {
		fmt.Fprintln(os.Stderr, "tockemu-app: -rx and -tx are required")
		os.Exit(2)
	}

	level, err := applog.ParseLevel(*logLevelFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tockemu-app: %v\n", err)
		os.Exit(2)
	}

	cfg := appconfig.Set(*id, *rxPath, *txPath, level)

	if *metricsAddr != "" {
		collector := metrics.NewSyscallCollector(fmt.Sprintf("%d", *id))
		cfg.Metrics = collector
		prometheus.MustRegister(collector)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			cfg.Log.Errorf("tockemu-app: metrics server exited: %v", http.ListenAndServe(*metricsAddr, mux))
		}()
	}

	runDemo(cfg)
}

// runDemo calls Yieldk, Subscribe, Command and Allow once each, the way a real app's
// main loop would during startup negotiation with a driver.
func runDemo(cfg *appconfig.Config) {
	cfg.Log.Infof("tockemu-app: yielding once")
	facade.Yieldk()

	cfg.Log.Infof("tockemu-app: subscribing to driver 1/0")
	facade.Subscribe(1, 0, func(a0, a1, a2, a3 uint64) {
		cfg.Log.Infof("tockemu-app: callback fired with (%d,%d,%d,%d)", a0, a1, a2, a3)
	}, 0)

	ret := facade.Command(1, 0, 0, 0)
	cfg.Log.Infof("tockemu-app: command(1,0) -> %d", ret)

	buf := make([]byte, 16)
	for i := range buf {
		buf[i] = byte(i)
	}
	addr := uint64(uintptrOf(buf))
	ret = facade.Allow(1, 0, addr, uint64(len(buf)))
	cfg.Log.Infof("tockemu-app: allow(1,0) -> %d, buffer now %v", ret, buf)
}
