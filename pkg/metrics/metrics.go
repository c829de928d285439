// Package metrics exposes a Prometheus collector for the syscall
// transport: one invocation counter per syscall kind, ALLOW byte totals
// in both directions, and an invoke-latency histogram.
//
// The Describe/Collect split below follows
// pkg/exporter/exporter.go's TCPInfoCollector: a small fixed set of
// *prometheus.Desc values described once, with the actual samples
// produced from live counters on every scrape rather than cached.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tockemu/tockemu/pkg/wire"
)

// SyscallCollector implements prometheus.Collector for one emulated
// application process.
type SyscallCollector struct {
	mu sync.Mutex

	invokes      map[wire.SyscallNumber]uint64
	allowTxBytes uint64
	allowRxBytes uint64

	invokeDesc  *prometheus.Desc
	allowTxDesc *prometheus.Desc
	allowRxDesc *prometheus.Desc
	latency     prometheus.Histogram

	identifier string
}

// NewSyscallCollector returns a collector labeled with the owning
// process's configured identifier, for disambiguation when several
// emulated apps are scraped via the same exporter.
func NewSyscallCollector(identifier string) *SyscallCollector {
	constLabels := prometheus.Labels{"app_id": identifier}
	return &SyscallCollector{
		invokes:    make(map[wire.SyscallNumber]uint64),
		identifier: identifier,
		invokeDesc: prometheus.NewDesc(
			"tockemu_syscall_invokes_total",
			"Number of syscall invocations, by syscall number.",
			[]string{"syscall"}, constLabels,
		),
		allowTxDesc: prometheus.NewDesc(
			"tockemu_allow_bytes_sent_total",
			"Total bytes shipped to the kernel via the ALLOW request-side sub-protocol.",
			nil, constLabels,
		),
		allowRxDesc: prometheus.NewDesc(
			"tockemu_allow_bytes_received_total",
			"Total bytes written back into application memory via the ALLOW response-side sub-protocol.",
			nil, constLabels,
		),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "tockemu_invoke_latency_seconds",
			Help:        "Observed latency of a full invoke() round trip.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}),
	}
}

// Describe implements prometheus.Collector.
func (c *SyscallCollector) Describe(descs chan<- *prometheus.Desc) {
	descs <- c.invokeDesc
	descs <- c.allowTxDesc
	descs <- c.allowRxDesc
	c.latency.Describe(descs)
}

// Collect implements prometheus.Collector. The histogram collects itself
// once per scrape regardless of how many samples it has accumulated; it
// is not re-derived from a per-sample slice the way the counters above
// are, since Prometheus rejects multiple metrics sharing a desc and an
// (empty, here) label set.
func (c *SyscallCollector) Collect(metrics chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for num, n := range c.invokes {
		metrics <- prometheus.MustNewConstMetric(c.invokeDesc, prometheus.CounterValue, float64(n), num.String())
	}
	metrics <- prometheus.MustNewConstMetric(c.allowTxDesc, prometheus.CounterValue, float64(c.allowTxBytes))
	metrics <- prometheus.MustNewConstMetric(c.allowRxDesc, prometheus.CounterValue, float64(c.allowRxBytes))
	c.latency.Collect(metrics)
}

// ObserveInvoke records one completed invoke() of the given syscall kind
// that took d to complete.
func (c *SyscallCollector) ObserveInvoke(num wire.SyscallNumber, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invokes[num]++
	c.latency.Observe(d.Seconds())
}

// ObserveAllowTx adds n bytes to the request-side ALLOW byte total.
func (c *SyscallCollector) ObserveAllowTx(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.allowTxBytes += uint64(n)
}

// ObserveAllowRx adds n bytes to the response-side ALLOW byte total.
func (c *SyscallCollector) ObserveAllowRx(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.allowRxBytes += uint64(n)
}
