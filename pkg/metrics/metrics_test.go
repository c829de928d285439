package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tockemu/tockemu/pkg/wire"
)

func drain(c *SyscallCollector) []prometheus.Metric {
	ch := make(chan prometheus.Metric, 16)
	c.Collect(ch)
	close(ch)
	var got []prometheus.Metric
	for m := range ch {
		got = append(got, m)
	}
	return got
}

func TestDescribeEmitsFourDescs(t *testing.T) {
	c := NewSyscallCollector("1")
	ch := make(chan *prometheus.Desc, 16)
	c.Describe(ch)
	close(ch)

	var n int
	for range ch {
		n++
	}
	if n != 4 {
		t.Fatalf("Describe emitted %d descs, want 4", n)
	}
}

func TestObserveInvokeAppearsInCollect(t *testing.T) {
	c := NewSyscallCollector("1")
	c.ObserveInvoke(wire.Command, 10*time.Microsecond)
	c.ObserveInvoke(wire.Command, 20*time.Microsecond)
	c.ObserveInvoke(wire.Yield, 5*time.Microsecond)

	metrics := drain(c)
	if len(metrics) == 0 {
		t.Fatalf("Collect produced no metrics")
	}

	var sawCommandTwo bool
	for _, m := range metrics {
		var pb dto.Metric
		if err := m.Write(&pb); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if pb.Counter != nil && pb.Counter.GetValue() == 2 {
			sawCommandTwo = true
		}
	}
	if !sawCommandTwo {
		t.Fatalf("expected a counter metric with value 2 for COMMAND invokes")
	}
}

func TestObserveAllowBytes(t *testing.T) {
	c := NewSyscallCollector("1")
	c.ObserveAllowTx(16)
	c.ObserveAllowTx(4)
	c.ObserveAllowRx(20)

	if c.allowTxBytes != 20 {
		t.Fatalf("allowTxBytes = %d, want 20", c.allowTxBytes)
	}
	if c.allowRxBytes != 20 {
		t.Fatalf("allowRxBytes = %d, want 20", c.allowRxBytes)
	}
}
