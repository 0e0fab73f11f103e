package rdt

import (
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// Metrics aggregates the counters spec §3 requires plus a small amount of
// derived reporting detail (run identity, observed interarrival shape).
type Metrics struct {
	RunID uuid.UUID

	NToLayer3A int
	NToLayer3B int
	NLost      int
	NCorrupt   int
	NToLayer5A int
	NToLayer5B int

	// ArrivalGaps records the sampled interarrival gap (uniform in
	// [0, 2*interarrivalTime]) for every FromLayer5 event scheduled,
	// including the first. Used only for the report's observed-mean/stddev
	// line; it has no bearing on simulation behavior.
	ArrivalGaps []float64

	// DeliveredToB records, in delivery order, every payload B's toLayer5
	// received. Used by tests asserting testable property 2/3 (reliable,
	// in-order delivery); Print does not report it.
	DeliveredToB [][]byte
}

// NewMetrics creates a zero-valued Metrics with a fresh run identifier.
func NewMetrics() *Metrics {
	return &Metrics{RunID: uuid.New()}
}

// Print renders the configuration and summary report described in spec §6.
func (m *Metrics) Print(opts SimulationOptions) {
	fmt.Println("=== Reliable Transport Simulation ===")
	fmt.Printf("Run ID               : %s\n", m.RunID)
	fmt.Printf("Protocol             : %s\n", opts.Protocol)
	fmt.Printf("Messages requested   : %d\n", opts.NumMsgs)
	fmt.Printf("Seqnum limit         : %d\n", opts.SeqnumLimit)
	fmt.Printf("Loss probability     : %.4f\n", opts.LossProb)
	fmt.Printf("Corrupt probability  : %.4f\n", opts.CorruptProb)
	fmt.Println("--- Summary ---")
	fmt.Printf("nToLayer3A           : %d\n", m.NToLayer3A)
	fmt.Printf("nToLayer3B           : %d\n", m.NToLayer3B)
	fmt.Printf("nLost                : %d\n", m.NLost)
	fmt.Printf("nCorrupt             : %d\n", m.NCorrupt)
	fmt.Printf("nToLayer5A           : %d\n", m.NToLayer5A)
	fmt.Printf("nToLayer5B           : %d\n", m.NToLayer5B)

	if len(m.ArrivalGaps) > 1 {
		mean, stddev := stat.MeanStdDev(m.ArrivalGaps, nil)
		fmt.Printf("Observed interarrival: mean=%.2f stddev=%.2f (n=%d)\n", mean, stddev, len(m.ArrivalGaps))
	}
}
