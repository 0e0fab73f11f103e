package rdt

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Protocol selects which transport personality drives entity A and B.
type Protocol string

const (
	ProtocolABP Protocol = "abp"
	ProtocolGBN Protocol = "gbn"
)

// SimulationOptions mirrors the CLI surface described in spec §6.
type SimulationOptions struct {
	// NumMsgs is the number of layer-5 messages to inject (-n).
	NumMsgs int
	// InterarrivalTime is the mean interarrival time; actual gaps are
	// uniform in [0, 2*InterarrivalTime] (-d).
	InterarrivalTime float64
	// SeqnumLimit is the modulus for sequence/ack numbers (-z).
	SeqnumLimit int
	// LossProb is the per-packet loss probability (-l).
	LossProb float64
	// CorruptProb is the per-packet corruption probability (-c).
	CorruptProb float64
	// RandomSeed is the PRNG seed. Nil means "derive one from wall clock".
	RandomSeed *int64
	// Trace is verbosity in [0, 3] (-v).
	Trace int
	// Protocol selects ABP or GBN.
	Protocol Protocol
}

// DefaultOptions returns the CLI's documented defaults.
func DefaultOptions() SimulationOptions {
	return SimulationOptions{
		NumMsgs:          10,
		InterarrivalTime: 100.0,
		SeqnumLimit:      16,
		LossProb:         0.0,
		CorruptProb:      0.0,
		RandomSeed:       nil,
		Trace:            0,
		Protocol:         ProtocolABP,
	}
}

// Validate collects every configuration problem at once, rather than
// failing on the first one, so a user correcting flags sees the whole
// picture in a single run.
func (o SimulationOptions) Validate() error {
	var result *multierror.Error

	if o.NumMsgs < 0 {
		result = multierror.Append(result, fmt.Errorf("num_msgs must be >= 0, got %d", o.NumMsgs))
	}
	if o.InterarrivalTime < 0 {
		result = multierror.Append(result, fmt.Errorf("interarrival_time must be >= 0, got %g", o.InterarrivalTime))
	}
	if o.SeqnumLimit < 1 {
		result = multierror.Append(result, fmt.Errorf("seqnum_limit must be >= 1, got %d", o.SeqnumLimit))
	}
	if o.LossProb < 0 || o.LossProb >= 1 {
		result = multierror.Append(result, fmt.Errorf("loss_prob must be in [0, 1), got %g", o.LossProb))
	}
	if o.CorruptProb < 0 || o.CorruptProb >= 1 {
		result = multierror.Append(result, fmt.Errorf("corrupt_prob must be in [0, 1), got %g", o.CorruptProb))
	}
	if o.Trace < 0 || o.Trace > 3 {
		result = multierror.Append(result, fmt.Errorf("trace must be in [0, 3], got %d", o.Trace))
	}
	if o.Protocol != ProtocolABP && o.Protocol != ProtocolGBN {
		result = multierror.Append(result, fmt.Errorf("protocol must be %q or %q, got %q", ProtocolABP, ProtocolGBN, o.Protocol))
	}

	return result.ErrorOrNil()
}
