// cmd/root.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/rdtsim/rdt"
)

var (
	numMsgs          int
	interarrivalTime float64
	seqnumLimit      int
	lossProb         float64
	corruptProb      float64
	seed             int64
	hasSeed          bool
	trace            int
	protocol         string
	scenario         string
)

var rootCmd = &cobra.Command{
	Use:   "rdtsim",
	Short: "Discrete-event simulator for reliable data transport protocols",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an ABP or GBN simulation over a lossy, corrupting medium",
	Run: func(cmd *cobra.Command, args []string) {
		opts := rdt.DefaultOptions()

		if scenario != "" {
			loaded, err := loadScenario(scenario)
			if err != nil {
				logrus.Fatalf("Invalid scenario: %v", err)
			}
			opts = loaded
		}

		if cmd.Flags().Changed("protocol") {
			opts.Protocol = rdt.Protocol(protocol)
		}
		if cmd.Flags().Changed("n") {
			opts.NumMsgs = numMsgs
		}
		if cmd.Flags().Changed("d") {
			opts.InterarrivalTime = interarrivalTime
		}
		if cmd.Flags().Changed("z") {
			opts.SeqnumLimit = seqnumLimit
		}
		if cmd.Flags().Changed("l") {
			opts.LossProb = lossProb
		}
		if cmd.Flags().Changed("c") {
			opts.CorruptProb = corruptProb
		}
		if cmd.Flags().Changed("v") {
			opts.Trace = trace
		}
		if hasSeed {
			opts.RandomSeed = &seed
		}

		level := [...]logrus.Level{logrus.WarnLevel, logrus.InfoLevel, logrus.DebugLevel, logrus.TraceLevel}[clamp(opts.Trace, 0, 3)]
		logrus.SetLevel(level)

		sim, err := rdt.NewSimulator(opts, nil, nil)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		metrics := sim.Run()
		metrics.Print(opts)
	},
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().IntVarP(&numMsgs, "n", "n", 10, "number of layer-5 messages to inject")
	runCmd.Flags().Float64VarP(&interarrivalTime, "d", "d", 100.0, "mean interarrival time (uniform in [0, 2d])")
	runCmd.Flags().IntVarP(&seqnumLimit, "z", "z", 16, "sequence/ack number modulus")
	runCmd.Flags().Float64VarP(&lossProb, "l", "l", 0.0, "per-packet loss probability")
	runCmd.Flags().Float64VarP(&corruptProb, "c", "c", 0.0, "per-packet corruption probability")
	runCmd.Flags().Int64VarP(&seed, "s", "s", 0, "PRNG seed (default: wall-clock derived)")
	runCmd.Flags().IntVarP(&trace, "v", "v", 0, "trace verbosity (0-3)")
	runCmd.Flags().StringVar(&protocol, "protocol", "abp", "protocol personality: abp or gbn")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "load a named preset from scenarios.yaml (s1-s4), overridable by other flags")

	runCmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasSeed = cmd.Flags().Changed("s")
	}

	rootCmd.AddCommand(runCmd)
}
