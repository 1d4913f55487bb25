package main

import (
	"fmt"
	"os"
	"time"

	"cadr/internal/dataset"
	"cadr/internal/service"

	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	var (
		p          service.ChamberParams
		step       time.Duration
		maxSamples int
		output     string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Write a synthetic chamber decay recording as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ts, err := service.Simulate(p, step, maxSamples)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return dataset.WriteCSV(cmd.OutOrStdout(), ts)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := dataset.WriteCSV(f, ts); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&p.Profile, "profile", "", "sensor profile (default sps30)")
	cmd.Flags().Float64Var(&p.ACH, "ach", 0, "decay rate in 1/h (default 4)")
	cmd.Flags().Float64Var(&p.Peak, "peak", 0, "peak concentration (default 800)")
	cmd.Flags().Float64Var(&p.Background, "background", 0, "background concentration")
	cmd.Flags().Float64Var(&p.Noise, "noise", 0, "relative noise (default 0.02)")
	cmd.Flags().IntVar(&p.RampSamples, "ramp", 0, "injection ramp length in samples (default 5)")
	cmd.Flags().Uint64Var(&p.Seed, "seed", 1, "noise seed")
	cmd.Flags().DurationVar(&step, "step", 10*time.Second, "time between samples")
	cmd.Flags().IntVar(&maxSamples, "max-samples", 2000, "stop after this many samples")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
