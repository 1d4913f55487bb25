package main

import (
	"fmt"
	"strconv"

	"cadr/internal/dataset"
	"cadr/internal/decay"
	"cadr/internal/report"
	"cadr/internal/sensor"

	"github.com/spf13/cobra"
)

// analysisFlags are shared by fit and trials.
type analysisFlags struct {
	profile    string
	strategy   string
	channel    string
	lowerBound float64
	background float64
	format     string
	csvOut     bool
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.profile, "profile", "pms5003", "sensor profile: "+fmt.Sprint(sensor.Names()))
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "window strategy override: fixed_bound|exhaustive")
	cmd.Flags().StringVar(&f.channel, "channel", "", "channel override")
	cmd.Flags().Float64Var(&f.lowerBound, "lower-bound", 0, "lower bound override for the fitting window")
	cmd.Flags().Float64Var(&f.background, "background", 0, "background concentration subtracted before fitting")
	cmd.Flags().StringVar(&f.format, "format", report.FormatText, "output format: text|yaml|csv")
	cmd.Flags().BoolVar(&f.csvOut, "csvout", false, "shorthand for --format csv")
}

func (f *analysisFlags) outputFormat() string {
	if f.csvOut {
		return report.FormatCSV
	}
	return f.format
}

func (f *analysisFlags) selector() (sensor.Profile, decay.Selector, error) {
	profile, err := sensor.Lookup(f.profile)
	if err != nil {
		return sensor.Profile{}, nil, err
	}
	profile = profile.Apply(sensor.Overrides{
		Channel:    f.channel,
		Strategy:   f.strategy,
		LowerBound: f.lowerBound,
	})
	sel, err := profile.Selector()
	if err != nil {
		return sensor.Profile{}, nil, err
	}
	return profile, sel, nil
}

func readAll(paths []string) ([]decay.TimeSeries, error) {
	out := make([]decay.TimeSeries, len(paths))
	for i, p := range paths {
		ts, err := dataset.ReadFile(p)
		if err != nil {
			return nil, err
		}
		out[i] = ts
	}
	return out, nil
}

func nonNegative(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number, got %q", name, s)
	}
	return v, nil
}

func newFitCmd() *cobra.Command {
	var flags analysisFlags

	cmd := &cobra.Command{
		Use:   "fit <ACH_vd> <V_r> <csv>...",
		Short: "Fit decay recordings against a known deposition rate",
		Long: "Fits each recording's decay window and converts its ACH to CADR using the\n" +
			"natural deposition rate ACH_vd (1/h) and the room volume V_r.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			achVD, err := nonNegative("ACH_vd", args[0])
			if err != nil {
				return err
			}
			volume, err := nonNegative("V_r", args[1])
			if err != nil {
				return err
			}
			profile, sel, err := flags.selector()
			if err != nil {
				return err
			}
			trials, err := readAll(args[2:])
			if err != nil {
				return err
			}

			rep, err := decay.Analyze(cmd.Context(), decay.Experiment{
				Selector:    sel,
				Background:  flags.background,
				RoomVolume:  volume,
				BaselineACH: achVD,
				Trials:      trials,
			})
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), flags.outputFormat(), report.Document{
				Profile:    profile.Name,
				Strategy:   sel.Name(),
				RoomVolume: volume,
				Sources:    args[2:],
				Report:     rep,
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newTrialsCmd() *cobra.Command {
	var (
		flags      analysisFlags
		baseline   string
		volume     float64
		requireSEM bool
	)

	cmd := &cobra.Command{
		Use:   "trials --baseline <csv> --volume <V_r> <trial.csv>...",
		Short: "Fit a baseline and several trials and report mean CADR",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if volume <= 0 {
				return fmt.Errorf("--volume must be positive")
			}
			profile, sel, err := flags.selector()
			if err != nil {
				return err
			}
			base, err := dataset.ReadFile(baseline)
			if err != nil {
				return err
			}
			trials, err := readAll(args)
			if err != nil {
				return err
			}

			rep, err := decay.Analyze(cmd.Context(), decay.Experiment{
				Selector:   sel,
				Background: flags.background,
				RoomVolume: volume,
				Baseline:   &base,
				Trials:     trials,
				RequireSEM: requireSEM,
			})
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), flags.outputFormat(), report.Document{
				Profile:    profile.Name,
				Strategy:   sel.Name(),
				RoomVolume: volume,
				Sources:    args,
				Report:     rep,
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&baseline, "baseline", "", "natural decay recording without the air cleaner")
	cmd.Flags().Float64Var(&volume, "volume", 0, "room volume V_r")
	cmd.Flags().BoolVar(&requireSEM, "require-sem", false, "fail unless at least two trials are given")
	_ = cmd.MarkFlagRequired("baseline")
	_ = cmd.MarkFlagRequired("volume")
	return cmd
}
