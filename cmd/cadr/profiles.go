package main

import (
	"fmt"
	"text/tabwriter"

	"cadr/internal/report"
	"cadr/internal/sensor"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newProfilesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List sensor profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch format {
			case report.FormatYAML:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(sensor.All()); err != nil {
					return err
				}
				return enc.Close()
			case report.FormatText:
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, "NAME\tCHANNEL\tLOWER BOUND\tSTRATEGY\tSATURATION")
				for _, p := range sensor.All() {
					sat := "-"
					if p.Saturation.Channel != "" {
						sat = fmt.Sprintf("%s >= %g", p.Saturation.Channel, p.Saturation.Limit)
					}
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%g\t%s\t%s\n", p.Name, p.Channel, p.LowerBound, p.Strategy, sat)
				}
				return tw.Flush()
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", report.FormatText, "output format: text|yaml")
	return cmd
}
