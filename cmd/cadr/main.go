// @title                       CADR API
// @version                     1.0
// @description                 Decay-fit analysis of air cleaner tests: clean air delivery rate from particle recordings.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cadr",
		Short:         "Clean air delivery rate from particle decay recordings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newFitCmd())
	root.AddCommand(newTrialsCmd())
	root.AddCommand(newProfilesCmd())
	root.AddCommand(newSimulateCmd())
	return root
}
