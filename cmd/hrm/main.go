package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/cli"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "hrm",
		Short:   "HRM - recruitment lead workflow for worker pools",
		Version: version.String(),
		Long: `HRM tracks recruitment leads through telecaller, HR, sales and manager
pools: claiming, status transitions with automatic hand-offs, and a
transactional audit trail.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.LeadCmd())
	rootCmd.AddCommand(cli.WorkerCmd())
	rootCmd.AddCommand(cli.WatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
