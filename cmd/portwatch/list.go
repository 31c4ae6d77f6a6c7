package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cmdList)
}

var cmdList = &cobra.Command{
	Use:   "list",
	Short: "Print one snapshot of listening processes",
	Long:  `Runs a single enumeration and prints every process holding a listening TCP port, without entering the TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := controller()
		if err != nil {
			return err
		}

		spin := spinner.New(spinner.CharSets[21], 120*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = " Enumerating listening ports..."
		spin.Start()
		entries, err := ctrl.Snapshot(cmd.Context())
		spin.Stop()
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No listening processes found")
			return nil
		}
		for _, entry := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "pid=%d cmd=%s ports=%s\n",
				entry.PID, entry.Command, strings.Join(entry.Ports, ","))
		}
		return nil
	},
}
