package main

import (
	"fmt"

	"portwatch/internal/app"

	"github.com/spf13/cobra"
)

var (
	killPIDs  []int
	killPorts []int
	killAll   bool
)

func init() {
	rootCmd.AddCommand(cmdKill)
	cmdKill.Flags().IntSliceVar(&killPIDs, "pid", nil, "Terminate by PID (repeatable)")
	cmdKill.Flags().IntSliceVar(&killPorts, "port", nil, "Terminate whatever listens on this TCP port (repeatable)")
	cmdKill.Flags().BoolVar(&killAll, "all", false, "Terminate every process that matches the selector")
}

var cmdKill = &cobra.Command{
	Use:   "kill",
	Short: "Terminate listening processes without entering the TUI",
	Long:  "Selects processes from one fresh enumeration via --pid or --port and signals each one.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := controller()
		if err != nil {
			return err
		}

		res, err := ctrl.Kill(cmd.Context(), app.KillParams{
			PIDs:            killPIDs,
			Ports:           killPorts,
			AllowAll:        killAll,
			RequireSelector: true,
		})
		if res.Message != "" {
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
		}
		for _, event := range res.Events {
			switch event.Kind {
			case "success":
				fmt.Fprintf(cmd.OutOrStdout(), "Killed pid=%d cmd=%s\n", event.Proc.PID, event.Proc.Command)
			case "kill_failure":
				fmt.Fprintf(cmd.OutOrStdout(), "Failed to kill pid=%d cmd=%s: %v\n", event.Proc.PID, event.Proc.Command, event.Err)
			}
		}
		return err
	},
}
