package main

import (
	"fmt"
	"log"
	"strings"

	"portwatch/internal/tui"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "portwatch [filter]",
	Short: "portwatch: live table of processes holding listening TCP ports",
	Long: `portwatch shows which processes hold open listening TCP ports in a live,
filterable table and can terminate the selected one. Positional arguments
join into the initial filter, e.g. "portwatch 8080".`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := controller()
		if err != nil {
			return err
		}
		if err := tui.Run(ctrl, ctrl.RefreshInterval(), strings.Join(args, " ")); err != nil {
			return fmt.Errorf("tui exited with error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to an optional JSON config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
