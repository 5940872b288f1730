package main

import (
	"os"

	"github.com/spf13/cobra"
)

const app = "interview-coach"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "AI Interview Coach backend: resume-driven mock interviews over HTTP",
	// Running the binary without a subcommand starts the server.
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output (overrides LOG_DEBUG)")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging (overrides LOG_JSON)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
