package cli

import (
    "fmt"
    "os"

    "github.com/spf13/cobra"

    "commas/internal/app"
)

var rootCmd = &cobra.Command{
    Use:   "commas",
    Short: "commas – terminal with shell integration",
    Long:  "commas runs your shell in a TUI terminal that tracks commands, suggests quick fixes and completes as you type.",
    RunE: func(cmd *cobra.Command, args []string) error {
        // Default action: launch the TUI
        return app.Start()
    },
    SilenceUsage:  true,
    SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
    if err := rootCmd.Execute(); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
}
