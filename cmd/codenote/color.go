package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// applyColorFlag sets the global fatih/color switch from --color.
func applyColorFlag(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "", "auto":
		color.NoColor = os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
	return nil
}

func colorEnabled() bool {
	return !color.NoColor
}

func printError(out io.Writer, err error) {
	label := color.New(color.FgRed, color.Bold).Sprint("error:")
	fmt.Fprintf(out, "%s %v\n", label, err)
}
