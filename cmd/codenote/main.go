package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"codenote/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "codenote",
	Short:         "Annotate code blocks in markdown with analyzer facts",
	Long:          `codenote composes hovers, queries, diagnostics and completions from a code analyzer into the code blocks of markdown documents`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyColorFlag(cmd); err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		stop, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		profileStop = stop
		return nil
	},
}

// main registers subcommands and persistent flags, executes the root command
// and exits with status 1 on failure.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "path to codenote.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("ui", "auto", "progress UI (auto|on|off)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "heartbeat interval (0 disables)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		printError(os.Stderr, err)
		dumpTraceRing(rootCmd, os.Stderr)
	}
	profileStop()
	traceCleanup()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func termSize(f *os.File) (width, height int, err error) {
	return term.GetSize(int(f.Fd()))
}
