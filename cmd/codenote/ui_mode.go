package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	mode := uiMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return mode, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI decides whether a batch of docs gets the progress view. In
// auto mode it needs several documents, no --quiet and a terminal on stderr,
// the view never goes to stdout.
func shouldUseTUI(cmd *cobra.Command, docs int) (bool, error) {
	flags := cmd.Root().PersistentFlags()
	value, err := flags.GetString("ui")
	if err != nil {
		return false, fmt.Errorf("read --ui: %w", err)
	}
	mode, err := readUIMode(value)
	if err != nil || mode != uiModeAuto {
		return mode == uiModeOn, err
	}
	quiet, _ := flags.GetBool("quiet")
	return !quiet && docs > 1 && isTerminal(os.Stderr), nil
}
