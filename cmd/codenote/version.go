package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"codenote/internal/version"
)

// buildInfo is both the pretty and the json view of the binary.
type buildInfo struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Go        string `json:"go,omitempty"`
	Commit    string `json:"git_commit,omitempty"`
	Message   string `json:"git_message,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

type versionFields struct {
	hash, message, date bool
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show codenote build information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("message", false, "include git commit message")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "show all build metadata")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	flag := func(name string) bool {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}
	full := flag("full")
	fields := versionFields{hash: full || flag("hash"), message: full || flag("message"), date: full || flag("date")}

	format, _ := cmd.Flags().GetString("format")
	info := readBuildInfo().only(fields)
	out := cmd.OutOrStdout()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return writeVersionJSON(out, info)
	case "pretty":
		return writeVersionPretty(out, info)
	}
	return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
}

// readBuildInfo prefers ldflags values and falls back to the vcs settings the
// go toolchain embeds.
func readBuildInfo() buildInfo {
	info := buildInfo{
		Tool:      "codenote",
		Version:   orDefault(version.Version, "dev"),
		Commit:    strings.TrimSpace(version.GitCommit),
		Message:   strings.TrimSpace(version.GitMessage),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.Go = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = orDefault(info.Commit, s.Value)
		case "vcs.time":
			info.BuildDate = orDefault(info.BuildDate, s.Value)
		}
	}
	return info
}

// only blanks unrequested fields and marks requested empty ones unknown.
func (b buildInfo) only(f versionFields) buildInfo {
	pick := func(want bool, v string) string {
		if !want {
			return ""
		}
		return orDefault(v, "unknown")
	}
	b.Commit = pick(f.hash, b.Commit)
	b.Message = pick(f.message, b.Message)
	b.BuildDate = pick(f.date, b.BuildDate)
	return b
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

func writeVersionPretty(out io.Writer, b buildInfo) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", b.Tool, version.Colored(b.Version))
	for _, row := range [][2]string{{"commit:", b.Commit}, {"message:", b.Message}, {"built:", b.BuildDate}} {
		if row[1] != "" {
			fmt.Fprintf(&sb, "%-8s %s\n", row[0], row[1])
		}
	}
	_, err := io.WriteString(out, sb.String())
	return err
}

func writeVersionJSON(out io.Writer, b buildInfo) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}
