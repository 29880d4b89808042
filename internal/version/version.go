package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the codenote CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Parts splits a semantic version into major, minor, patch and the
// pre-release/build suffix (with its leading '-' or '+').
func Parts(v string) (major, minor, patch, suffix string) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v, suffix = v[:i], v[i:]
	}
	fields := strings.SplitN(v, ".", 3)
	for len(fields) < 3 {
		fields = append(fields, "0")
	}
	return fields[0], fields[1], fields[2], suffix
}

// Colored renders v with each numeric part in its own color.
// Цвет отключается глобально через color.NoColor.
func Colored(v string) string {
	major, minor, patch, suffix := Parts(v)
	return majorColor.Sprint(major) + "." + minorColor.Sprint(minor) + "." + patchColor.Sprint(patch) + suffix
}
