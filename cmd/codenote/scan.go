package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"codenote/internal/batch"
	"codenote/internal/cut"
	"codenote/internal/diag"
	"codenote/internal/marker"
	"codenote/internal/mdblock"
	"codenote/internal/source"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Print the markers of a code file or of every code block in a markdown file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type scanMarkerJSON struct {
	Line  int    `json:"line"`
	Kind  string `json:"kind"`
	Form  string `json:"form"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

type scanFindingJSON struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
}

type scanBlockJSON struct {
	StartLine int               `json:"start_line"`
	Lang      string            `json:"lang,omitempty"`
	Markers   []scanMarkerJSON  `json:"markers"`
	CutLines  []int             `json:"cut_lines"`
	Findings  []scanFindingJSON `json:"findings,omitempty"`
}

func runScan(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text := source.NormalizeText(string(data))

	var blocks []scanBlockJSON
	if slices.Contains(batch.DefaultExtensions, strings.ToLower(filepath.Ext(path))) {
		for _, b := range mdblock.Extract(text) {
			// строки блока нумеруются от первой строки после ограды
			blocks = append(blocks, scanBlock(b.Code, b.Lang, b.StartLine+1))
		}
	} else {
		blocks = append(blocks, scanBlock(text, "", 0))
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(blocks)
	}
	return printScan(out, path, blocks)
}

// scanBlock reports 1-based line numbers relative to the scanned file.
func scanBlock(code, lang string, offset int) scanBlockJSON {
	lines := source.SplitLines(code)
	markers := marker.Scan(lines)
	bag := diag.NewBag(0)
	cut.Lint(markers, diag.BagReporter{Bag: bag})
	bag.Sort()

	out := scanBlockJSON{StartLine: offset + 1, Lang: lang, Markers: []scanMarkerJSON{}, CutLines: []int{}}
	for _, m := range markers {
		out.Markers = append(out.Markers, scanMarkerJSON{
			Line:  offset + m.Line + 1,
			Kind:  m.Kind.String(),
			Form:  string(m.Form),
			Name:  m.Name,
			Value: m.Value,
		})
	}
	for _, i := range cut.Lines(lines, markers).Sorted() {
		out.CutLines = append(out.CutLines, offset+i+1)
	}
	for _, d := range bag.Items() {
		out.Findings = append(out.Findings, scanFindingJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Line:     offset + d.Line + 1,
			Message:  d.Message,
		})
	}
	return out
}

func printScan(out io.Writer, path string, blocks []scanBlockJSON) error {
	header := color.New(color.Bold)
	kind := color.New(color.FgCyan)
	warn := color.New(color.FgYellow, color.Bold)
	for _, b := range blocks {
		title := fmt.Sprintf("%s:%d", path, b.StartLine)
		if b.Lang != "" {
			title += " [" + b.Lang + "]"
		}
		if _, err := fmt.Fprintln(out, header.Sprint(title)); err != nil {
			return err
		}
		for _, m := range b.Markers {
			line := fmt.Sprintf("  %4d  %-10s %s", m.Line, kind.Sprint(m.Kind), m.Form)
			if m.Name != "" {
				line += " " + m.Name
			}
			if m.Value != "" {
				line += " = " + m.Value
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		if len(b.CutLines) > 0 {
			if _, err := fmt.Fprintf(out, "  cut: %s\n", formatLineRanges(b.CutLines)); err != nil {
				return err
			}
		}
		for _, f := range b.Findings {
			if _, err := fmt.Fprintf(out, "  %s %s line %d: %s\n", warn.Sprint(f.Severity), f.Code, f.Line, f.Message); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatLineRanges collapses sorted line numbers: 1-3, 7, 9-10.
func formatLineRanges(lines []int) string {
	var parts []string
	for i := 0; i < len(lines); {
		j := i
		for j+1 < len(lines) && lines[j+1] == lines[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, fmt.Sprint(lines[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", lines[i], lines[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}
