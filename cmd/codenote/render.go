package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"codenote/internal/analyzer"
	"codenote/internal/batch"
	"codenote/internal/compositor"
	"codenote/internal/config"
	"codenote/internal/observ"
	"codenote/internal/present"
	"codenote/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <file.md|dir>...",
	Short: "Compose analyzer facts into the code blocks of markdown documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	renderCmd.Flags().Int("jobs", 0, "documents processed in parallel (0 = GOMAXPROCS)")
	renderCmd.Flags().String("analyzer", "", "analyzer command, overrides [analyzer].command")
	renderCmd.Flags().String("fixture", "", "JSON fixture of analyzer results, overrides [analyzer].fixture")
	renderCmd.Flags().Bool("no-cache", false, "bypass the analyzer result cache")
	renderCmd.Flags().String("cache-dir", "", "analyzer cache directory, overrides [analyzer].cache_dir")
	renderCmd.Flags().StringSlice("lang", nil, "languages to compose, overrides [compositor].languages")
	renderCmd.Flags().Bool("explicit-trigger", false, "compose only blocks whose meta contains "+compositor.TriggerWord)
	renderCmd.Flags().Bool("findings", false, "print marker and fact findings under each block")
	renderCmd.Flags().Bool("show-skipped", false, "list blocks that were not composed")
	renderCmd.Flags().Int("width", 0, "truncate annotation labels to this width (0 = terminal width)")
	renderCmd.Flags().Bool("nodes", false, "keep rendered node trees in json/msgpack output")
	renderCmd.Flags().Bool("indent", false, "indent json output")
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or msgpack)", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyRenderOverrides(cmd, &cfg); err != nil {
		return err
	}
	an, cached, err := cfg.NewAnalyzer()
	if err != nil {
		return err
	}
	opts, err := cfg.CompositorOptions()
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	c := compositor.New(an, render.NewMarkdown(opts.Normalize.Language), opts)
	if showTimings {
		c.Timer = observ.NewTimer()
	}

	files, err := batch.Collect(args, nil)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no markdown files found")
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	bopts := batch.Options{Jobs: jobs, BaseDir: "."}

	useTUI, err := shouldUseTUI(cmd, len(files))
	if err != nil {
		return err
	}
	var results []batch.Result
	if useTUI {
		results, err = runBatchWithUI(cmd.Context(), "render", c, files, bopts)
	} else {
		results, err = batch.Run(cmd.Context(), c, files, bopts)
	}
	if err != nil {
		return err
	}

	if err := writeResults(cmd, cmd.OutOrStdout(), results, format); err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil && !quiet {
			printError(cmd.ErrOrStderr(), fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}

	if showTimings {
		printDocumentTimings(cmd.ErrOrStderr(), results)
		fmt.Fprint(cmd.ErrOrStderr(), c.Timer.Summary())
		if cached != nil {
			printCacheStats(cmd.ErrOrStderr(), cached.Stats())
		}
	}

	if failed := batch.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

func writeResults(cmd *cobra.Command, out io.Writer, results []batch.Result, format string) error {
	includeNodes, _ := cmd.Flags().GetBool("nodes")
	indent, _ := cmd.Flags().GetBool("indent")
	findings, _ := cmd.Flags().GetBool("findings")
	skipped, _ := cmd.Flags().GetBool("show-skipped")
	width, _ := cmd.Flags().GetInt("width")
	if width == 0 {
		width = terminalWidth()
	}

	for _, r := range results {
		if r.Doc == nil {
			continue
		}
		doc := present.FromResult(r.Doc, includeNodes)
		var err error
		switch format {
		case "json":
			err = present.JSON(out, doc, present.JSONOpts{Indent: indent, IncludeNodes: includeNodes})
		case "msgpack":
			err = present.MsgPack(out, doc, present.JSONOpts{IncludeNodes: includeNodes})
		default:
			err = present.Pretty(out, doc, present.PrettyOpts{
				Color:        colorEnabled(),
				Width:        width,
				ShowFindings: findings,
				ShowSkipped:  skipped,
			})
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", r.Name, err)
		}
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Discover(".")
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return config.Config{}, err
	}
	return cfg, nil
}

func applyRenderOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("analyzer") {
		cfg.Analyzer.Command, _ = flags.GetString("analyzer")
		cfg.Analyzer.Fixture = ""
	}
	if flags.Changed("fixture") {
		cfg.Analyzer.Fixture, _ = flags.GetString("fixture")
		cfg.Analyzer.Command = ""
	}
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		cfg.Analyzer.Cache = false
	}
	if flags.Changed("cache-dir") {
		cfg.Analyzer.CacheDir, _ = flags.GetString("cache-dir")
		cfg.Analyzer.Cache = true
	}
	if flags.Changed("lang") {
		cfg.Compositor.Languages, _ = flags.GetStringSlice("lang")
	}
	if flags.Changed("explicit-trigger") {
		cfg.Compositor.ExplicitTrigger, _ = flags.GetBool("explicit-trigger")
	}
	return cfg.Validate()
}

func printCacheStats(out io.Writer, st analyzer.CacheStats) {
	fmt.Fprintf(out, "analyzer cache: %d hits, %d misses, %d errors\n", st.Hits, st.Misses, st.Errors)
}

func terminalWidth() int {
	if !isTerminal(os.Stdout) {
		return 0
	}
	w, _, err := termSize(os.Stdout)
	if err != nil || w <= 0 {
		return 0
	}
	// gutter and caret column
	return max(w-8, 20)
}
