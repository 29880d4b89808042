package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"codenote/internal/compositor"
	"codenote/internal/includes"
	"codenote/internal/normalize"
	"codenote/internal/overlap"
)

// FileName is the project configuration file looked up by Find.
const FileName = "codenote.toml"

// ErrNotFound is returned by Find and Discover when no FileName exists in
// the start directory or any of its parents.
var ErrNotFound = errors.New("no " + FileName + " found")

// Config mirrors codenote.toml.
type Config struct {
	// Path is the file the config was loaded from, empty for defaults.
	Path string `toml:"-"`

	Compositor      CompositorConfig `toml:"compositor"`
	Analyzer        AnalyzerConfig   `toml:"analyzer"`
	CompilerOptions map[string]any   `toml:"compiler_options"`
}

// CompositorConfig is the [compositor] section.
type CompositorConfig struct {
	Languages          []string `toml:"languages"`
	ExplicitTrigger    bool     `toml:"explicit_trigger"`
	IncludeJSDoc       bool     `toml:"include_jsdoc"`
	AllowedTags        []string `toml:"allowed_tags"`
	CompletionLimit    int      `toml:"completion_limit"`
	QueryEquality      []string `toml:"query_equality"`
	DiagnosticEquality []string `toml:"diagnostic_equality"`
	DedupEquality      []string `toml:"dedup_equality"`
	IncludesCacheSize  int      `toml:"includes_cache_size"`
}

// AnalyzerConfig is the [analyzer] section. Exactly one of Command and
// Fixture should be set.
type AnalyzerConfig struct {
	Command  string `toml:"command"`
	Fixture  string `toml:"fixture"`
	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	opts := compositor.DefaultOptions()
	return Config{
		Compositor: CompositorConfig{
			Languages:          opts.Languages,
			ExplicitTrigger:    opts.ExplicitTrigger,
			IncludeJSDoc:       opts.Normalize.IncludeJSDoc,
			AllowedTags:        opts.Normalize.AllowedTags,
			CompletionLimit:    opts.Normalize.CompletionLimit,
			QueryEquality:      policyNames(opts.QueryMatch),
			DiagnosticEquality: policyNames(opts.DiagnosticMatch),
			DedupEquality:      policyNames(opts.Dedup),
			IncludesCacheSize:  opts.IncludesSize,
		},
	}
}

func policyNames(p overlap.Policy) []string {
	if p == 0 {
		return []string{}
	}
	return strings.Split(p.String(), "|")
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNotFound
}

// Load decodes path over Default and validates the result. Unknown keys are
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			// compiler_options - свободная таблица
			if len(k) > 0 && k[0] == "compiler_options" {
				continue
			}
			keys = append(keys, k.String())
		}
		if len(keys) > 0 {
			sort.Strings(keys)
			return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest config. When none exists it returns
// Default together with ErrNotFound.
func Discover(startDir string) (Config, error) {
	path, err := Find(startDir)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Default(), err
		}
		return Config{}, err
	}
	return Load(path)
}

// Root is the directory holding the config file, or "." for defaults.
func (c Config) Root() string {
	if c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}

// Validate checks value ranges and equality field names.
func (c Config) Validate() error {
	cc := c.Compositor
	if cc.CompletionLimit < 0 {
		return fmt.Errorf("[compositor].completion_limit must be >= 0, got %d", cc.CompletionLimit)
	}
	if cc.IncludesCacheSize < 0 {
		return fmt.Errorf("[compositor].includes_cache_size must be >= 0, got %d", cc.IncludesCacheSize)
	}
	for key, names := range map[string][]string{
		"query_equality":      cc.QueryEquality,
		"diagnostic_equality": cc.DiagnosticEquality,
		"dedup_equality":      cc.DedupEquality,
	} {
		if _, err := overlap.ParsePolicy(names); err != nil {
			return fmt.Errorf("[compositor].%s: %w", key, err)
		}
	}
	if c.Analyzer.Command != "" && c.Analyzer.Fixture != "" {
		return errors.New("[analyzer]: command and fixture are mutually exclusive")
	}
	return nil
}

// CompositorOptions converts the config into compositor options.
func (c Config) CompositorOptions() (compositor.Options, error) {
	cc := c.Compositor
	opts := compositor.DefaultOptions()
	opts.Languages = cc.Languages
	opts.ExplicitTrigger = cc.ExplicitTrigger
	opts.Normalize = normalize.Options{
		IncludeJSDoc:    cc.IncludeJSDoc,
		AllowedTags:     cc.AllowedTags,
		CompletionLimit: cc.CompletionLimit,
		Language:        opts.Normalize.Language,
	}
	var err error
	if opts.QueryMatch, err = overlap.ParsePolicy(cc.QueryEquality); err != nil {
		return compositor.Options{}, fmt.Errorf("query_equality: %w", err)
	}
	if opts.DiagnosticMatch, err = overlap.ParsePolicy(cc.DiagnosticEquality); err != nil {
		return compositor.Options{}, fmt.Errorf("diagnostic_equality: %w", err)
	}
	if opts.Dedup, err = overlap.ParsePolicy(cc.DedupEquality); err != nil {
		return compositor.Options{}, fmt.Errorf("dedup_equality: %w", err)
	}
	opts.IncludesSize = cc.IncludesCacheSize
	if opts.IncludesSize == 0 {
		opts.IncludesSize = includes.DefaultSize
	}
	if len(c.CompilerOptions) > 0 {
		opts.CompilerOptions = make(map[string]string, len(c.CompilerOptions))
		for k, v := range c.CompilerOptions {
			opts.CompilerOptions[k] = fmt.Sprint(v)
		}
	}
	return opts, nil
}
