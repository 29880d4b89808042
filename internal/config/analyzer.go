package config

import (
	"errors"
	"path/filepath"

	"codenote/internal/analyzer"
)

// ErrNoAnalyzer is returned by NewAnalyzer when neither command nor fixture
// is configured.
var ErrNoAnalyzer = errors.New("no analyzer configured: set [analyzer].command or [analyzer].fixture")

// NewAnalyzer builds the configured analyzer, wrapped in a disk cache when
// [analyzer].cache is on. Relative paths resolve against the config root.
// The returned *analyzer.Cached is nil without a cache.
func (c Config) NewAnalyzer() (analyzer.Analyzer, *analyzer.Cached, error) {
	ac := c.Analyzer
	var inner analyzer.Analyzer
	switch {
	case ac.Command != "":
		p, err := analyzer.NewProcess(ac.Command)
		if err != nil {
			return nil, nil, err
		}
		p.Dir = c.Root()
		inner = p
	case ac.Fixture != "":
		f, err := analyzer.LoadFixture(c.resolve(ac.Fixture))
		if err != nil {
			return nil, nil, err
		}
		inner = f
	default:
		return nil, nil, ErrNoAnalyzer
	}
	if !ac.Cache {
		return inner, nil, nil
	}
	dir := ac.CacheDir
	if dir != "" {
		dir = c.resolve(dir)
	}
	dc, err := analyzer.OpenDiskCache(dir)
	if err != nil {
		return nil, nil, err
	}
	cached := analyzer.NewCached(inner, dc)
	return cached, cached, nil
}

func (c Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root(), path)
}
