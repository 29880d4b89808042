package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FixtureEntry pairs a request with its canned result.
type FixtureEntry struct {
	Lang            string            `json:"lang"`
	Code            string            `json:"code"`
	CompilerOptions map[string]string `json:"compilerOptions,omitempty"`
	Result          Result            `json:"result"`
}

// Fixture answers from pre-computed results keyed by Key.
type Fixture struct {
	mu      sync.RWMutex
	results map[Digest]*Result
}

func NewFixture() *Fixture {
	return &Fixture{results: make(map[Digest]*Result)}
}

// LoadFixture reads a JSON array of FixtureEntry.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []FixtureEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	fx := NewFixture()
	for i := range entries {
		e := &entries[i]
		fx.Add(Request{Lang: e.Lang, Code: e.Code, CompilerOptions: e.CompilerOptions}, &e.Result)
	}
	return fx, nil
}

// Add registers res for req.
func (f *Fixture) Add(req Request, res *Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[Key(req)] = res
}

func (f *Fixture) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.results)
}

func (f *Fixture) Analyze(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	res, ok := f.results[Key(req)]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s block %s: %w", req.Lang, Key(req).String()[:12], ErrNoResult)
	}
	return res, nil
}
