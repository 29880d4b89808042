// Package includes keeps code registered by "include" blocks so later blocks
// of the same document can splice it in with "// @include: name".
package includes

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/golang-lru/v2"
)

// DefaultSize bounds the number of registered snippets per document.
const DefaultSize = 256

// ErrUnknownInclude is returned by Expand for a key nothing registered.
var ErrUnknownInclude = errors.New("unknown include")

var (
	partialMarker = regexp.MustCompile(`^//\s*-\s+(\S+)`)
	includeLine   = regexp.MustCompile(`(?m)^[ \t]*//[ \t]*@include:[ \t]*(\S+)[ \t]*$`)
)

// Cache maps include keys to code. One cache lives for one document; the
// last Register for a key wins.
type Cache struct {
	store *lru.Cache[string, string]
}

// New creates a cache; size <= 0 uses DefaultSize.
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	store, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("includes cache: %w", err)
	}
	return &Cache{store: store}, nil
}

// Register stores code under name. Every "// - id" line also stores the code
// that precedes it as "name-id"; the marker lines themselves are removed.
func (c *Cache) Register(name, code string) {
	var kept []string
	for _, line := range strings.Split(code, "\n") {
		if m := partialMarker.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			c.store.Add(name+"-"+m[1], strings.Join(kept, "\n"))
			continue
		}
		kept = append(kept, line)
	}
	c.store.Add(name, strings.Join(kept, "\n"))
}

// Get returns the code registered under key.
func (c *Cache) Get(key string) (string, bool) {
	return c.store.Get(key)
}

// Keys returns the registered keys, oldest first.
func (c *Cache) Keys() []string {
	return c.store.Keys()
}

func (c *Cache) Len() int {
	return c.store.Len()
}

// Expand replaces every "// @include: key" line with the registered code.
func (c *Cache) Expand(code string) (string, error) {
	var missing string
	out := includeLine.ReplaceAllStringFunc(code, func(line string) string {
		key := includeLine.FindStringSubmatch(line)[1]
		body, ok := c.store.Get(key)
		if !ok && missing == "" {
			missing = key
		}
		return body
	})
	if missing != "" {
		return "", fmt.Errorf("%w %q (registered: %s)", ErrUnknownInclude, missing, strings.Join(c.Keys(), ", "))
	}
	return out, nil
}
