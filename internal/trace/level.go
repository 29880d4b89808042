package trace

import (
	"fmt"
	"strings"
)

// Level controls how much is traced.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // nothing streamed; the ring is dumped on failure
	LevelPhase        // documents and blocks
	LevelDetail       // plus pipeline stages
	LevelDebug        // plus single fact decisions
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by Level.String.
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == want {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// deepest is the finest scope streamed at each level.
var deepest = [...]Scope{
	LevelPhase:  ScopeBlock,
	LevelDetail: ScopeStage,
	LevelDebug:  ScopeFact,
}

// ShouldEmit reports whether events of scope are streamed at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if l < LevelPhase || int(l) >= len(deepest) {
		return false
	}
	return scope <= deepest[l]
}
