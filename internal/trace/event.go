package trace

import "time"

// Kind tells spans, instants and heartbeats apart.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindInfo = [...]struct{ name, glyph string }{
	KindSpanBegin: {"begin", "→"},
	KindSpanEnd:   {"end", "←"},
	KindPoint:     {"point", "•"},
	KindHeartbeat: {"heartbeat", "♡"},
}

func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindInfo) {
		return "unknown"
	}
	return kindInfo[k].name
}

func (k Kind) glyph() string {
	if k == 0 || int(k) >= len(kindInfo) {
		return "?"
	}
	return kindInfo[k].glyph
}

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDocument Scope = iota + 1 // one markdown document or source file
	ScopeBlock                     // one code block
	ScopeStage                     // scan, cut, analyze, reconcile, normalize, resolve, emit
	ScopeFact                      // a single hover or completion decision
)

var scopeNames = [...]string{
	ScopeDocument: "document",
	ScopeBlock:    "block",
	ScopeStage:    "stage",
	ScopeFact:     "fact",
}

func (s Scope) String() string {
	if s == 0 || int(s) >= len(scopeNames) {
		return "unknown"
	}
	return scopeNames[s]
}

// depth is the text indentation of the scope.
func (s Scope) depth() int {
	if s <= ScopeDocument {
		return 0
	}
	return int(s - ScopeDocument)
}

// Event is one trace record. Spans share SpanID between begin and end.
type Event struct {
	Time     time.Time         `json:"-"`
	Seq      uint64            `json:"seq"`
	Kind     Kind              `json:"-"`
	Scope    Scope             `json:"-"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}
