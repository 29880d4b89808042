package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"codenote/internal/batch"
)

func TestScanBlock(t *testing.T) {
	code := strings.Join([]string{
		"const a = 1",
		"// ---cut---",
		"const b = a",
		"// ^?",
		"// ---cut-start---",
		"// @strict",
	}, "\n")
	got := scanBlock(code, "ts", 10)

	if got.StartLine != 11 || got.Lang != "ts" {
		t.Fatalf("block = %+v", got)
	}
	var kinds []string
	for _, m := range got.Markers {
		kinds = append(kinds, m.Kind)
	}
	if want := []string{"cut-before", "query-mark", "cut-start", "flag"}; !slices.Equal(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	if m := got.Markers[3]; m.Line != 16 || m.Name != "strict" {
		t.Errorf("flag marker = %+v", m)
	}
	if want := []int{11, 12, 14, 16}; !slices.Equal(got.CutLines, want) {
		t.Errorf("cut lines = %v, want %v", got.CutLines, want)
	}
	if len(got.Findings) != 1 || got.Findings[0].Code != "MRK1001" || got.Findings[0].Line != 15 {
		t.Errorf("findings = %+v", got.Findings)
	}
}

func TestFormatLineRanges(t *testing.T) {
	tests := []struct {
		in   []int
		want string
	}{
		{nil, ""},
		{[]int{4}, "4"},
		{[]int{1, 2, 3, 7, 9, 10}, "1-3, 7, 9-10"},
	}
	for _, tt := range tests {
		if got := formatLineRanges(tt.in); got != tt.want {
			t.Errorf("formatLineRanges(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Errorf("expected error for invalid mode")
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	info := buildInfo{Tool: "codenote", Version: "1.2.3", Commit: "abc", Message: "fix"}
	if err := writeVersionJSON(&buf, info.only(versionFields{hash: true, date: true})); err != nil {
		t.Fatalf("writeVersionJSON: %v", err)
	}
	var payload buildInfo
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "codenote" || payload.Commit != "abc" || payload.BuildDate != "unknown" || payload.Message != "" {
		t.Fatalf("payload = %+v", payload)
	}
	if strings.Contains(buf.String(), "git_message") {
		t.Fatalf("unrequested field encoded: %s", buf.String())
	}
}

func TestPrintDocumentTimings(t *testing.T) {
	var ok batch.Result
	ok.Name = "a.md"
	ok.Timings.Set(batch.StageRead, time.Millisecond)
	ok.Timings.Set(batch.StageCompose, 2*time.Millisecond)
	failed := batch.Result{Name: "b.md", Err: errors.New("boom")}
	failed.Timings.Set(batch.StageRead, time.Millisecond)

	var buf bytes.Buffer
	printDocumentTimings(&buf, []batch.Result{ok, failed})
	out := buf.String()
	if !strings.Contains(out, "a.md: composed 0 blocks in 2.0 ms") {
		t.Errorf("missing document line:\n%s", out)
	}
	if strings.Contains(out, "b.md") {
		t.Errorf("failed document should not report compose time:\n%s", out)
	}
	if !strings.Contains(out, "read 2.0 ms, compose 2.0 ms") {
		t.Errorf("missing totals:\n%s", out)
	}
}
