package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"off", LevelOff, true},
		{"ERROR", LevelError, true},
		{"phase", LevelPhase, true},
		{"Detail", LevelDetail, true},
		{"debug", LevelDebug, true},
		{"verbose", LevelOff, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok {
			t.Fatalf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDebug, ScopeFile, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer must be disabled")
	}
}

func TestStartNestsSpans(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), tr)

	ctx, run := Start(ctx, ScopeDriver, "run")
	fctx, file := Start(ctx, ScopeFile, "file:a.zig")
	Point(fctx, ScopeFile, "cache", "miss")
	file.End("")
	run.WithExtra("files", "1").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d events:\n%s", len(lines), buf.String())
	}
	type rec struct {
		Kind     string            `json:"kind"`
		Name     string            `json:"name"`
		SpanID   uint64            `json:"span_id"`
		ParentID uint64            `json:"parent_id"`
		Extra    map[string]string `json:"extra"`
	}
	var evs []rec
	for _, l := range lines {
		var r rec
		if err := json.Unmarshal([]byte(l), &r); err != nil {
			t.Fatalf("bad json %q: %v", l, err)
		}
		evs = append(evs, r)
	}
	if evs[1].ParentID != evs[0].SpanID {
		t.Errorf("file span parent = %d, want %d", evs[1].ParentID, evs[0].SpanID)
	}
	if evs[2].Kind != "point" || evs[2].ParentID != evs[1].SpanID {
		t.Errorf("point = %+v", evs[2])
	}
	if evs[4].Extra["files"] != "1" {
		t.Errorf("end extra = %v", evs[4].Extra)
	}
}

func TestWithFileTagsPointsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	ctx := WithTracer(context.Background(), tr)

	ctx, run := Start(ctx, ScopeDriver, "run")
	Point(ctx, ScopeDriver, "untagged", "")
	fctx, file := Start(WithFile(ctx, "std/mem.zig"), ScopeFile, "file:std/mem.zig")
	if got := FileFromContext(fctx); got != "std/mem.zig" {
		t.Fatalf("file lost across Start: %q", got)
	}
	if CurrentSpan(fctx).SpanID == CurrentSpan(ctx).SpanID {
		t.Fatal("Start must open a new span")
	}
	Point(fctx, ScopeFile, "cache", "miss")
	Error(fctx, ScopeFile, "parse", errors.New("unexpected token"))
	file.End("")
	run.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	tagged := 0
	for _, l := range lines {
		has := strings.Contains(l, "file=std/mem.zig")
		switch {
		case strings.Contains(l, "untagged") && has:
			t.Errorf("point outside the file tagged: %s", l)
		case strings.Contains(l, "cache") || strings.Contains(l, "error=unexpected token"):
			if !has {
				t.Errorf("point inside the file not tagged: %s", l)
			}
			tagged++
		}
	}
	if tagged != 2 {
		t.Errorf("tagged points = %d, want 2:\n%s", tagged, buf.String())
	}
	if FileFromContext(context.Background()) != "" {
		t.Error("empty context must have no file")
	}
}

func TestPhaseLevelDropsFileScope(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)

	ctx, pass := Start(ctx, ScopePass, "diff")
	_, file := Start(ctx, ScopeFile, "file:a.zig")
	file.End("")
	pass.End("")

	out := buf.String()
	if strings.Contains(out, "file:a.zig") {
		t.Errorf("file scope leaked at phase level:\n%s", out)
	}
	if strings.Count(out, "diff") != 2 {
		t.Errorf("expected begin and end for diff:\n%s", out)
	}
}

func TestErrorLevelKeepsOnlyErrors(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatText)
	ctx := WithTracer(context.Background(), tr)

	_, span := Start(ctx, ScopeDriver, "run")
	Point(ctx, ScopeDriver, "noise", "")
	Error(ctx, ScopeFile, "parse", errors.New("unexpected token"))
	span.End("")

	out := buf.String()
	if strings.Contains(out, "run") || strings.Contains(out, "noise") {
		t.Errorf("non-error events emitted:\n%s", out)
	}
	if !strings.Contains(out, "error=unexpected token") {
		t.Errorf("error point missing:\n%s", out)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "text": FormatText, "json": FormatNDJSON, "NDJSON": FormatNDJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Error("chrome format must be rejected")
	}
}
