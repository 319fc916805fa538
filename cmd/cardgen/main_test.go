package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cardgen/internal/differ"
	"cardgen/internal/project"
	"cardgen/internal/source"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

type fixture struct {
	dir, old, new, out, config string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	fx := fixture{
		dir:    dir,
		old:    filepath.Join(dir, "old"),
		new:    filepath.Join(dir, "new"),
		out:    filepath.Join(dir, "cards"),
		config: filepath.Join(dir, project.ManifestName),
	}
	writeFile(t, filepath.Join(fx.old, "std", "f.zig"), "pub fn f(x: i32) void {}\n")
	writeFile(t, filepath.Join(fx.new, "std", "f.zig"), "pub fn f(a: Allocator, x: i32) void {}\n")
	writeFile(t, fx.config, "[run]\nold_tag = \"0.11\"\nnew_tag = \"0.16\"\n")
	return fx
}

func (fx fixture) args(extra ...string) []string {
	return append([]string{
		"--old", fx.old, "--new", fx.new, "--out", fx.out,
		"--config", fx.config, "--ui", "off", "--color", "off",
	}, extra...)
}

func run(t *testing.T, args []string) (int, string, string) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	code := execute(context.Background(), cmd, args)
	return code, stdout.String(), stderr.String()
}

func TestGenerateSuccess(t *testing.T) {
	fx := newFixture(t)
	code, _, stderr := run(t, fx.args())
	if code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	data, err := os.ReadFile(filepath.Join(fx.out, "0001-std-f.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "allocator_added") {
		t.Errorf("card:\n%s", data)
	}
	if !strings.Contains(stderr, "analyzed 1, degraded 0, skipped 0") {
		t.Errorf("summary missing:\n%s", stderr)
	}
}

func TestGeneratePartialFailure(t *testing.T) {
	fx := newFixture(t)
	writeFile(t, filepath.Join(fx.new, "std", "broken.zig"), "pub fn broken(a: u8 void {\n")
	code, _, stderr := run(t, fx.args("--quiet"))
	if code != exitPartial {
		t.Fatalf("exit %d, want %d; stderr:\n%s", code, exitPartial, stderr)
	}
	if !strings.Contains(stderr, "std/broken.zig") {
		t.Errorf("degraded file not reported even with --quiet:\n%s", stderr)
	}
	if _, err := os.Stat(filepath.Join(fx.out, "0001-std-broken.md")); err != nil {
		t.Errorf("degraded card not written: %v", err)
	}
}

func TestGenerateConfigErrors(t *testing.T) {
	fx := newFixture(t)
	badConfig := filepath.Join(fx.dir, "bad.toml")
	writeFile(t, badConfig, "[run]\njobs = -1\n")

	tests := []struct {
		name string
		args []string
	}{
		{"missing root", []string{"--old", filepath.Join(fx.dir, "nope"), "--new", fx.new, "--out", fx.out, "--config", fx.config}},
		{"missing out", []string{"--old", fx.old, "--new", fx.new, "--config", fx.config}},
		{"bad filter", fx.args("--filter", "everything")},
		{"unknown flag", fx.args("--bogus")},
		{"bad config", []string{"--old", fx.old, "--new", fx.new, "--out", fx.out, "--config", badConfig}},
		{"same tags", fx.args("--old-tag", "x", "--new-tag", "x")},
		{"bad ui", fx.args("--ui", "sometimes")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, tt.args)
			if code != exitConfig {
				t.Errorf("exit %d, want %d; stderr:\n%s", code, exitConfig, stderr)
			}
			if !strings.Contains(stderr, "error:") {
				t.Errorf("no error printed:\n%s", stderr)
			}
		})
	}
}

func TestResolveSettingsPrecedence(t *testing.T) {
	fx := newFixture(t)
	writeFile(t, fx.config, fmt.Sprintf("[run]\nold = %q\nnew = %q\nout = %q\njobs = 3\n", "old", "new", "cards"))

	tests := []struct {
		name string
		env  string
		args []string
		want int
	}{
		{"file", "", nil, 3},
		{"env over file", "5", nil, 5},
		{"flag over env", "5", []string{"--jobs", "7"}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			if err := cmd.ParseFlags(append([]string{"--config", fx.config}, tt.args...)); err != nil {
				t.Fatal(err)
			}
			getenv := func(k string) string {
				if k == workersEnv {
					return tt.env
				}
				return ""
			}
			s, err := resolveSettings(cmd, getenv, fx.dir)
			if err != nil {
				t.Fatal(err)
			}
			if s.Run.Jobs != tt.want {
				t.Errorf("jobs = %d, want %d", s.Run.Jobs, tt.want)
			}
			if s.Run.Old != fx.old || s.Run.Out != fx.out {
				t.Errorf("paths not resolved against manifest: %q %q", s.Run.Old, s.Run.Out)
			}
			if s.Run.OldTag != "old" || s.Run.NewTag != "new" {
				t.Errorf("default tags = %q %q", s.Run.OldTag, s.Run.NewTag)
			}
		})
	}
}

func TestResolveSettingsBadWorkersEnv(t *testing.T) {
	fx := newFixture(t)
	cmd := newRootCmd()
	if err := cmd.ParseFlags(fx.args()); err != nil {
		t.Fatal(err)
	}
	_, err := resolveSettings(cmd, func(string) string { return "many" }, fx.dir)
	var cfgErr *project.ConfigError
	if !errors.As(err, &cfgErr) || exitCode(err) != exitConfig {
		t.Fatalf("err = %v", err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{&project.ConfigError{Path: "x", Err: errors.New("bad")}, exitConfig},
		{fmt.Errorf("root: %w", &source.LoadError{Path: "x", Err: os.ErrNotExist}), exitConfig},
		{differ.ErrSameVersion, exitConfig},
		{usageError(errors.New("bad flag")), exitConfig},
		{&exitError{code: exitPartial, err: errPartial, silent: true}, exitPartial},
		{context.Canceled, exitPartial},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestUseProgressView(t *testing.T) {
	tests := []struct {
		ui    string
		quiet bool
		tty   bool
		want  bool
	}{
		{"auto", false, true, true},
		{"auto", false, false, false},
		{"", false, true, true},
		{"on", false, false, true},
		{"ALWAYS", false, false, true},
		{"on", true, true, false},
		{"auto", true, true, false},
		{"off", false, true, false},
		{"never", false, true, false},
	}
	for _, tt := range tests {
		mode, err := parseProgressMode(tt.ui)
		if err != nil {
			t.Fatalf("parseProgressMode(%q): %v", tt.ui, err)
		}
		if got := useProgressView(mode, tt.quiet, tt.tty); got != tt.want {
			t.Errorf("ui=%q quiet=%v tty=%v: got %v, want %v", tt.ui, tt.quiet, tt.tty, got, tt.want)
		}
	}
	if _, err := parseProgressMode("sometimes"); err == nil || !strings.Contains(err.Error(), "--ui") {
		t.Errorf("bad mode error = %v", err)
	}
}

func TestTokenizeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.zig")
	writeFile(t, path, "pub fn f() void {}\n")
	code, stdout, stderr := run(t, []string{"tokenize", path})
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "pub") || !strings.Contains(stdout, "1:1") {
		t.Errorf("stdout:\n%s", stdout)
	}
}

func TestDeclsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.zig")
	writeFile(t, path, "pub fn f(x: u8) !void {}\nfn hidden() void {}\n")

	code, stdout, _ := run(t, []string{"decls", path})
	if code != exitOK || !strings.Contains(stdout, "fn f(x: u8) !void") || strings.Contains(stdout, "hidden") {
		t.Fatalf("exit %d, stdout:\n%s", code, stdout)
	}
	code, stdout, _ = run(t, []string{"decls", "--all", "--format", "json", path})
	if code != exitOK || !strings.Contains(stdout, `"name": "hidden"`) {
		t.Fatalf("exit %d, stdout:\n%s", code, stdout)
	}
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := run(t, []string{"version", "--color", "off"})
	if code != exitOK || !strings.HasPrefix(stdout, "cardgen ") {
		t.Fatalf("exit %d, stdout %q", code, stdout)
	}
}
