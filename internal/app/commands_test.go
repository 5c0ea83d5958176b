package app

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/tabby/internal/dispatcher"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestSimpleCommands(t *testing.T) {
	tests := []struct {
		line   string
		status string
	}{
		{"!hi", "Hello!"},
		{"!version", "test"},
		{"  !hi   extra args ", "Hello!"},
		{"!nope", "unknown command: !nope"},
		{"", "empty command"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			app := newTestApp(t, testOptions(t))
			_ = app.Submit(tt.line)
			if got := app.Context().Status; got != tt.status {
				t.Errorf("Status = %q, want %q", got, tt.status)
			}
		})
	}
}

func TestWriteAndRead(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	ctx := app.Context()
	path := filepath.Join(t.TempDir(), "out.txt")

	ctx.Tabs.Active().SetText("alpha\nbeta")
	if err := app.Submit("!w " + path); err != nil {
		t.Fatalf("!w error = %v", err)
	}
	if ctx.Status != "Success" {
		t.Errorf("Status = %q, want Success", ctx.Status)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "alpha\nbeta\n" {
		t.Errorf("file = %q", data)
	}
	if ctx.Tabs.Active().Changed {
		t.Error("tab still changed after !w")
	}

	// !w without an argument reuses the tab's filename.
	ctx.Tabs.Active().SetText("gamma")
	if err := app.Submit("!w"); err != nil {
		t.Fatalf("!w error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "gamma\n" {
		t.Errorf("file = %q, want gamma", data)
	}

	if err := app.Submit("!tab new"); err != nil {
		t.Fatal(err)
	}
	if err := app.Submit("!tab goto 2"); err != nil {
		t.Fatal(err)
	}
	if err := app.Submit("!r " + path); err != nil {
		t.Fatalf("!r error = %v", err)
	}
	if got := strings.Join(ctx.Tabs.Active().Lines(), "|"); got != "gamma" {
		t.Errorf("lines = %q, want gamma", got)
	}
}

func TestWriteWithoutFilename(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	err := app.Submit("!w")
	if !errors.Is(err, dispatcher.ErrUsage) {
		t.Fatalf("error = %v, want usage error", err)
	}
	if !strings.Contains(app.Context().Status, "usage: !w <file>") {
		t.Errorf("Status = %q", app.Context().Status)
	}
}

func TestReadRefusesUnsavedChanges(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	ctx := app.Context()
	path := filepath.Join(t.TempDir(), "in.txt")
	writeFile(t, path, "from disk\n")

	ctx.Tabs.Active().InsertRune('x')

	err := app.Submit("!r " + path)
	if !errors.Is(err, dispatcher.ErrState) {
		t.Fatalf("error = %v, want state error", err)
	}
	if !strings.Contains(ctx.Status, "current buffer isn't saved; !ri to ignore") {
		t.Errorf("Status = %q", ctx.Status)
	}
	if ctx.Tabs.Active().Line(0) != "x" {
		t.Errorf("buffer replaced despite refusal: %q", ctx.Tabs.Active().Lines())
	}

	if err := app.Submit("!ri " + path); err != nil {
		t.Fatalf("!ri error = %v", err)
	}
	if ctx.Tabs.Active().Line(0) != "from disk" {
		t.Errorf("lines = %q", ctx.Tabs.Active().Lines())
	}
	if ctx.Tabs.Active().Changed {
		t.Error("tab changed after !ri")
	}
}

func TestReadNew(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	ctx := app.Context()
	dir := t.TempDir()
	existing := filepath.Join(dir, "a.txt")
	writeFile(t, existing, "hello\n")

	if err := app.Submit("!rn " + existing); err != nil {
		t.Fatalf("!rn error = %v", err)
	}
	if ctx.Tabs.Len() != 2 || ctx.Tabs.ActiveIndex() != 1 {
		t.Fatalf("tabs = %d active = %d, want 2 and 1", ctx.Tabs.Len(), ctx.Tabs.ActiveIndex())
	}
	if ctx.Tabs.Active().Line(0) != "hello" {
		t.Errorf("lines = %q", ctx.Tabs.Active().Lines())
	}

	missing := filepath.Join(dir, "b.txt")
	err := app.Submit("!rn " + missing)
	if !errors.Is(err, dispatcher.ErrIO) {
		t.Fatalf("error = %v, want io error", err)
	}
	if ctx.Tabs.Len() != 3 {
		t.Fatalf("tabs = %d, want 3", ctx.Tabs.Len())
	}
	if ctx.Tabs.Active().Filename != missing {
		t.Errorf("Filename = %q, want %q", ctx.Tabs.Active().Filename, missing)
	}
}

func TestQuit(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	ctx := app.Context()

	if err := app.Submit("!tab new"); err != nil {
		t.Fatal(err)
	}
	second, err := ctx.Tabs.At(1)
	if err != nil {
		t.Fatal(err)
	}
	second.InsertRune('a')

	err = app.Submit("!q")
	if !errors.Is(err, dispatcher.ErrState) {
		t.Fatalf("error = %v, want state error", err)
	}
	if ctx.Quit {
		t.Fatal("quit with unsaved changes")
	}
	if !strings.Contains(ctx.Status, "tab 2 has unsaved changes") {
		t.Errorf("Status = %q", ctx.Status)
	}

	if err := app.Submit("!qi"); err != nil {
		t.Fatal(err)
	}
	if !ctx.Quit {
		t.Error("!qi did not quit")
	}
}

func TestQuitClean(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	if err := app.Submit("!q"); err != nil {
		t.Fatalf("!q error = %v", err)
	}
	if !app.Context().Quit {
		t.Error("!q did not quit")
	}
}

func TestTabCommands(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	ctx := app.Context()
	tabs := ctx.Tabs

	for i := 0; i < 3; i++ {
		if err := app.Submit("!tab new"); err != nil {
			t.Fatal(err)
		}
	}
	if tabs.Len() != 4 || tabs.ActiveIndex() != 0 {
		t.Fatalf("tabs = %d active = %d, want 4 and 0", tabs.Len(), tabs.ActiveIndex())
	}

	steps := []struct {
		line       string
		wantErr    error
		wantActive int
		wantLen    int
	}{
		{"!tab goto 3", nil, 2, 4},
		{"!tab rm 1", nil, 1, 3},
		{"!tab next", nil, 2, 3},
		{"!tab next", dispatcher.ErrState, 2, 3},
		{"!tab prev", nil, 1, 3},
		{"!tab goto 9", dispatcher.ErrState, 1, 3},
		{"!tab goto two", dispatcher.ErrUsage, 1, 3},
		{"!tab rm 2", nil, 1, 2},
		{"!tab bogus", dispatcher.ErrUsage, 1, 2},
	}
	for _, s := range steps {
		err := app.Submit(s.line)
		if s.wantErr == nil && err != nil {
			t.Fatalf("%s: error = %v", s.line, err)
		}
		if s.wantErr != nil && !errors.Is(err, s.wantErr) {
			t.Fatalf("%s: error = %v, want %v", s.line, err, s.wantErr)
		}
		if tabs.ActiveIndex() != s.wantActive || tabs.Len() != s.wantLen {
			t.Fatalf("%s: active = %d len = %d, want %d and %d",
				s.line, tabs.ActiveIndex(), tabs.Len(), s.wantActive, s.wantLen)
		}
	}

	if err := app.Submit("!tab rename 1 my notes"); err != nil {
		t.Fatal(err)
	}
	first, err := tabs.At(0)
	if err != nil {
		t.Fatal(err)
	}
	if first.Title() != "my notes" {
		t.Errorf("Title = %q, want my notes", first.Title())
	}
}

func TestTabRemoveLast(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	tabs := app.Context().Tabs
	tabs.Active().InsertRune('z')

	if err := app.Submit("!tab rm 1"); err != nil {
		t.Fatal(err)
	}
	if tabs.Len() != 1 {
		t.Fatalf("tabs = %d, want 1", tabs.Len())
	}
	if tabs.Active().Changed || tabs.Active().Line(0) != "" {
		t.Error("replacement tab is not empty")
	}
}

func TestTabSidePanel(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	ctx := app.Context()

	_ = app.Submit("!tab left")
	if !ctx.ShowSide {
		t.Fatal("side panel not shown")
	}
	if ctx.Editing() != ctx.Tabs.Active() {
		t.Error("editing the side panel before leftuse")
	}
	_ = app.Submit("!tab leftuse")
	if ctx.Editing() != ctx.Side {
		t.Error("leftuse did not focus the side panel")
	}
	_ = app.Submit("!tab left")
	if ctx.Editing() != ctx.Tabs.Active() {
		t.Error("hidden side panel still receives edits")
	}
}

func TestTabShowDiff(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	ctx := app.Context()

	err := app.Submit("!tab showdiff")
	if !errors.Is(err, dispatcher.ErrState) {
		t.Fatalf("error = %v, want state error", err)
	}
	if !strings.Contains(ctx.Status, "no edit was made") {
		t.Errorf("Status = %q", ctx.Status)
	}

	ctx.Tabs.Active().InsertRune('q')
	if err := app.Submit("!tab showdiff"); err != nil {
		t.Fatalf("showdiff error = %v", err)
	}
	if ctx.Tabs.Len() != 2 || ctx.Tabs.Active().Title() != "Last edit" {
		t.Fatalf("active tab = %q of %d", ctx.Tabs.Active().Title(), ctx.Tabs.Len())
	}
	if ctx.Tabs.Active().Changed {
		t.Error("diff tab is marked changed")
	}
}

func TestAliasCommands(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	ctx := app.Context()

	if err := app.Submit("!alias new greet !hi"); err != nil {
		t.Fatal(err)
	}
	if err := app.Submit("greet"); err != nil {
		t.Fatalf("greet error = %v", err)
	}
	if ctx.Status != "Hello!" {
		t.Errorf("Status = %q, want Hello!", ctx.Status)
	}

	if err := app.Submit("!alias rm greet"); err != nil {
		t.Fatal(err)
	}
	err := app.Submit("greet")
	if !errors.Is(err, dispatcher.ErrLookup) {
		t.Errorf("error = %v, want lookup error", err)
	}

	err = app.Submit("!alias rm greet")
	if !errors.Is(err, dispatcher.ErrLookup) {
		t.Errorf("error = %v, want lookup error", err)
	}
	for _, line := range []string{"!alias", "!alias new x", "!alias rm", "!alias what"} {
		if err := app.Submit(line); !errors.Is(err, dispatcher.ErrUsage) {
			t.Errorf("%s: error = %v, want usage error", line, err)
		}
	}
}

func TestAliasList(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	ctx := app.Context()

	if err := app.Submit("!alias list"); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(ctx.Tabs.Active().Lines(), "|"); got != "no aliases defined" {
		t.Errorf("empty list = %q", got)
	}
	if ctx.Status != "0 alias(es) defined" {
		t.Errorf("Status = %q", ctx.Status)
	}

	_ = app.Submit("!alias new ls !exec ls -l")
	_ = app.Submit("!alias new greet !hi")
	if err := app.Submit("!alias list"); err != nil {
		t.Fatal(err)
	}
	active := ctx.Tabs.Active()
	if active.Title() != "Aliases" || active.Changed {
		t.Errorf("tab = %q changed = %v", active.Title(), active.Changed)
	}
	if got := strings.Join(active.Lines(), "|"); got != "greet = !hi|ls = !exec ls -l" {
		t.Errorf("lines = %q", got)
	}
	if ctx.Status != "2 alias(es) defined" {
		t.Errorf("Status = %q", ctx.Status)
	}
	if ctx.Tabs.Len() != 3 {
		t.Errorf("tabs = %d, want 3", ctx.Tabs.Len())
	}
}

func TestHistoryRecordsSubmittedLines(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	_ = app.Submit("!hi")
	_ = app.Submit("!nope")
	_ = app.Submit("   ")

	h := app.Context().History
	if h.Len() != 2 {
		t.Fatalf("history = %d, want 2", h.Len())
	}
	if got := h.Previous(); got != "!nope" {
		t.Errorf("Previous() = %q, want !nope", got)
	}
}

func TestExecCommands(t *testing.T) {
	requireShell(t)
	app := newTestApp(t, testOptions(t))
	ctx := app.Context()

	if err := app.Submit("!exec echo hi there"); err != nil {
		t.Fatalf("!exec error = %v", err)
	}
	if got := strings.TrimSpace(ctx.Status); got != "hi there" {
		t.Errorf("Status = %q, want hi there", got)
	}

	if err := app.Submit("!exec true"); err != nil {
		t.Fatal(err)
	}
	if ctx.Status != "Success" {
		t.Errorf("Status = %q, want Success", ctx.Status)
	}

	if err := app.Submit("!execn printf 'a\\nb\\n'"); err != nil {
		t.Fatalf("!execn error = %v", err)
	}
	out := ctx.Tabs.Active()
	if out.Title() != "Output" || ctx.Tabs.Len() != 2 {
		t.Fatalf("active tab = %q of %d", out.Title(), ctx.Tabs.Len())
	}
	if got := strings.Join(out.Lines(), "|"); got != "a|b" {
		t.Errorf("lines = %q, want a|b", got)
	}
	if out.Changed {
		t.Error("output tab is marked changed")
	}
}

func TestExecIntoCurrentTab(t *testing.T) {
	requireShell(t)
	app := newTestApp(t, testOptions(t))
	ctx := app.Context()
	ctx.Tabs.Active().InsertRune('x')

	err := app.Submit("!execn ~cur echo replaced")
	if !errors.Is(err, dispatcher.ErrState) {
		t.Fatalf("error = %v, want state error", err)
	}
	if ctx.Tabs.Active().Line(0) != "x" {
		t.Fatalf("tab replaced despite refusal")
	}

	if err := app.Submit("!execn ~cur ~ignore echo replaced"); err != nil {
		t.Fatalf("error = %v", err)
	}
	if ctx.Tabs.Len() != 1 || ctx.Tabs.Active().Line(0) != "replaced" {
		t.Errorf("tabs = %d lines = %q", ctx.Tabs.Len(), ctx.Tabs.Active().Lines())
	}
}

func TestExecFile(t *testing.T) {
	requireShell(t)
	app := newTestApp(t, testOptions(t))
	ctx := app.Context()

	script := filepath.Join(t.TempDir(), "greet.sh")
	writeFile(t, script, "#!/bin/sh\necho \"hello $1\"\n")
	if err := os.Chmod(script, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := app.Submit("!exec_f " + script + " world"); err != nil {
		t.Fatalf("!exec_f error = %v", err)
	}
	if got := strings.TrimSpace(ctx.Status); got != "hello world" {
		t.Errorf("Status = %q", got)
	}

	if err := app.Submit("!execn_f " + script + " tab"); err != nil {
		t.Fatalf("!execn_f error = %v", err)
	}
	if ctx.Tabs.Active().Line(0) != "hello tab" {
		t.Errorf("lines = %q", ctx.Tabs.Active().Lines())
	}

	err := app.Submit("!exec_f " + filepath.Join(t.TempDir(), "missing.sh"))
	if !errors.Is(err, dispatcher.ErrIO) {
		t.Errorf("error = %v, want io error", err)
	}
}

func TestExecUsage(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	for _, line := range []string{"!exec", "!exec_f", "!execn", "!execn ~cur", "!execn_f ~cur ~ignore"} {
		if err := app.Submit(line); !errors.Is(err, dispatcher.ErrUsage) {
			t.Errorf("%s: error = %v, want usage error", line, err)
		}
	}
}

func TestPluginCommands(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	ctx := app.Context()
	path := filepath.Join(t.TempDir(), "demo.lua")
	writeFile(t, path, helloPlugin)

	if err := app.Submit("!plugin state"); err != nil {
		t.Fatal(err)
	}
	if ctx.Status != "plugin host: running" {
		t.Errorf("Status = %q", ctx.Status)
	}

	if err := app.Submit("!plugin load " + path); err != nil {
		t.Fatalf("load error = %v", err)
	}
	if ctx.Status != "plugin demo loaded with id 1" {
		t.Errorf("Status = %q", ctx.Status)
	}

	if err := app.Submit("hello"); err != nil {
		t.Fatalf("hello error = %v", err)
	}
	if ctx.Status != "Hello from demo!" {
		t.Errorf("Status = %q", ctx.Status)
	}

	if err := app.Submit("!plugin info demo"); err != nil {
		t.Fatalf("info error = %v", err)
	}
	info := ctx.Tabs.Active()
	if info.Title() != "Plugin demo" {
		t.Errorf("Title = %q", info.Title())
	}
	if got := strings.Join(info.Lines(), "\n"); !strings.Contains(got, "Author: tester") || !strings.Contains(got, "Commands: hello") {
		t.Errorf("info = %q", got)
	}

	if err := app.Submit("!plugin info-id 1"); err != nil {
		t.Fatalf("info-id error = %v", err)
	}
	if err := app.Submit("!plugin list"); err != nil {
		t.Fatal(err)
	}
	if got := ctx.Tabs.Active().Line(0); !strings.HasPrefix(got, "1: demo") {
		t.Errorf("list = %q", ctx.Tabs.Active().Lines())
	}

	if err := app.Submit("!plugin unload demo"); err != nil {
		t.Fatalf("unload error = %v", err)
	}
	if ctx.Status != "plugin demo unloaded" {
		t.Errorf("Status = %q", ctx.Status)
	}

	// The command outlives its plugin and fails cleanly.
	err := app.Submit("hello")
	if !errors.Is(err, dispatcher.ErrLookup) {
		t.Errorf("hello after unload: error = %v, want lookup error", err)
	}
}

func TestPluginCommandErrors(t *testing.T) {
	app := newTestApp(t, testOptions(t))

	tests := []struct {
		line string
		kind error
	}{
		{"!plugin", dispatcher.ErrUsage},
		{"!plugin load", dispatcher.ErrUsage},
		{"!plugin info", dispatcher.ErrUsage},
		{"!plugin info nobody", dispatcher.ErrLookup},
		{"!plugin info-id x", dispatcher.ErrUsage},
		{"!plugin unload-id 42", dispatcher.ErrLookup},
		{"!plugin load " + filepath.Join(t.TempDir(), "none.lua"), dispatcher.ErrIO},
	}
	for _, tt := range tests {
		if err := app.Submit(tt.line); !errors.Is(err, tt.kind) {
			t.Errorf("%s: error = %v, want %v", tt.line, err, tt.kind)
		}
	}

	if err := app.Submit("!plugin list"); err != nil {
		t.Fatal(err)
	}
	if got := app.Context().Tabs.Active().Line(0); got != "no plugins loaded" {
		t.Errorf("list = %q", got)
	}
}

func TestPluginScriptError(t *testing.T) {
	app := newTestApp(t, testOptions(t))
	path := filepath.Join(t.TempDir(), "fail.lua")
	writeFile(t, path, `
tabby.register_command("boom", function(args)
	error("kaboom")
end)
`)
	if err := app.Submit("!plugin load " + path); err != nil {
		t.Fatal(err)
	}

	err := app.Submit("boom")
	if !errors.Is(err, dispatcher.ErrScript) {
		t.Fatalf("error = %v, want script error", err)
	}
	if !strings.Contains(app.Context().Status, "kaboom") {
		t.Errorf("Status = %q", app.Context().Status)
	}
}

func TestReadOnlyTab(t *testing.T) {
	got := readOnlyTab("Output", []string{"a", "b"})
	if got.Changed {
		t.Error("readOnlyTab is marked changed")
	}
	if got.Title() != "Output" || got.LineCount() != 2 {
		t.Errorf("Title = %q lines = %d", got.Title(), got.LineCount())
	}
}
