package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vicore/internal/editor"
	"github.com/dshills/vicore/internal/input/key"
)

func newApp(t *testing.T, opts Options) *Application {
	t.Helper()
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = app.Shutdown(context.Background()) })
	return app
}

func TestNewApplication(t *testing.T) {
	app := newApp(t, Options{Lines: []string{"hello"}})

	if app.Session() == nil {
		t.Fatal("expected session to be initialized")
	}
	if !app.EventBus().IsRunning() {
		t.Error("expected event bus to be running")
	}
	if app.Options() == nil {
		t.Error("expected options store to be initialized")
	}
	if got := app.Session().Lines(); len(got) != 1 || got[0] != "hello" {
		t.Errorf("Lines() = %q, want [hello]", got)
	}
	if !app.Document().IsScratch() {
		t.Error("expected scratch document")
	}
}

func TestApplication_ShutdownIdempotent(t *testing.T) {
	app, err := New(Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown() failed: %v", err)
	}
	if app.EventBus().IsRunning() {
		t.Error("expected event bus to be stopped")
	}
	if err := app.Session().FeedKeys(context.Background(), "x"); !errors.Is(err, editor.ErrClosed) {
		t.Errorf("FeedKeys after shutdown = %v, want ErrClosed", err)
	}
}

func TestApplication_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vicore.toml")
	if err := os.WriteFile(path, []byte("tabstop = 4\nshiftwidth = 2\nexpandtab = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	app := newApp(t, Options{ConfigPath: path, Lines: []string{"a"}})

	if got := app.Options().TabStop(); got != 4 {
		t.Errorf("TabStop() = %d, want 4", got)
	}
	if err := app.RunKeys(context.Background(), ">>"); err != nil {
		t.Fatalf("RunKeys() failed: %v", err)
	}
	if got := app.Session().Lines()[0]; got != "  a" {
		t.Errorf("line = %q, want %q", got, "  a")
	}
}

func TestApplication_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vicore.toml")
	if err := os.WriteFile(path, []byte("tabstop = \"wide\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New(Options{ConfigPath: path})
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "config" {
		t.Fatalf("New() error = %v, want config InitError", err)
	}
}

func TestApplication_WatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vicore.toml")
	if err := os.WriteFile(path, []byte("tabstop = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	app := newApp(t, Options{ConfigPath: path, Watch: true})

	if err := os.WriteFile(path, []byte("tabstop = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(3 * time.Second)
	for app.Options().TabStop() != 3 {
		if time.Now().After(deadline) {
			t.Fatalf("TabStop() = %d after reload, want 3", app.Options().TabStop())
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestApplication_LogOutput(t *testing.T) {
	var buf bytes.Buffer
	newApp(t, Options{LogOutput: &buf, LogLevel: "info"})

	if !strings.Contains(buf.String(), "editing") {
		t.Errorf("log output %q lacks startup line", buf.String())
	}
}

func TestApplication_Run(t *testing.T) {
	app := newApp(t, Options{Lines: []string{"foo bar"}})

	keys := make(chan key.Event, 8)
	for _, r := range "dw" {
		keys <- key.Char(r)
	}
	close(keys)

	if err := app.Run(context.Background(), keys); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got := app.Session().Lines()[0]; got != "bar" {
		t.Errorf("line = %q, want bar", got)
	}
	if app.IsRunning() {
		t.Error("expected IsRunning() false after Run returns")
	}
	if m := app.Metrics().Snapshot(); m.Keys != 2 {
		t.Errorf("Keys = %d, want 2", m.Keys)
	}
}

func TestApplication_RunStopsOnQuit(t *testing.T) {
	app := newApp(t, Options{Lines: []string{"a"}})

	events, err := key.ParseSequence(":q!<CR>x")
	if err != nil {
		t.Fatal(err)
	}
	keys := make(chan key.Event, len(events))
	for _, e := range events {
		keys <- e
	}

	if err := app.Run(context.Background(), keys); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got := app.Session().Lines()[0]; got != "a" {
		t.Errorf("line = %q, keys after :q! should not run", got)
	}
}

func TestApplication_RunContextCancel(t *testing.T) {
	app := newApp(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := app.Run(ctx, make(chan key.Event)); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestApplication_RunScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()

	app := newApp(t, Options{Lines: []string{"abc"}})

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, ':', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, '!', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := app.RunScreen(ctx, screen); err != nil {
		t.Fatalf("RunScreen() failed: %v", err)
	}
	if got := app.Session().Lines()[0]; got != "bc" {
		t.Errorf("line = %q, want bc", got)
	}
}

func TestApplication_ExpressionRegister(t *testing.T) {
	app := newApp(t, Options{Lines: []string{""}})

	if err := app.RunKeys(context.Background(), "\"=p6*7<CR>"); err != nil {
		t.Fatalf("RunKeys() failed: %v", err)
	}
	if got := app.Session().Lines()[0]; got != "42" {
		t.Errorf("line = %q, want 42", got)
	}
}

func TestApplication_ReadOnly(t *testing.T) {
	app := newApp(t, Options{Lines: []string{"abc"}, ReadOnly: true})

	if err := app.RunKeys(context.Background(), "x"); err == nil {
		t.Error("expected error editing a read-only buffer")
	}
	if m := app.Metrics().Snapshot(); m.KeyErrors != 1 {
		t.Errorf("KeyErrors = %d, want 1", m.KeyErrors)
	}
}
