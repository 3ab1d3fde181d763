package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/pick/internal/window"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Window.ItemHeight != 1 || cfg.Window.Buffer != window.DefaultBuffer {
		t.Fatalf("Window = %+v, want height 1 buffer %d", cfg.Window, window.DefaultBuffer)
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "pick")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[window]\nbuffer = 2\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Window.Buffer != 2 {
		t.Fatalf("Buffer = %d, want 2", cfg.Window.Buffer)
	}
}

func TestLoad_ParsesWindowAndLists(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
[window]
item_height = 2
viewport_count = 12
buffer = 0
multi_select = true
match = "fuzzy"

[[list]]
name = "  hosts  "
path = "  ~/hosts.txt  "
tail = true

[[list]]
name = "services"
url = " http://127.0.0.1:7487/api/items "
poll_seconds = 30
max_items = 50
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	wantWindow := Window{ItemHeight: 2, ViewportCount: 12, Buffer: 0, MultiSelect: true, Match: window.MatchFuzzy}
	if diff := cmp.Diff(wantWindow, cfg.Window); diff != "" {
		t.Fatalf("Window mismatch (-want +got):\n%s", diff)
	}

	wantLists := []List{
		{Name: "hosts", Path: filepath.Join(home, "hosts.txt"), Tail: true, MaxItems: DefaultMaxItems},
		{Name: "services", URL: "http://127.0.0.1:7487/api/items", MaxItems: 50, PollEvery: 30 * time.Second},
	}
	if diff := cmp.Diff(wantLists, cfg.Lists); diff != "" {
		t.Fatalf("Lists mismatch (-want +got):\n%s", diff)
	}
	if cfg.Lists[0].Remote() || !cfg.Lists[1].Remote() {
		t.Fatalf("Remote flags wrong: %+v", cfg.Lists)
	}
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero height", "[window]\nitem_height = 0\n", "item_height"},
		{"negative viewport", "[window]\nviewport_count = -1\n", "viewport_count"},
		{"negative buffer", "[window]\nbuffer = -3\n", "buffer"},
		{"unknown match", "[window]\nmatch = \"regex\"\n", "unknown mode"},
		{"unnamed list", "[[list]]\npath = \"/tmp/x\"\n", "name is empty"},
		{"no source", "[[list]]\nname = \"a\"\n", "set path or url"},
		{"both sources", "[[list]]\nname = \"a\"\npath = \"/tmp/x\"\nurl = \"http://x\"\n", "exclusive"},
		{"duplicate", "[[list]]\nname = \"a\"\npath = \"/x\"\n[[list]]\nname = \"a\"\npath = \"/y\"\n", "duplicate"},
		{"negative poll", "[[list]]\nname = \"a\"\nurl = \"http://x\"\npoll_seconds = -1\n", "poll_seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, `[window`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
