package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/pick/internal/window"
)

func labels(items []window.Item[string]) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		in   string
		want window.Item[string]
		ok   bool
	}{
		{"plain", window.Item[string]{Label: "plain", Value: "plain"}, true},
		{"  padded  ", window.Item[string]{Label: "  padded  ", Value: "  padded  "}, true},
		{"Web server\tweb-01", window.Item[string]{Label: "Web server", Value: "web-01"}, true},
		{"a\tb\tc", window.Item[string]{Label: "a", Value: "b\tc"}, true},
		{"\tonly-value", window.Item[string]{Label: "only-value", Value: "only-value"}, true},
		{"only-label\t", window.Item[string]{Label: "only-label", Value: "only-label"}, true},
		{"windows\r", window.Item[string]{Label: "windows", Value: "windows"}, true},
		{"   ", window.Item[string]{}, false},
		{"", window.Item[string]{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseLine(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("ParseLine(%q) = %+v, %v, want %+v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestReadLines(t *testing.T) {
	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		if i == 5 {
			content.WriteString("\n")
		}
		all = append(all, line)
	}

	tests := []struct {
		name  string
		limit int
		tail  bool
		want  []string
	}{
		{"all (0)", 0, false, all},
		{"all (negative)", -1, true, all},
		{"head 3", 3, false, all[:3]},
		{"tail 4", 4, true, all[6:]},
		{"tail larger than input", 50, true, all},
		{"head larger than input", 50, false, all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLines(strings.NewReader(content.String()), tt.limit, tt.tail)
			if err != nil {
				t.Fatalf("ReadLines returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, labels(got)); diff != "" {
				t.Fatalf("ReadLines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	items, err := ReadFile(filepath.Join(dir, "missing.txt"), 0, false)
	if err != nil || items != nil {
		t.Fatalf("ReadFile(missing) = %v, %v, want nil, nil", items, err)
	}

	path := filepath.Join(dir, "hosts.txt")
	if err := os.WriteFile(path, []byte("db\tdb-01\nweb\tweb-01\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	items, err = File{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("File.Load returned error: %v", err)
	}
	want := []window.Item[string]{{Label: "db", Value: "db-01"}, {Label: "web", Value: "web-01"}}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("File.Load mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadFile(dir, 0, false); err == nil {
		t.Fatalf("ReadFile(directory) returned nil error")
	}
}

func TestStatic_LoadReturnsCopy(t *testing.T) {
	s := Static{{Label: "a", Value: "a"}}
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Static.Load returned error: %v", err)
	}
	got[0].Label = "mutated"
	if s[0].Label != "a" {
		t.Fatalf("Static.Load should return a copy")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Load(ctx); err == nil {
		t.Fatalf("Static.Load with cancelled context returned nil error")
	}
}

func TestDecodeItems(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []window.Item[string]
	}{
		{
			name: "object",
			body: `{"items":[{"label":"Alpha","value":"a"},{"label":"Beta","value":2}]}`,
			want: []window.Item[string]{{Label: "Alpha", Value: "a"}, {Label: "Beta", Value: "2"}},
		},
		{
			name: "bare array of strings",
			body: ` ["x", "y"] `,
			want: []window.Item[string]{{Label: "x", Value: "x"}, {Label: "y", Value: "y"}},
		},
		{
			name: "missing label and value",
			body: `[{"value":12.50},{"label":"only"},{"label":"","value":null}]`,
			want: []window.Item[string]{{Label: "12.50", Value: "12.50"}, {Label: "only", Value: "only"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeItems([]byte(tt.body))
			if err != nil {
				t.Fatalf("decodeItems returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("decodeItems mismatch (-want +got):\n%s", diff)
			}
		})
	}

	for _, bad := range []string{`{"items":[{"label":"a","value":{}}]}`, `[{"label":"a","value":true}]`, `{not-json`} {
		if _, err := decodeItems([]byte(bad)); err == nil {
			t.Fatalf("decodeItems(%s) returned nil error", bad)
		}
	}
}

func TestParseEndpoint(t *testing.T) {
	u, err := parseEndpoint(" 127.0.0.1:7487/api/items?x=1#frag ")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	if u.String() != "http://127.0.0.1:7487/api/items?x=1" {
		t.Fatalf("parseEndpoint = %q", u.String())
	}

	for _, bad := range []string{"", "   ", "ftp://host/x", "http://"} {
		if _, err := parseEndpoint(bad); err == nil {
			t.Fatalf("parseEndpoint(%q) returned nil error", bad)
		}
	}
}

func TestClient_FetchItems(t *testing.T) {
	t.Parallel()

	var gotUserAgent, gotAccept, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"label":"one","value":1},{"label":"two","value":2},{"label":"three","value":3}]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api/items?env=prod", 2)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	items, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := []window.Item[string]{{Label: "one", Value: "1"}, {Label: "two", Value: "2"}}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("FetchItems mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(gotUserAgent, "pick/") {
		t.Fatalf("User-Agent = %q, want pick/*", gotUserAgent)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if gotQuery != "env=prod" {
		t.Fatalf("query = %q, want env=prod", gotQuery)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad-json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/broken":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/bad-json", 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchItems(context.Background()); err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchItems error = %v, want decode response error", err)
	}

	c, err = NewClient(server.URL+"/broken", 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchItems(context.Background()); err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchItems error = %v, want status 500 error", err)
	}

	var nilClient *Client
	if _, err := nilClient.FetchItems(context.Background()); err == nil {
		t.Fatalf("nil client FetchItems returned nil error")
	}
}
