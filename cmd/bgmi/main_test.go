package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
)

func fakeSources(t *testing.T) {
	t.Helper()
	airing := strconv.FormatInt(time.Now().Add(26*time.Hour).Unix(), 10)

	anilist := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"Page":{"pageInfo":{"hasNextPage":false},"airingSchedules":[
			{"airingAt":` + airing + `,"episode":8,"media":{"id":1,"title":{"romaji":"Sousou no Frieren"}}}
		]}}}`))
	}))
	t.Cleanup(anilist.Close)

	nyaa := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("p") != "" && r.URL.Query().Get("p") != "1" {
			_, _ = w.Write([]byte(`<rss version="2.0"><channel></channel></rss>`))
			return
		}
		_, _ = w.Write([]byte(`<rss xmlns:nyaa="https://nyaa.si/xmlns/nyaa" version="2.0"><channel>` +
			`<item><title>[SubsPlease] Sousou no Frieren - 07 (1080p)</title><link>https://nyaa.si/download/7.torrent</link>` +
			`<pubDate>` + time.Now().UTC().Format(time.RFC1123Z) + `</pubDate></item>` +
			`<item><title>[SubsPlease] Sousou no Frieren - 08 (1080p)</title><link>https://nyaa.si/download/8.torrent</link>` +
			`<pubDate>` + time.Now().UTC().Format(time.RFC1123Z) + `</pubDate></item>` +
			`</channel></rss>`))
	}))
	t.Cleanup(nyaa.Close)

	dir := t.TempDir()
	t.Setenv("BGMI_PATH", dir)
	t.Setenv("BGMI_DB_PATH", filepath.Join(dir, "bgmi.db"))
	t.Setenv("BGMI_SCRIPTS_DIR", filepath.Join(dir, "scripts"))
	t.Setenv("BGMI_LOCK_PATH", filepath.Join(dir, "bgmi.lock"))
	t.Setenv("BGMI_ANILIST_URL", anilist.URL)
	t.Setenv("BGMI_NYAA_URL", nyaa.URL)
	t.Setenv("BGMI_PROBE_URL", anilist.URL)
	t.Setenv("BGMI_REQUESTS_PER_SECOND", "1000")
	t.Setenv("NO_COLOR", "1")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_CalendarFollowAndMark(t *testing.T) {
	fakeSources(t)

	out, err := runCLI(t, "cal")
	if err != nil {
		t.Fatalf("cal: %v", err)
	}
	if !strings.Contains(out, "Sousou no Frieren") {
		t.Fatalf("expected show in calendar, got:\n%s", out)
	}

	if _, err := runCLI(t, "add", "Sousou no Frieren", "--episode", "3"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err = runCLI(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Sousou no Frieren(3)") {
		t.Fatalf("expected followed show with episode, got:\n%s", out)
	}

	if _, err := runCLI(t, "mark", "Sousou no Frieren", "6"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	out, err = runCLI(t, "update")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !strings.Contains(out, "Sousou no Frieren") || !strings.Contains(out, "8") {
		t.Fatalf("expected update row, got:\n%s", out)
	}

	if _, err := runCLI(t, "mark", "Sousou no Frieren", "six"); err == nil {
		t.Fatalf("expected invalid episode error")
	}
}

func TestCLI_FilterMergesChangedFlags(t *testing.T) {
	fakeSources(t)

	if _, err := runCLI(t, "cal"); err != nil {
		t.Fatalf("cal: %v", err)
	}
	if _, err := runCLI(t, "add", "Sousou no Frieren"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := runCLI(t, "filter", "Sousou no Frieren", "--include", "1080p"); err != nil {
		t.Fatalf("filter: %v", err)
	}
	out, err := runCLI(t, "filter", "Sousou no Frieren", "--exclude", "720p")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if !strings.Contains(out, "include: 1080p") || !strings.Contains(out, "exclude: 720p") {
		t.Fatalf("expected merged filter, got:\n%s", out)
	}
}

func TestCLI_AddUnknownShow(t *testing.T) {
	fakeSources(t)

	_, err := runCLI(t, "add", "Nope")
	if !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCLI_Search(t *testing.T) {
	fakeSources(t)

	out, err := runCLI(t, "search", "Frieren", "--count", "5")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Sousou no Frieren - 07") || !strings.Contains(out, "Sousou no Frieren - 08") {
		t.Fatalf("expected both releases, got:\n%s", out)
	}
}

func TestCLI_ScriptDownloads(t *testing.T) {
	fakeSources(t)

	dir := os.Getenv("BGMI_SCRIPTS_DIR")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	script := `bangumi_name = "Local Show"
update_time = "Mon"

[downloads]
"Local Show - 02" = "magnet:?xt=urn:btih:two"
"Local Show - 01" = "magnet:?xt=urn:btih:one"
`
	if err := os.WriteFile(filepath.Join(dir, "local.toml"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "script", "downloads", "Local Show")
	if err != nil {
		t.Fatalf("script downloads: %v", err)
	}
	want := "1\tmagnet:?xt=urn:btih:one\n2\tmagnet:?xt=urn:btih:two\n"
	if out != want {
		t.Fatalf("unexpected output:\n%q", out)
	}
}

func TestCLI_Version(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "bgmi ") {
		t.Fatalf("unexpected version output %q", out)
	}
}
