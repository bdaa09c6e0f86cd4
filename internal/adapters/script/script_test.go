package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
	"github.com/rs/zerolog"
)

func writeScript(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoader_Entries(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "a_quiz.toml", `
bangumi_name = "Quiz King"
update_time = "tue"
episode = 2
`)
	writeScript(t, dir, "b_bad_day.toml", `
bangumi_name = "Broken"
update_time = "Someday"
`)
	writeScript(t, dir, "c_normal.toml", `
bangumi_name = "Plain"
update_time = "Sun"
status = "normal"
`)
	writeScript(t, dir, "d_garbage.toml", `bangumi_name = `)
	writeScript(t, dir, "notes.txt", `ignored`)

	entries, err := NewLoader(zerolog.Nop(), dir).Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	quiz := entries[0]
	if quiz.Name != "Quiz King" || quiz.UpdateTime != "Tue" || quiz.Status != domain.StatusFollowed {
		t.Fatalf("unexpected entry: %+v", quiz)
	}
	if quiz.Episode == nil || *quiz.Episode != 2 {
		t.Fatalf("expected episode 2, got %v", quiz.Episode)
	}
	if entries[1].Name != "Plain" || entries[1].Status != domain.StatusNormal {
		t.Fatalf("unexpected entry: %+v", entries[1])
	}
}

func TestLoader_Downloads(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "quiz.toml", `
bangumi_name = "Quiz King"
update_time = "Tue"

[downloads]
"Quiz King 第1集" = "https://example.org/1.mp4"
"Quiz King [02]" = "https://example.org/2.mp4"
`)

	l := NewLoader(zerolog.Nop(), dir)
	links, err := l.Downloads(context.Background(), "Quiz King")
	if err != nil {
		t.Fatalf("Downloads: %v", err)
	}
	if links[1] != "https://example.org/1.mp4" || links[2] != "https://example.org/2.mp4" {
		t.Fatalf("unexpected links: %v", links)
	}

	if _, err := l.Downloads(context.Background(), "Unknown"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoader_MissingDir(t *testing.T) {
	entries, err := NewLoader(zerolog.Nop(), filepath.Join(t.TempDir(), "absent")).Entries(context.Background())
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected no entries, got %v, %v", entries, err)
	}
}
