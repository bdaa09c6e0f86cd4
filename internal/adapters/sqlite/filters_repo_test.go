package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
)

func TestFiltersRepository_GetPut(t *testing.T) {
	ctx := context.Background()
	repo := NewFiltersRepository(openTestDB(t).SQL)

	if _, err := repo.Get(ctx, "Frieren"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Get(empty): want ErrNotFound, got %v", err)
	}

	f, err := repo.Put(ctx, domain.Filter{BangumiName: "Frieren", Subtitle: "1, 2", Include: "1080", Regex: "^\\[A\\]"})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if f.Include != "1080" || f.Regex != "^\\[A\\]" {
		t.Fatalf("unexpected filter: %+v", f)
	}

	f.Exclude = "720"
	f.Include = ""
	if _, err := repo.Put(ctx, f); err != nil {
		t.Fatalf("Put(update): %v", err)
	}
	got, err := repo.Get(ctx, "Frieren")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Include != "" || got.Exclude != "720" || got.Subtitle != "1, 2" {
		t.Fatalf("unexpected filter after update: %+v", got)
	}
}

func TestSubtitlesRepository_EnsureAndNames(t *testing.T) {
	ctx := context.Background()
	repo := NewSubtitlesRepository(openTestDB(t).SQL)

	for _, g := range []domain.SubtitleGroup{{ID: "1", Name: "One"}, {ID: "2", Name: "Two"}, {ID: "1", Name: "Renamed"}} {
		if err := repo.Ensure(ctx, g); err != nil {
			t.Fatalf("Ensure: %v", err)
		}
	}

	names, err := repo.Names(ctx, []string{"2", "9", "1"})
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(names) != 2 || names[0].Name != "Two" || names[1].Name != "One" {
		t.Fatalf("unexpected names: %+v", names)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("want 2 groups, got %d", len(all))
	}
}
