package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBangumiRepository_UpsertKeepsTracking(t *testing.T) {
	ctx := context.Background()
	repo := NewBangumiRepository(openTestDB(t).SQL)

	created, err := repo.Upsert(ctx, domain.Bangumi{Name: "Frieren", Keyword: "frieren", UpdateTime: "Fri"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.Status != domain.StatusNormal {
		t.Fatalf("status: want normal, got %q", created.Status)
	}

	if _, err := repo.UpdateProgress(ctx, "Frieren", domain.StatusFollowed, 7); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if _, err := repo.SetSubtitleGroup(ctx, "Frieren", []string{"1", "2"}); err != nil {
		t.Fatalf("SetSubtitleGroup: %v", err)
	}

	again, err := repo.Upsert(ctx, domain.Bangumi{Name: "Frieren", Keyword: "sousou", UpdateTime: "Sat"})
	if err != nil {
		t.Fatalf("Upsert(again): %v", err)
	}
	if again.ID != created.ID {
		t.Fatalf("id changed: %q -> %q", created.ID, again.ID)
	}
	if again.UpdateTime != "Sat" || again.Keyword != "sousou" {
		t.Fatalf("metadata not refreshed: %+v", again)
	}
	if again.Status != domain.StatusFollowed || again.Episode != 7 || again.SubtitleGroup != "1, 2" {
		t.Fatalf("tracking lost: %+v", again)
	}
}

func TestBangumiRepository_ListOrderAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewBangumiRepository(openTestDB(t).SQL)

	for _, name := range []string{"C", "A", "B"} {
		if _, err := repo.Upsert(ctx, domain.Bangumi{Name: name, UpdateTime: "Mon"}); err != nil {
			t.Fatalf("Upsert(%s): %v", name, err)
		}
	}
	if _, err := repo.UpdateProgress(ctx, "A", domain.StatusUpdated, 3); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].Name != "C" || all[1].Name != "A" || all[2].Name != "B" {
		t.Fatalf("unexpected order: %+v", all)
	}

	tracked, err := repo.List(ctx, domain.StatusFollowed, domain.StatusUpdated)
	if err != nil {
		t.Fatalf("List(tracked): %v", err)
	}
	if len(tracked) != 1 || tracked[0].Name != "A" {
		t.Fatalf("unexpected tracked: %+v", tracked)
	}

	if err := repo.DeleteUnfollowed(ctx); err != nil {
		t.Fatalf("DeleteUnfollowed: %v", err)
	}
	left, _ := repo.List(ctx)
	if len(left) != 1 || left[0].Name != "A" {
		t.Fatalf("unexpected rows after delete: %+v", left)
	}
}

func TestBangumiRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewBangumiRepository(openTestDB(t).SQL)

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Get: want ErrNotFound, got %v", err)
	}
	if _, err := repo.UpdateProgress(ctx, "missing", domain.StatusFollowed, 0); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("UpdateProgress: want ErrNotFound, got %v", err)
	}
}
