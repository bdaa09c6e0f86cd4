package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_MigratesOnceOnDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bgmi.db")

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	v, err := db.Version(ctx)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != 1 {
		t.Fatalf("expected schema version 1, got %d", v)
	}
	if _, err := NewBangumiRepository(db.SQL).List(ctx); err != nil {
		t.Fatalf("List on fresh db: %v", err)
	}
	_ = db.Close()

	// Réouverture: rien à réappliquer.
	db, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.SQL.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one applied migration, got %d", n)
	}
}

func TestUpSection(t *testing.T) {
	got := upSection("-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;\n")
	if strings.TrimSpace(got) != "CREATE TABLE a (x);" {
		t.Fatalf("unexpected up section %q", got)
	}
}
