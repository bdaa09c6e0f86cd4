package filelock

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
)

func TestLock_ExclusiveUntilReleased(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "refresh.lock")
	first := New(path)

	unlock, err := first.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}

	// Pas d'attente: le second appel échoue tout de suite.
	start := time.Now()
	if _, err := New(path).Lock(context.Background()); !errors.Is(err, ports.ErrLocked) {
		t.Fatalf("expected ErrLocked while held, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected an immediate failure, waited %s", elapsed)
	}

	unlock()
	unlock2, err := New(path).Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	unlock2()
}

func TestLock_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(filepath.Join(t.TempDir(), "refresh.lock")).Lock(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
