// Package filelock serializes calendar refreshes across processes.
package filelock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
	"github.com/gofrs/flock"
)

type Lock struct {
	path string
}

func New(path string) *Lock {
	return &Lock{path: path}
}

// Lock takes the lock without waiting: a refresh already running in another
// process yields ports.ErrLocked right away.
func (l *Lock) Lock(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	fl := flock.New(l.path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ports.ErrLocked
	}
	return func() { _ = fl.Unlock() }, nil
}

var _ ports.RefreshLock = (*Lock)(nil)
