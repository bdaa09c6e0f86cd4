package ports

import (
	"context"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
)

type BangumiRepository interface {
	// Upsert insère la série ou met à jour ses métadonnées source.
	// Status, Episode et SubtitleGroup d'une ligne existante sont conservés.
	Upsert(ctx context.Context, b domain.Bangumi) (domain.Bangumi, error)
	Get(ctx context.Context, name string) (domain.Bangumi, error)
	// List returns rows in insertion order; no status means every status.
	List(ctx context.Context, statuses ...domain.Status) ([]domain.Bangumi, error)
	UpdateProgress(ctx context.Context, name string, status domain.Status, episode int) (domain.Bangumi, error)
	SetSubtitleGroup(ctx context.Context, name string, ids []string) (domain.Bangumi, error)
	// DeleteUnfollowed drops every row the user is not tracking.
	DeleteUnfollowed(ctx context.Context) error
}

type FilterRepository interface {
	// Get returns ErrNotFound when no filter is configured for the show.
	Get(ctx context.Context, bangumiName string) (domain.Filter, error)
	Put(ctx context.Context, f domain.Filter) (domain.Filter, error)
}

type SubtitleRepository interface {
	// Ensure stores the group unless a group with the same id exists.
	Ensure(ctx context.Context, g domain.SubtitleGroup) error
	// Names resolves ids in the given order, skipping unknown ids.
	Names(ctx context.Context, ids []string) ([]domain.SubtitleGroup, error)
	List(ctx context.Context) ([]domain.SubtitleGroup, error)
}
