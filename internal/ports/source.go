package ports

import (
	"context"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
)

// Source is a website providing the weekly calendar and episode releases.
type Source interface {
	SearchByKeyword(ctx context.Context, keyword string, count int) ([]domain.Episode, error)
	FetchCalendar(ctx context.Context) ([]domain.Bangumi, []domain.SubtitleGroup, error)
	// FetchEpisodes scopes the fetch to subtitleIDs when given, otherwise
	// scans up to maxPage pages.
	FetchEpisodes(ctx context.Context, keyword string, subtitleIDs []string, maxPage int) ([]domain.Episode, error)
}

// ScriptProvider supplies shows defined outside the source (user scripts).
type ScriptProvider interface {
	Entries(ctx context.Context) ([]domain.ShowEntry, error)
}

type Connectivity interface {
	Reachable(ctx context.Context) bool
}

type RefreshLock interface {
	// Lock blocks until the lock is held or ctx is done.
	Lock(ctx context.Context) (unlock func(), err error)
}
