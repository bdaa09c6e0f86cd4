// Package source assembles the concrete websites behind ports.Source.
package source

import (
	"context"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
)

// Base answers every request with nothing. Concrete sources embed it and
// override what they support.
type Base struct{}

func (Base) SearchByKeyword(ctx context.Context, keyword string, count int) ([]domain.Episode, error) {
	return []domain.Episode{}, nil
}

func (Base) FetchCalendar(ctx context.Context) ([]domain.Bangumi, []domain.SubtitleGroup, error) {
	return nil, nil, nil
}

func (Base) FetchEpisodes(ctx context.Context, keyword string, subtitleIDs []string, maxPage int) ([]domain.Episode, error) {
	return []domain.Episode{}, nil
}

var _ ports.Source = Base{}

// Composite reads the weekly calendar from one source and releases from
// another.
type Composite struct {
	Calendar ports.Source
	Releases ports.Source
}

func (c Composite) SearchByKeyword(ctx context.Context, keyword string, count int) ([]domain.Episode, error) {
	if c.Releases == nil {
		return Base{}.SearchByKeyword(ctx, keyword, count)
	}
	return c.Releases.SearchByKeyword(ctx, keyword, count)
}

func (c Composite) FetchCalendar(ctx context.Context) ([]domain.Bangumi, []domain.SubtitleGroup, error) {
	if c.Calendar == nil {
		return Base{}.FetchCalendar(ctx)
	}
	return c.Calendar.FetchCalendar(ctx)
}

func (c Composite) FetchEpisodes(ctx context.Context, keyword string, subtitleIDs []string, maxPage int) ([]domain.Episode, error) {
	if c.Releases == nil {
		return Base{}.FetchEpisodes(ctx, keyword, subtitleIDs, maxPage)
	}
	return c.Releases.FetchEpisodes(ctx, keyword, subtitleIDs, maxPage)
}

var _ ports.Source = Composite{}
