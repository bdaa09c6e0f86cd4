package app

import (
	"context"
	"fmt"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
)

// Fetch downloads the weekly calendar from the source, records new subtitle
// groups and optionally saves every show. The result is grouped by weekday.
func (w *Website) Fetch(ctx context.Context, save bool) (domain.WeeklySchedule, error) {
	list, groups, err := w.source.FetchCalendar(ctx)
	if err != nil {
		return nil, err
	}

	if w.subtitles != nil {
		for _, g := range groups {
			if err := w.subtitles.Ensure(ctx, g); err != nil {
				return nil, fmt.Errorf("store subtitle group %s: %w", g.ID, err)
			}
		}
	}

	if len(list) == 0 {
		w.logger.Info().Msg("no result returned")
		return domain.WeeklySchedule{}, nil
	}

	out := domain.WeeklySchedule{}
	for _, b := range list {
		weekday, ok := domain.CanonicalWeekday(b.UpdateTime)
		if !ok {
			w.logger.Warn().Str("bangumi", b.Name).Str("update_time", b.UpdateTime).Msg("unknown weekday, skipped")
			continue
		}
		b.UpdateTime = weekday
		if b.Status == "" {
			b.Status = domain.StatusNormal
		}
		if save && w.bangumi != nil {
			stored, err := w.bangumi.Upsert(ctx, b)
			if err != nil {
				return nil, fmt.Errorf("save bangumi %s: %w", b.Name, err)
			}
			b = stored
		}
		out.Add(b.Entry())
	}
	return out, nil
}
