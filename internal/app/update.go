package app

import (
	"context"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
	"github.com/rs/zerolog"
)

type UpdateService struct {
	logger  zerolog.Logger
	site    *Website
	repo    ports.BangumiRepository
	bus     ports.EventBus
	maxPage int
}

func NewUpdateService(logger zerolog.Logger, site *Website, repo ports.BangumiRepository, bus ports.EventBus, maxPage int) *UpdateService {
	return &UpdateService{logger: logger, site: site, repo: repo, bus: bus, maxPage: maxPage}
}

type UpdateResult struct {
	Name     string         `json:"name"`
	Previous int            `json:"previous"`
	Latest   domain.Episode `json:"latest"`
	Updated  bool           `json:"updated"`
	Error    string         `json:"error,omitempty"`
}

// Update checks followed shows (or only names, when given) for a newer
// episode. A failing show is reported in its result and does not stop the run.
func (s *UpdateService) Update(ctx context.Context, names ...string) ([]UpdateResult, error) {
	targets, err := s.targets(ctx, names)
	if err != nil {
		return nil, err
	}

	results := make([]UpdateResult, 0, len(targets))
	for _, b := range targets {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		res := UpdateResult{Name: b.Name, Previous: b.Episode}
		best, data, err := s.site.GetMaximumEpisode(ctx, b, true, true, s.maxPage)
		if err != nil {
			s.logger.Warn().Err(err).Str("bangumi", b.Name).Msg("update failed")
			res.Error = err.Error()
			results = append(results, res)
			continue
		}
		res.Latest = best

		if ids := s.site.RememberGroups(ctx, data); len(ids) > 0 && domain.JoinSubtitleIDs(ids) != b.SubtitleGroup {
			if _, err := s.repo.SetSubtitleGroup(ctx, b.Name, ids); err != nil {
				return results, err
			}
		}

		if best.Number() > b.Episode {
			updated, err := s.repo.UpdateProgress(ctx, b.Name, domain.StatusUpdated, best.Number())
			if err != nil {
				return results, err
			}
			res.Updated = true
			s.logger.Info().Str("bangumi", b.Name).Int("episode", best.Number()).Msg("new episode")
			publishBangumi(s.bus, "bangumi.updated", updated)
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *UpdateService) targets(ctx context.Context, names []string) ([]domain.Bangumi, error) {
	if len(names) == 0 {
		return s.repo.List(ctx, domain.StatusFollowed, domain.StatusUpdated)
	}
	out := make([]domain.Bangumi, 0, len(names))
	for _, n := range names {
		b, err := s.repo.Get(ctx, n)
		if err != nil {
			return nil, err
		}
		if !b.Status.IsTracked() {
			return nil, invalidParams("bangumi " + b.Name + " is not followed")
		}
		out = append(out, b)
	}
	return out, nil
}
