package app

import (
	"context"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
)

const defaultTitleFilter = "(.*)"

// Search runs a keyword search on the source, keeps titles matching filter
// at their start and removes releases repeating an episode number.
func (w *Website) Search(ctx context.Context, keyword string, count int, filter string) ([]domain.Episode, error) {
	if count <= 0 {
		count = 1
	}
	if filter == "" {
		filter = defaultTitleFilter
	}

	result, err := w.source.SearchByKeyword(ctx, keyword, count)
	if err != nil {
		return nil, err
	}
	for i := range result {
		if result[i].Episode == nil {
			result[i].Episode = domain.EpisodeNumber(ParseEpisode(result[i].Title))
		}
	}

	// Ancré au début seulement, pas en fin: un préfixe du titre suffit.
	if re, ok := compileOptional("^(?:" + filter + ")"); ok {
		result = keep(result, func(e domain.Episode) bool { return re.MatchString(e.Title) })
	} else {
		w.logger.Debug().Str("filter", filter).Msg("invalid title filter, skipped")
	}

	ret := DedupByEpisode(result)
	for _, e := range ret {
		w.logger.Debug().Str("title", e.Title).Str("download", e.Download).Msg("search result")
	}
	return ret, nil
}

// DedupByEpisode keeps the first release of every distinct episode number,
// preserving order. Releases without a number share one slot.
func DedupByEpisode(in []domain.Episode) []domain.Episode {
	type key struct {
		known bool
		n     int
	}
	seen := map[key]struct{}{}
	out := make([]domain.Episode, 0, len(in))
	for _, e := range in {
		k := key{known: e.Episode != nil, n: e.Number()}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}
