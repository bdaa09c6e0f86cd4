package app

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
	"github.com/rs/zerolog"
)

const (
	DefaultMaxPage = 3

	// collectionMarker flags batch releases covering several episodes.
	collectionMarker = "合集"

	// oldEpisodeAge is three 30-day months.
	oldEpisodeAge = 3 * 30 * 24 * time.Hour
)

// Website combines a source with the local filter and subtitle storage.
type Website struct {
	logger    zerolog.Logger
	source    ports.Source
	bangumi   ports.BangumiRepository
	filters   ports.FilterRepository
	subtitles ports.SubtitleRepository

	now func() time.Time
}

func NewWebsite(logger zerolog.Logger, source ports.Source, bangumi ports.BangumiRepository, filters ports.FilterRepository, subtitles ports.SubtitleRepository) *Website {
	return &Website{
		logger:    logger,
		source:    source,
		bangumi:   bangumi,
		filters:   filters,
		subtitles: subtitles,
		now:       time.Now,
	}
}

// WithClock replaces the time source (tests).
func (w *Website) WithClock(now func() time.Time) *Website {
	if now != nil {
		w.now = now
	}
	return w
}

type EpisodeQuery struct {
	// Keyword is the source-side identifier of the show.
	Keyword string
	Name    string

	SubtitleGroup string
	Include       string
	Exclude       string
	Regex         string

	MaxPage int
}

// FetchEpisode collects the releases of one show and applies the query filters.
func (w *Website) FetchEpisode(ctx context.Context, q EpisodeQuery) ([]domain.Episode, error) {
	maxPage := q.MaxPage
	if maxPage <= 0 {
		maxPage = DefaultMaxPage
	}

	var (
		raw []domain.Episode
		err error
	)
	if ids := domain.SplitSubtitleIDs(q.SubtitleGroup); len(ids) > 0 {
		raw, err = w.source.FetchEpisodes(ctx, q.Keyword, ids, 0)
	} else {
		raw, err = w.source.FetchEpisodes(ctx, q.Keyword, nil, maxPage)
	}
	if err != nil {
		return nil, err
	}

	result := make([]domain.Episode, 0, len(raw))
	for _, e := range raw {
		if strings.Contains(e.Title, collectionMarker) {
			continue
		}
		e.Name = q.Name
		if e.Episode == nil {
			e.Episode = domain.EpisodeNumber(ParseEpisode(e.Title))
		}
		result = append(result, e)
	}

	filter := domain.Filter{Include: q.Include, Exclude: q.Exclude}
	if terms := filter.IncludeTerms(); len(terms) > 0 {
		result = keep(result, func(e domain.Episode) bool { return containsAll(e.Title, terms) })
	}
	if terms := filter.ExcludeTerms(); len(terms) > 0 {
		result = keep(result, func(e domain.Episode) bool { return containsNone(e.Title, terms) })
	}
	if q.Regex != "" {
		if re, ok := compileOptional(q.Regex); ok {
			result = keep(result, func(e domain.Episode) bool { return re.MatchString(e.Title) })
		} else {
			w.logger.Debug().Str("regex", q.Regex).Msg("invalid filter regex, skipped")
		}
	}
	return result, nil
}

// GetMaximumEpisode returns the release with the highest episode number and
// every release that survived filtering. Ties go to the last release seen.
func (w *Website) GetMaximumEpisode(ctx context.Context, b domain.Bangumi, useSubtitle, ignoreOld bool, maxPage int) (domain.Episode, []domain.Episode, error) {
	q := EpisodeQuery{Keyword: b.Keyword, Name: b.Name, MaxPage: maxPage}
	if useSubtitle && w.filters != nil {
		f, err := w.filters.Get(ctx, b.Name)
		switch {
		case err == nil:
			q.SubtitleGroup = f.Subtitle
			q.Include = f.Include
			q.Exclude = f.Exclude
			q.Regex = f.Regex
		case errors.Is(err, ports.ErrNotFound):
		default:
			return domain.Episode{}, nil, err
		}
	}

	fetched, err := w.FetchEpisode(ctx, q)
	if err != nil {
		return domain.Episode{}, nil, err
	}
	data := keep(fetched, func(e domain.Episode) bool { return e.Episode != nil })

	if ignoreOld {
		cutoff := w.now().Add(-oldEpisodeAge).Unix()
		data = keep(data, func(e domain.Episode) bool { return e.Time > cutoff })
	}

	if len(data) == 0 {
		return domain.Episode{Episode: domain.EpisodeNumber(0)}, []domain.Episode{}, nil
	}

	best := data[0]
	for _, e := range data[1:] {
		if e.Number() >= best.Number() {
			best = e
		}
	}
	return best, data, nil
}

// compileOptional turns a user pattern into a regexp; an invalid pattern
// yields no regexp rather than an error.
func compileOptional(pattern string) (*regexp.Regexp, bool) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, false
	}
	return re, true
}

func keep(in []domain.Episode, pred func(domain.Episode) bool) []domain.Episode {
	out := make([]domain.Episode, 0, len(in))
	for _, e := range in {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

func containsAll(s string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(s, t) {
			return false
		}
	}
	return true
}

func containsNone(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return false
		}
	}
	return true
}

// RememberGroups stores the subtitle groups seen in episodes and returns
// their ids in first-seen order.
func (w *Website) RememberGroups(ctx context.Context, episodes []domain.Episode) []string {
	seen := map[string]bool{}
	ids := []string{}
	for _, e := range episodes {
		id := strings.TrimSpace(e.SubtitleGroup)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
		if w.subtitles == nil {
			continue
		}
		if err := w.subtitles.Ensure(ctx, domain.SubtitleGroup{ID: id, Name: id}); err != nil {
			w.logger.Debug().Err(err).Str("subtitle_group", id).Msg("store subtitle group")
		}
	}
	return ids
}
