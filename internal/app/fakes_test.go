package app

import (
	"context"
	"sync"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
)

type fakeSource struct {
	episodes  []domain.Episode
	search    []domain.Episode
	calendar  []domain.Bangumi
	groups    []domain.SubtitleGroup
	err       error
	lastIDs   []string
	lastPages int
	calls     int
}

func (f *fakeSource) SearchByKeyword(ctx context.Context, keyword string, count int) ([]domain.Episode, error) {
	return append([]domain.Episode(nil), f.search...), f.err
}

func (f *fakeSource) FetchCalendar(ctx context.Context) ([]domain.Bangumi, []domain.SubtitleGroup, error) {
	f.calls++
	return f.calendar, f.groups, f.err
}

func (f *fakeSource) FetchEpisodes(ctx context.Context, keyword string, subtitleIDs []string, maxPage int) ([]domain.Episode, error) {
	f.lastIDs = subtitleIDs
	f.lastPages = maxPage
	return append([]domain.Episode(nil), f.episodes...), f.err
}

type memBangumiRepo struct {
	mu   sync.Mutex
	rows []domain.Bangumi
}

func (r *memBangumiRepo) Upsert(ctx context.Context, b domain.Bangumi) (domain.Bangumi, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.Name == b.Name {
			b.Status, b.Episode, b.SubtitleGroup = row.Status, row.Episode, row.SubtitleGroup
			r.rows[i] = b
			return b, nil
		}
	}
	if b.Status == "" {
		b.Status = domain.StatusNormal
	}
	r.rows = append(r.rows, b)
	return b, nil
}

func (r *memBangumiRepo) Get(ctx context.Context, name string) (domain.Bangumi, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Name == name {
			return row, nil
		}
	}
	return domain.Bangumi{}, ports.ErrNotFound
}

func (r *memBangumiRepo) List(ctx context.Context, statuses ...domain.Status) ([]domain.Bangumi, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Bangumi{}
	for _, row := range r.rows {
		if len(statuses) == 0 {
			out = append(out, row)
			continue
		}
		for _, st := range statuses {
			if row.Status == st {
				out = append(out, row)
				break
			}
		}
	}
	return out, nil
}

func (r *memBangumiRepo) UpdateProgress(ctx context.Context, name string, status domain.Status, episode int) (domain.Bangumi, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.Name == name {
			row.Status = status
			row.Episode = episode
			r.rows[i] = row
			return row, nil
		}
	}
	return domain.Bangumi{}, ports.ErrNotFound
}

func (r *memBangumiRepo) SetSubtitleGroup(ctx context.Context, name string, ids []string) (domain.Bangumi, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.Name == name {
			row.SubtitleGroup = domain.JoinSubtitleIDs(ids)
			r.rows[i] = row
			return row, nil
		}
	}
	return domain.Bangumi{}, ports.ErrNotFound
}

func (r *memBangumiRepo) DeleteUnfollowed(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.Status.IsTracked() {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

type memFilterRepo map[string]domain.Filter

func (r memFilterRepo) Get(ctx context.Context, name string) (domain.Filter, error) {
	f, ok := r[name]
	if !ok {
		return domain.Filter{}, ports.ErrNotFound
	}
	return f, nil
}

func (r memFilterRepo) Put(ctx context.Context, f domain.Filter) (domain.Filter, error) {
	r[f.BangumiName] = f
	return f, nil
}

type memSubtitleRepo struct {
	groups []domain.SubtitleGroup
}

func (r *memSubtitleRepo) Ensure(ctx context.Context, g domain.SubtitleGroup) error {
	for _, existing := range r.groups {
		if existing.ID == g.ID {
			return nil
		}
	}
	r.groups = append(r.groups, g)
	return nil
}

func (r *memSubtitleRepo) Names(ctx context.Context, ids []string) ([]domain.SubtitleGroup, error) {
	out := []domain.SubtitleGroup{}
	for _, id := range ids {
		for _, g := range r.groups {
			if g.ID == id {
				out = append(out, g)
			}
		}
	}
	return out, nil
}

func (r *memSubtitleRepo) List(ctx context.Context) ([]domain.SubtitleGroup, error) {
	return r.groups, nil
}

type fakeProbe bool

func (p fakeProbe) Reachable(ctx context.Context) bool { return bool(p) }

type fakeScripts []domain.ShowEntry

func (s fakeScripts) Entries(ctx context.Context) ([]domain.ShowEntry, error) { return s, nil }

type fakeLock struct{ locked, unlocked int }

func (l *fakeLock) Lock(ctx context.Context) (func(), error) {
	l.locked++
	return func() { l.unlocked++ }, nil
}

type recordingBus struct {
	mu     sync.Mutex
	topics []string
}

func (b *recordingBus) Publish(topic string, payload []byte) {
	b.mu.Lock()
	b.topics = append(b.topics, topic)
	b.mu.Unlock()
}

func (b *recordingBus) Subscribe(prefixes ...string) (<-chan ports.Event, func()) {
	ch := make(chan ports.Event)
	return ch, func() {}
}
