package app

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
)

type FollowService struct {
	repo    ports.BangumiRepository
	filters ports.FilterRepository
	bus     ports.EventBus
}

func NewFollowService(repo ports.BangumiRepository, filters ports.FilterRepository, bus ports.EventBus) *FollowService {
	return &FollowService{repo: repo, filters: filters, bus: bus}
}

func (s *FollowService) Get(ctx context.Context, name string) (domain.Bangumi, error) {
	return s.repo.Get(ctx, strings.TrimSpace(name))
}

// List returns stored shows; no status means every show.
func (s *FollowService) List(ctx context.Context, statuses ...domain.Status) ([]domain.Bangumi, error) {
	return s.repo.List(ctx, statuses...)
}

// Follow subscribes to a show, starting from episode.
func (s *FollowService) Follow(ctx context.Context, name string, episode int) (domain.Bangumi, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Bangumi{}, invalidParams("missing bangumi name")
	}
	if episode < 0 {
		return domain.Bangumi{}, invalidParams("episode must not be negative")
	}
	b, err := s.repo.UpdateProgress(ctx, name, domain.StatusFollowed, episode)
	if err != nil {
		return domain.Bangumi{}, err
	}
	s.publish("bangumi.followed", b)
	return b, nil
}

func (s *FollowService) Unfollow(ctx context.Context, name string) (domain.Bangumi, error) {
	existing, err := s.repo.Get(ctx, strings.TrimSpace(name))
	if err != nil {
		return domain.Bangumi{}, err
	}
	b, err := s.repo.UpdateProgress(ctx, existing.Name, domain.StatusNormal, existing.Episode)
	if err != nil {
		return domain.Bangumi{}, err
	}
	s.publish("bangumi.unfollowed", b)
	return b, nil
}

// Mark records episode as watched and clears the updated flag.
func (s *FollowService) Mark(ctx context.Context, name string, episode int) (domain.Bangumi, error) {
	existing, err := s.repo.Get(ctx, strings.TrimSpace(name))
	if err != nil {
		return domain.Bangumi{}, err
	}
	if !existing.Status.IsTracked() {
		return domain.Bangumi{}, invalidParams("bangumi " + existing.Name + " is not followed")
	}
	if episode < 0 {
		return domain.Bangumi{}, invalidParams("episode must not be negative")
	}
	b, err := s.repo.UpdateProgress(ctx, existing.Name, domain.StatusFollowed, episode)
	if err != nil {
		return domain.Bangumi{}, err
	}
	s.publish("bangumi.marked", b)
	return b, nil
}

func (s *FollowService) GetFilter(ctx context.Context, name string) (domain.Filter, error) {
	return s.filters.Get(ctx, strings.TrimSpace(name))
}

// SetFilter stores the filter of a followed show. The regex is stored even
// when it does not compile; collection then simply skips it.
func (s *FollowService) SetFilter(ctx context.Context, f domain.Filter) (domain.Filter, error) {
	f.BangumiName = strings.TrimSpace(f.BangumiName)
	b, err := s.repo.Get(ctx, f.BangumiName)
	if err != nil {
		return domain.Filter{}, err
	}
	if !b.Status.IsTracked() {
		return domain.Filter{}, invalidParams("bangumi " + b.Name + " is not followed")
	}
	f.Subtitle = normalizeSubtitleList(f.Subtitle)
	return s.filters.Put(ctx, f)
}

// normalizeSubtitleList accepts "1,2" as well as "1, 2".
func normalizeSubtitleList(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	ids := []string{}
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return domain.JoinSubtitleIDs(ids)
}

func (s *FollowService) publish(topic string, b domain.Bangumi) {
	publishBangumi(s.bus, topic, b)
}

type BangumiDTO struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Keyword       string        `json:"keyword"`
	Cover         string        `json:"cover,omitempty"`
	UpdateTime    string        `json:"updateTime"`
	Status        domain.Status `json:"status"`
	Episode       int           `json:"episode"`
	SubtitleGroup string        `json:"subtitleGroup,omitempty"`
}

func ToBangumiDTO(b domain.Bangumi) BangumiDTO {
	return BangumiDTO{
		ID:            b.ID,
		Name:          b.Name,
		Keyword:       b.Keyword,
		Cover:         b.Cover,
		UpdateTime:    b.UpdateTime,
		Status:        b.Status,
		Episode:       b.Episode,
		SubtitleGroup: b.SubtitleGroup,
	}
}

func publishBangumi(bus ports.EventBus, topic string, b domain.Bangumi) {
	if bus == nil {
		return
	}
	payload, err := json.Marshal(ToBangumiDTO(b))
	if err != nil {
		return
	}
	bus.Publish(topic, payload)
}
