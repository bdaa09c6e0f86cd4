package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
	"github.com/rs/zerolog"
)

type CalendarOptions struct {
	ForceUpdate bool
	Today       bool
	Followed    bool
	Save        bool
}

// CalendarView is everything the renderer needs to print a schedule.
type CalendarView struct {
	Schedule domain.WeeklySchedule `json:"schedule"`
	// Order lists the weekdays to print, in order.
	Order    []string `json:"order"`
	Today    bool     `json:"today"`
	Followed bool     `json:"followed"`
}

type CalendarService struct {
	logger  zerolog.Logger
	site    *Website
	repo    ports.BangumiRepository
	subs    ports.SubtitleRepository
	scripts ports.ScriptProvider
	probe   ports.Connectivity
	lock    ports.RefreshLock

	now func() time.Time
}

func NewCalendarService(logger zerolog.Logger, site *Website, repo ports.BangumiRepository, subs ports.SubtitleRepository, scripts ports.ScriptProvider, probe ports.Connectivity, lock ports.RefreshLock) *CalendarService {
	return &CalendarService{
		logger:  logger,
		site:    site,
		repo:    repo,
		subs:    subs,
		scripts: scripts,
		probe:   probe,
		lock:    lock,
		now:     time.Now,
	}
}

func (s *CalendarService) WithClock(now func() time.Time) *CalendarService {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *CalendarService) Calendar(ctx context.Context, opts CalendarOptions) (CalendarView, error) {
	view := CalendarView{Today: opts.Today, Followed: opts.Followed}

	force := opts.ForceUpdate
	if force && (s.probe == nil || !s.probe.Reachable(ctx)) {
		force = false
		s.logger.Warn().Msg("network is unreachable")
	}

	var (
		weekly domain.WeeklySchedule
		err    error
	)
	switch {
	case force:
		s.logger.Info().Msg("fetching bangumi info ...")
		weekly, err = s.refresh(ctx, opts.Save)
	case opts.Followed:
		weekly, err = s.stored(ctx, domain.StatusFollowed, domain.StatusUpdated)
	default:
		weekly, err = s.stored(ctx)
	}
	if err != nil {
		return view, err
	}

	if weekly.Empty() {
		if opts.Followed {
			s.logger.Warn().Msg("you have not subscribed any bangumi")
			view.Schedule = domain.WeeklySchedule{}
			return view, nil
		}
		s.logger.Warn().Msg("no bangumi schedule, fetching ...")
		weekly, err = s.site.Fetch(ctx, opts.Save)
		if err != nil {
			return view, err
		}
	}

	if s.scripts != nil {
		entries, err := s.scripts.Entries(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to load script bangumi")
		}
		for _, e := range entries {
			weekly.Add(e)
		}
	}

	if opts.Followed {
		if err := s.resolveSubtitleNames(ctx, weekly); err != nil {
			return view, err
		}
	}

	view.Schedule = weekly
	view.Order = WeekdayOrder(s.now(), opts.Today)
	return view, nil
}

// WeekdayOrder returns [today] in today mode, otherwise the whole week
// starting at today.
func WeekdayOrder(now time.Time, today bool) []string {
	if today {
		return []string{domain.WeekdayOf(now)}
	}
	return domain.RotateWeek(domain.WeekdayIndex(now))
}

func (s *CalendarService) refresh(ctx context.Context, save bool) (domain.WeeklySchedule, error) {
	if s.lock != nil {
		unlock, err := s.lock.Lock(ctx)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}
	if err := s.repo.DeleteUnfollowed(ctx); err != nil {
		return nil, fmt.Errorf("clear schedule: %w", err)
	}
	return s.site.Fetch(ctx, save)
}

// stored merges the buckets of each status in argument order, so followed
// shows come before updated ones within a weekday.
func (s *CalendarService) stored(ctx context.Context, statuses ...domain.Status) (domain.WeeklySchedule, error) {
	if len(statuses) == 0 {
		list, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		return domain.GroupByWeekday(list), nil
	}

	out := domain.WeeklySchedule{}
	for _, st := range statuses {
		list, err := s.repo.List(ctx, st)
		if err != nil {
			return nil, err
		}
		for _, b := range list {
			out.Add(b.Entry())
		}
	}
	return out, nil
}

func (s *CalendarService) resolveSubtitleNames(ctx context.Context, weekly domain.WeeklySchedule) error {
	if s.subs == nil {
		return nil
	}
	for day, entries := range weekly {
		for i := range entries {
			ids := domain.SplitSubtitleIDs(entries[i].SubtitleGroup)
			if len(ids) == 0 {
				continue
			}
			groups, err := s.subs.Names(ctx, ids)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(groups))
			for _, g := range groups {
				names = append(names, g.Name)
			}
			entries[i].SubtitleNames = names
		}
		weekly[day] = entries
	}
	return nil
}
