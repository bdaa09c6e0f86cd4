// Package anilist builds the weekly calendar from the AniList airing schedule.
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/source"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"golang.org/x/time/rate"
)

const (
	DefaultEndpoint = "https://graphql.anilist.co"

	perPage  = 50
	maxPages = 10
)

// Client is a calendar-only source: search and releases come from elsewhere.
type Client struct {
	source.Base

	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	loc      *time.Location
	now      func() time.Time
}

func New(endpoint string, requestsPerSecond float64) *Client {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: 15 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		loc:      time.Local,
		now:      time.Now,
	}
}

// WithLocation sets the zone used to turn airing times into weekdays.
func (c *Client) WithLocation(loc *time.Location) *Client {
	if loc != nil {
		c.loc = loc
	}
	return c
}

func (c *Client) WithClock(now func() time.Time) *Client {
	if now != nil {
		c.now = now
	}
	return c
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors,omitempty"`
}

type AiringEntry struct {
	AiringAt int64 `json:"airingAt"`
	Episode  int   `json:"episode"`
	Media    struct {
		ID      int  `json:"id"`
		IsAdult bool `json:"isAdult"`
		Title   struct {
			Romaji  string `json:"romaji"`
			English string `json:"english"`
			Native  string `json:"native"`
		} `json:"title"`
		CoverImage struct {
			Large string `json:"large"`
		} `json:"coverImage"`
	} `json:"media"`
}

// Title prefers the romaji title, which is also what release groups use.
func (e AiringEntry) Title() string {
	for _, t := range []string{e.Media.Title.Romaji, e.Media.Title.English, e.Media.Title.Native} {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return ""
}

type airingPageData struct {
	Page struct {
		PageInfo struct {
			HasNextPage bool `json:"hasNextPage"`
		} `json:"pageInfo"`
		AiringSchedules []AiringEntry `json:"airingSchedules"`
	} `json:"Page"`
}

const airingQuery = `query($start:Int,$end:Int,$page:Int,$perPage:Int){
	Page(page:$page, perPage:$perPage){
		pageInfo{ hasNextPage }
		airingSchedules(airingAt_greater:$start, airingAt_lesser:$end, sort: TIME){
			airingAt episode
			media{ id isAdult title{ romaji english native } coverImage{ large } }
		}
	}
}`

// AiringSchedule lists every airing between from and to, following pagination.
func (c *Client) AiringSchedule(ctx context.Context, from, to time.Time) ([]AiringEntry, error) {
	out := []AiringEntry{}
	for page := 1; page <= maxPages; page++ {
		req := graphQLRequest{
			Query: airingQuery,
			Variables: map[string]any{
				"start":   from.UTC().Unix(),
				"end":     to.UTC().Unix(),
				"page":    page,
				"perPage": perPage,
			},
		}
		var resp graphQLResponse[airingPageData]
		if err := c.do(ctx, req, &resp); err != nil {
			return nil, err
		}
		if len(resp.Errors) > 0 {
			return nil, &app.CodedError{Code: app.CodeSourceHTTP, Message: "anilist", Err: errors.New(resp.Errors[0].Message)}
		}
		out = append(out, resp.Data.Page.AiringSchedules...)
		if !resp.Data.Page.PageInfo.HasNextPage {
			break
		}
	}
	return out, nil
}

// FetchCalendar returns one show per media airing in the coming week, with
// the weekday of its next airing. AniList has no subtitle groups.
func (c *Client) FetchCalendar(ctx context.Context) ([]domain.Bangumi, []domain.SubtitleGroup, error) {
	now := c.now()
	entries, err := c.AiringSchedule(ctx, now, now.Add(7*24*time.Hour))
	if err != nil {
		return nil, nil, err
	}

	seen := map[int]bool{}
	list := make([]domain.Bangumi, 0, len(entries))
	for _, e := range entries {
		if e.Media.IsAdult || seen[e.Media.ID] {
			continue
		}
		title := e.Title()
		if title == "" {
			continue
		}
		seen[e.Media.ID] = true
		list = append(list, domain.Bangumi{
			Name:       title,
			Keyword:    title,
			Cover:      e.Media.CoverImage.Large,
			UpdateTime: domain.WeekdayOf(time.Unix(e.AiringAt, 0).In(c.loc)),
			Status:     domain.StatusNormal,
			// l'épisode qui va sortir n'est pas encore disponible
			Episode: max(e.Episode-1, 0),
		})
	}
	return list, nil, nil
}

func (c *Client) do(ctx context.Context, req graphQLRequest, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	b, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", "bgmi-go")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return &app.CodedError{Code: app.CodeNetwork, Message: "anilist", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &app.CodedError{Code: app.CodeSourceHTTP, Message: "anilist http error: " + resp.Status}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &app.CodedError{Code: app.CodeSourceDecode, Message: "anilist", Err: err}
	}
	return nil
}
