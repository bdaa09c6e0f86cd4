// Package nyaa reads releases from the nyaa.si RSS feed.
package nyaa

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/source"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/anacrolix/torrent/metainfo"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://nyaa.si"

	// catégorie "Anime - English-translated", sans filtre de qualité
	category = "1_2"
)

var DefaultTrackers = []string{
	"http://nyaa.tracker.wf:7777/announce",
	"udp://open.stealth.si:80/announce",
	"udp://tracker.opentrackr.org:1337/announce",
	"udp://exodus.desync.com:6969/announce",
	"udp://tracker.torrent.eu.org:451/announce",
}

var groupRe = regexp.MustCompile(`^\s*[\[【]([^\]】]+)[\]】]`)

// Client is a release source; it has no calendar.
type Client struct {
	source.Base

	logger   zerolog.Logger
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
	trackers []string
}

func New(logger zerolog.Logger, baseURL string, requestsPerSecond float64) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &Client{
		logger:   logger,
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:   &http.Client{Timeout: 20 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		trackers: DefaultTrackers,
	}
}

type rss struct {
	Channel struct {
		Items []item `xml:"item"`
	} `xml:"channel"`
}

type item struct {
	Title    string `xml:"title"`
	Link     string `xml:"link"`
	PubDate  string `xml:"pubDate"`
	InfoHash string `xml:"infoHash"`
	Seeders  int    `xml:"seeders"`
}

// SearchByKeyword reads pages until count releases are collected or a page
// comes back empty.
func (c *Client) SearchByKeyword(ctx context.Context, keyword string, count int) ([]domain.Episode, error) {
	out := []domain.Episode{}
	for page := 1; count <= 0 || len(out) < count; page++ {
		items, err := c.page(ctx, keyword, page)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			break
		}
		out = append(out, items...)
		if count <= 0 {
			break
		}
	}
	if count > 0 && len(out) > count {
		out = out[:count]
	}
	return out, nil
}

// FetchEpisodes reads one page per subtitle group when ids are given (the
// group name is the id on nyaa), otherwise up to maxPage pages.
func (c *Client) FetchEpisodes(ctx context.Context, keyword string, subtitleIDs []string, maxPage int) ([]domain.Episode, error) {
	out := []domain.Episode{}
	if len(subtitleIDs) > 0 {
		for _, id := range subtitleIDs {
			items, err := c.page(ctx, "["+id+"] "+keyword, 1)
			if err != nil {
				return nil, err
			}
			for _, e := range items {
				if strings.EqualFold(e.SubtitleGroup, id) {
					out = append(out, e)
				}
			}
		}
		return out, nil
	}

	for page := 1; page <= maxPage; page++ {
		items, err := c.page(ctx, keyword, page)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			break
		}
		out = append(out, items...)
	}
	return out, nil
}

func (c *Client) page(ctx context.Context, query string, page int) ([]domain.Episode, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("page", "rss")
	q.Set("q", query)
	q.Set("c", category)
	q.Set("f", "0")
	if page > 1 {
		q.Set("p", strconv.Itoa(page))
	}
	u := c.baseURL + "/?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "bgmi-go")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &app.CodedError{Code: app.CodeNetwork, Message: "nyaa", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, &app.CodedError{Code: app.CodeSourceHTTP, Message: "nyaa http error: " + resp.Status}
	}

	var feed rss
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, &app.CodedError{Code: app.CodeSourceDecode, Message: "nyaa", Err: err}
	}

	c.logger.Debug().Str("query", query).Int("page", page).Int("items", len(feed.Channel.Items)).Msg("nyaa page")

	out := make([]domain.Episode, 0, len(feed.Channel.Items))
	for _, it := range feed.Channel.Items {
		out = append(out, c.toEpisode(it))
	}
	return out, nil
}

func (c *Client) toEpisode(it item) domain.Episode {
	e := domain.Episode{
		Title:         strings.TrimSpace(it.Title),
		Download:      strings.TrimSpace(it.Link),
		SubtitleGroup: SubtitleGroup(it.Title),
	}
	if t, err := time.Parse(time.RFC1123Z, strings.TrimSpace(it.PubDate)); err == nil {
		e.Time = t.Unix()
	}
	if magnet, ok := c.magnet(it.InfoHash, e.Title); ok {
		e.Download = magnet
	}
	return e
}

func (c *Client) magnet(infoHash, name string) (string, bool) {
	infoHash = strings.TrimSpace(infoHash)
	if len(infoHash) != 40 {
		return "", false
	}
	var h metainfo.Hash
	if err := h.FromHexString(infoHash); err != nil {
		return "", false
	}
	m := metainfo.Magnet{InfoHash: h, DisplayName: name, Trackers: c.trackers}
	return m.String(), true
}

// SubtitleGroup returns the release group tag leading a title, "" if none.
func SubtitleGroup(title string) string {
	m := groupRe.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
