package domain

import "time"

// Episode is one release of a show as returned by a source.
// A nil Episode means the number was never parsed; 0 is a valid parse result.
type Episode struct {
	Title         string `json:"title"`
	Name          string `json:"name"`
	Download      string `json:"download"`
	SubtitleGroup string `json:"subtitle_group"`
	Episode       *int   `json:"episode"`
	Time          int64  `json:"time"`
}

func (e Episode) Number() int {
	if e.Episode == nil {
		return 0
	}
	return *e.Episode
}

func (e Episode) PublishedAt() time.Time {
	return time.Unix(e.Time, 0)
}

func EpisodeNumber(n int) *int {
	return &n
}
