package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Weekdays is the canonical week, Monday first.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayOf returns the canonical label of t's weekday.
func WeekdayOf(t time.Time) string {
	return Weekdays[WeekdayIndex(t)]
}

// WeekdayIndex maps t onto Weekdays (Monday = 0).
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// CanonicalWeekday accepts any casing of a weekday label ("tue", "TUE") and
// returns the canonical form.
func CanonicalWeekday(raw string) (string, bool) {
	label := cases.Title(language.Und).String(strings.ToLower(strings.TrimSpace(raw)))
	for _, d := range Weekdays {
		if d == label {
			return d, true
		}
	}
	return "", false
}

// ShowEntry is a show as displayed in the schedule.
type ShowEntry struct {
	Name          string   `json:"name"`
	Status        Status   `json:"status"`
	UpdateTime    string   `json:"update_time"`
	Episode       *int     `json:"episode,omitempty"`
	SubtitleGroup string   `json:"subtitle_group"`
	SubtitleNames []string `json:"subtitle_names,omitempty"`
}

// WeeklySchedule buckets entries by lowercased weekday, keeping insertion order.
type WeeklySchedule map[string][]ShowEntry

func (w WeeklySchedule) Add(e ShowEntry) {
	key := strings.ToLower(e.UpdateTime)
	w[key] = append(w[key], e)
}

// Day returns the bucket for a weekday label in any casing.
func (w WeeklySchedule) Day(weekday string) []ShowEntry {
	return w[strings.ToLower(weekday)]
}

func (w WeeklySchedule) Len() int {
	n := 0
	for _, entries := range w {
		n += len(entries)
	}
	return n
}

func (w WeeklySchedule) Empty() bool {
	return w.Len() == 0
}

func GroupByWeekday(list []Bangumi) WeeklySchedule {
	out := WeeklySchedule{}
	for _, b := range list {
		out.Add(b.Entry())
	}
	return out
}

// RotateWeek returns the canonical week starting at start and wrapping around.
func RotateWeek(start int) []string {
	n := len(Weekdays)
	start = ((start % n) + n) % n
	out := make([]string, 0, n)
	out = append(out, Weekdays[start:]...)
	out = append(out, Weekdays[:start]...)
	return out
}
