package domain

import "strings"

// Filter holds the per-show rules applied when collecting episodes.
// Fields keep their stored comma-separated form; an empty field is absent.
type Filter struct {
	BangumiName string `json:"bangumi_name"`
	Subtitle    string `json:"subtitle"`
	Include     string `json:"include"`
	Exclude     string `json:"exclude"`
	Regex       string `json:"regex"`
}

// SubtitleIDs splits the stored ", "-joined subtitle group ids.
func (f Filter) SubtitleIDs() []string {
	return SplitSubtitleIDs(f.Subtitle)
}

func (f Filter) IncludeTerms() []string {
	return splitTerms(f.Include)
}

func (f Filter) ExcludeTerms() []string {
	return splitTerms(f.Exclude)
}

func SplitSubtitleIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ", ")
}

func JoinSubtitleIDs(ids []string) string {
	return strings.Join(ids, ", ")
}

func splitTerms(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
