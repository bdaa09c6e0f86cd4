package app

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// \s de RE2 est ASCII: \p{Zs} ajoute l'espace idéographique U+3000.
	reEpisodeZH          = regexp.MustCompile(`第?[\s\p{Zs}]?(\d{1,3})[\s\p{Zs}]?[話话集]`)
	reEpisodeBrackets    = regexp.MustCompile(`[【\[](\d+)[\s\p{Zs}]?(?:END)?[】\]]`)
	reEpisodeOnlyNum     = regexp.MustCompile(`^(\d{2,})$`)
	reEpisodeRange       = regexp.MustCompile(`\d{2,}\s?-\s?(\d{2,})`)
	reEpisodeOVA         = regexp.MustCompile(`(\d{2,})\s?\((?:OVA|OAD)\)]`)
	reEpisodeWithVersion = regexp.MustCompile(`[【\[](\d+)[\s\p{Zs}]? *v\d(?:END)?[】\]]`)
)

// Whole-title patterns, tried before any splitting.
var titlePatterns = []*regexp.Regexp{
	reEpisodeZH,
	reEpisodeBrackets,
	reEpisodeWithVersion,
}

// Fragment rules: the title is split on each separator in turn and every
// fragment is tried against fragmentPatterns in this exact order.
var (
	fragmentSeparators = []string{"【", "[", " "}
	fragmentPatterns   = []*regexp.Regexp{
		reEpisodeZH,
		reEpisodeBrackets,
		reEpisodeOnlyNum,
		reEpisodeRange,
		reEpisodeOVA,
		reEpisodeWithVersion,
	}
)

// ParseEpisode extracts the episode number from a release title.
// It returns 0 when no rule matches.
//
// TODO: "00-11" style ranges resolve to the second number; leading-zero
// batches need a dedicated rule.
func ParseEpisode(title string) int {
	for _, re := range titlePatterns {
		if n, ok := firstNumber(re, title); ok {
			return n
		}
	}

	for _, sep := range fragmentSeparators {
		for _, fragment := range strings.Split(title, sep) {
			for _, re := range fragmentPatterns {
				if n, ok := firstNumber(re, fragment); ok {
					return n
				}
			}
		}
	}
	return 0
}

func firstNumber(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 || !isDigits(m[1]) {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
