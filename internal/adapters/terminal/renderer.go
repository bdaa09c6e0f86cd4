// Package terminal prints schedules and release lists for humans.
package terminal

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

const (
	DefaultColumnWidth = 42
	DefaultMaxPerRow   = 3

	followedIndent = 5
)

// Glyphs the two-columns rule gets wrong: each one present adds a space of
// padding (wide) or removes one (narrow).
var (
	DefaultWideGlyphs   = []rune{'Ⅱ', 'Ⅲ', '♪', 'Δ', '×', '☆', 'é', '·', '♭'}
	DefaultNarrowGlyphs = []rune{}
)

type RenderConfig struct {
	ColumnWidth   int
	MaxPerRow     int
	TerminalWidth int

	// Color turns on escape sequences whatever the output is.
	Color    bool
	Header   *color.Color
	Followed *color.Color
	Updated  *color.Color

	WideGlyphs   []rune
	NarrowGlyphs []rune
}

func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		ColumnWidth:   DefaultColumnWidth,
		MaxPerRow:     DefaultMaxPerRow,
		TerminalWidth: DefaultColumnWidth * DefaultMaxPerRow,
		Header:        color.New(color.FgGreen, color.Bold),
		Followed:      color.New(color.FgYellow, color.Bold),
		Updated:       color.New(color.FgGreen, color.Bold),
		WideGlyphs:    DefaultWideGlyphs,
		NarrowGlyphs:  DefaultNarrowGlyphs,
	}
}

type Renderer struct {
	logger zerolog.Logger
	cfg    RenderConfig
}

func NewRenderer(logger zerolog.Logger, cfg RenderConfig) *Renderer {
	def := DefaultRenderConfig()
	if cfg.ColumnWidth <= 0 {
		cfg.ColumnWidth = def.ColumnWidth
	}
	if cfg.MaxPerRow <= 0 {
		cfg.MaxPerRow = def.MaxPerRow
	}
	if cfg.Header == nil {
		cfg.Header = def.Header
	}
	if cfg.Followed == nil {
		cfg.Followed = def.Followed
	}
	if cfg.Updated == nil {
		cfg.Updated = def.Updated
	}
	if cfg.WideGlyphs == nil {
		cfg.WideGlyphs = def.WideGlyphs
	}
	if cfg.Color {
		// ignore NO_COLOR / tty detection de fatih/color: l'appelant a décidé
		cfg.Header.EnableColor()
		cfg.Followed.EnableColor()
		cfg.Updated.EnableColor()
	}
	return &Renderer{logger: logger, cfg: cfg}
}

// Render prints the days of view.Order that have at least one entry.
func (r *Renderer) Render(w io.Writer, view app.CalendarView) error {
	col := r.cfg.ColumnWidth
	width := r.cfg.TerminalWidth
	if width < col {
		r.logger.Warn().Int("columns", width).Msg("terminal window is too small.")
		width = col
	}
	row := min(width/col, r.cfg.MaxPerRow)

	var buf bytes.Buffer
	for _, weekday := range view.Order {
		entries := view.Schedule.Day(weekday)
		if len(entries) == 0 {
			continue
		}

		label := weekday
		if view.Today {
			label = fmt.Sprintf("Bangumi Schedule for Today (%s)", weekday)
		}
		buf.WriteString(r.paint(r.cfg.Header, label+". "))
		if !view.Followed {
			buf.WriteString("\n")
			buf.WriteString(strings.Repeat(strings.Repeat("-", col-3)+"   ", row))
			buf.WriteString("\n")
		}

		for i, e := range entries {
			name := e.Name
			if e.Status.IsTracked() && e.Episode != nil {
				name = fmt.Sprintf("%s(%d)", name, *e.Episode)
			}
			spaces := r.padding(name)
			name = r.paintStatus(e.Status, name)

			if view.Followed {
				if i > 0 {
					buf.WriteString(strings.Repeat(" ", followedIndent))
				}
				buf.WriteString(name + " " + strings.Join(e.SubtitleNames, ", ") + "\n")
				continue
			}

			buf.WriteString(" " + name + " " + strings.Repeat(" ", spaces))
			if (i+1)%row == 0 || i+1 == len(entries) {
				buf.WriteString("\n")
			}
		}

		if !view.Followed {
			buf.WriteString("\n")
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// padding is the number of spaces that fills name's column.
func (r *Renderer) padding(name string) int {
	spaces := r.cfg.ColumnWidth - 2 - DisplayWidth(name)
	for _, g := range r.cfg.WideGlyphs {
		if strings.ContainsRune(name, g) {
			spaces++
		}
	}
	for _, g := range r.cfg.NarrowGlyphs {
		if strings.ContainsRune(name, g) {
			spaces--
		}
	}
	return max(spaces, 0)
}

func (r *Renderer) paintStatus(s domain.Status, text string) string {
	switch s {
	case domain.StatusFollowed:
		return r.paint(r.cfg.Followed, text)
	case domain.StatusUpdated:
		return r.paint(r.cfg.Updated, text)
	default:
		return text
	}
}

func (r *Renderer) paint(c *color.Color, text string) string {
	if !r.cfg.Color || c == nil {
		return text
	}
	return c.Sprint(text)
}

// DisplayWidth counts printable ASCII (and ASCII whitespace) as one column
// and every other character as two.
func DisplayWidth(s string) int {
	n := 0
	for _, c := range s {
		if isPrintableASCII(c) {
			n++
		} else {
			n += 2
		}
	}
	return n
}

func isPrintableASCII(c rune) bool {
	if c >= 0x20 && c <= 0x7e {
		return true
	}
	switch c {
	case '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
