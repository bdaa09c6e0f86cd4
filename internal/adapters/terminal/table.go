package terminal

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(w io.Writer, headers ...any) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row(headers))
	return tw
}

// RenderEpisodes prints search or fetch results, one release per row.
func RenderEpisodes(w io.Writer, episodes []domain.Episode) {
	tw := newTable(w, "Episode", "Title", "Group", "Published", "Download")
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, WidthMax: 60},
		{Number: 5, WidthMax: 60},
	})
	for _, e := range episodes {
		ep := "-"
		if e.Episode != nil {
			ep = strconv.Itoa(*e.Episode)
		}
		published := ""
		if e.Time > 0 {
			published = e.PublishedAt().Local().Format(time.DateTime)
		}
		tw.AppendRow(table.Row{ep, e.Title, e.SubtitleGroup, published, e.Download})
	}
	tw.Render()
}

// RenderUpdates prints the outcome of an update run.
func RenderUpdates(w io.Writer, results []app.UpdateResult) {
	tw := newTable(w, "Bangumi", "Previous", "Latest", "Status")
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	for _, r := range results {
		status := "up to date"
		switch {
		case r.Error != "":
			status = "error: " + r.Error
		case r.Updated:
			status = fmt.Sprintf("new episode %d", r.Latest.Number())
		}
		tw.AppendRow(table.Row{r.Name, r.Previous, r.Latest.Number(), status})
	}
	tw.Render()
}

// RenderBangumi prints stored shows with their tracking state.
func RenderBangumi(w io.Writer, list []domain.Bangumi) {
	tw := newTable(w, "Name", "Weekday", "Status", "Episode", "Subtitle groups")
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 4, Align: text.AlignRight}})
	for _, b := range list {
		tw.AppendRow(table.Row{b.Name, b.UpdateTime, string(b.Status), b.Episode, b.SubtitleGroup})
	}
	tw.Render()
}
