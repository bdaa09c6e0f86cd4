// Package script loads user-defined shows from TOML files.
//
// A script file describes one show the regular source does not carry:
//
//	bangumi_name = "Quiz King"
//	update_time = "Tue"
//	cover = "https://example.org/cover.jpg"
//	status = "followed"
//	episode = 2
//
//	[downloads]
//	"Quiz King 第01集" = "https://example.org/1.mp4"
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

const fileExt = ".toml"

type File struct {
	BangumiName string            `toml:"bangumi_name"`
	UpdateTime  string            `toml:"update_time"`
	Cover       string            `toml:"cover"`
	Status      string            `toml:"status"`
	Episode     int               `toml:"episode"`
	Downloads   map[string]string `toml:"downloads"`
}

type Loader struct {
	logger zerolog.Logger
	dir    string
}

func NewLoader(logger zerolog.Logger, dir string) *Loader {
	return &Loader{logger: logger, dir: dir}
}

// Entries returns one entry per valid script, in file name order. Broken
// files are logged and skipped.
func (l *Loader) Entries(ctx context.Context) ([]domain.ShowEntry, error) {
	files, err := l.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.ShowEntry, 0, len(files))
	for _, f := range files {
		out = append(out, f.bangumi().Entry())
	}
	return out, nil
}

// Downloads maps episode numbers to links for the named script show.
// Titles without an episode number land on 0.
func (l *Loader) Downloads(ctx context.Context, name string) (map[int]string, error) {
	files, err := l.load()
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if f.BangumiName != name {
			continue
		}
		out := make(map[int]string, len(f.Downloads))
		titles := make([]string, 0, len(f.Downloads))
		for title := range f.Downloads {
			titles = append(titles, title)
		}
		// ordre stable quand deux titres donnent le même épisode
		sort.Strings(titles)
		for _, title := range titles {
			out[app.ParseEpisode(title)] = f.Downloads[title]
		}
		return out, nil
	}
	return nil, ports.ErrNotFound
}

func (l *Loader) load() ([]File, error) {
	if l.dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read scripts dir: %w", err)
	}

	out := []File{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		path := filepath.Join(l.dir, e.Name())
		f, err := readFile(path)
		if err != nil {
			l.logger.Warn().Err(err).Str("script", path).Msg("script skipped")
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func readFile(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	var f File
	if err := toml.Unmarshal(b, &f); err != nil {
		return File{}, err
	}
	f.BangumiName = strings.TrimSpace(f.BangumiName)
	if f.BangumiName == "" {
		return File{}, errors.New("missing bangumi_name")
	}
	weekday, ok := domain.CanonicalWeekday(f.UpdateTime)
	if !ok {
		return File{}, fmt.Errorf("invalid update_time %q", f.UpdateTime)
	}
	f.UpdateTime = weekday
	if f.Status == "" {
		f.Status = string(domain.StatusFollowed)
	}
	if _, ok := domain.ParseStatus(f.Status); !ok {
		return File{}, fmt.Errorf("invalid status %q", f.Status)
	}
	return f, nil
}

func (f File) bangumi() domain.Bangumi {
	status, _ := domain.ParseStatus(f.Status)
	return domain.Bangumi{
		Name:       f.BangumiName,
		Cover:      f.Cover,
		UpdateTime: f.UpdateTime,
		Status:     status,
		Episode:    f.Episode,
	}
}

var _ ports.ScriptProvider = (*Loader)(nil)
