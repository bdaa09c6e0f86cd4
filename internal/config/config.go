package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Addr       string `toml:"addr"`
	DBPath     string `toml:"db_path"`
	ScriptsDir string `toml:"scripts_dir"`
	LockPath   string `toml:"lock_path"`

	MaxPage     int `toml:"max_page"`
	ColumnWidth int `toml:"column_width"`
	MaxPerRow   int `toml:"max_per_row"`

	NyaaURL           string  `toml:"nyaa_url"`
	AniListURL        string  `toml:"anilist_url"`
	ProbeURL          string  `toml:"probe_url"`
	RequestsPerSecond float64 `toml:"requests_per_second"`

	UpdateSchedule string `toml:"update_schedule"`
	LogLevel       string `toml:"log_level"`
}

// Defaults are the values used when neither the environment nor a config
// file sets a field.
func Defaults() Config {
	home := DataDir()
	return Config{
		Addr:              "127.0.0.1:8888",
		DBPath:            filepath.Join(home, "bangumi.db"),
		ScriptsDir:        filepath.Join(home, "scripts"),
		LockPath:          filepath.Join(home, "refresh.lock"),
		MaxPage:           3,
		ColumnWidth:       42,
		MaxPerRow:         3,
		NyaaURL:           "https://nyaa.si",
		AniListURL:        "https://graphql.anilist.co",
		ProbeURL:          "https://nyaa.si",
		RequestsPerSecond: 1,
		UpdateSchedule:    "@every 2h",
		LogLevel:          "info",
	}
}

// Default returns Defaults overridden by BGMI_* environment variables.
func Default() Config {
	cfg := Defaults()
	cfg.applyEnv()
	return cfg
}

// DataDir is where the database, scripts and lock live unless configured.
func DataDir() string {
	if v := os.Getenv("BGMI_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bgmi"
	}
	return filepath.Join(home, ".bgmi")
}

// DefaultFile is the config file read when no --config flag is given.
func DefaultFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bgmi", "config.toml")
}

// Load reads the optional .env file, then the TOML file at path, then the
// environment. A missing file at path is not an error.
func Load(path string) (Config, error) {
	// .env ne remplace jamais une variable déjà définie.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, err
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var problems []string
	if c.MaxPage <= 0 {
		problems = append(problems, "max_page must be > 0")
	}
	if c.ColumnWidth <= 2 {
		problems = append(problems, "column_width must be > 2")
	}
	if c.MaxPerRow <= 0 {
		problems = append(problems, "max_per_row must be > 0")
	}
	if c.RequestsPerSecond <= 0 {
		problems = append(problems, "requests_per_second must be > 0")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "db_path is required")
	}
	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, ", "))
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Addr = envOr("BGMI_ADDR", c.Addr)
	c.DBPath = envOr("BGMI_DB_PATH", c.DBPath)
	c.ScriptsDir = envOr("BGMI_SCRIPTS_DIR", c.ScriptsDir)
	c.LockPath = envOr("BGMI_LOCK_PATH", c.LockPath)
	c.MaxPage = envInt("BGMI_MAX_PAGE", c.MaxPage)
	c.ColumnWidth = envInt("BGMI_COLUMN_WIDTH", c.ColumnWidth)
	c.MaxPerRow = envInt("BGMI_MAX_PER_ROW", c.MaxPerRow)
	c.NyaaURL = envOr("BGMI_NYAA_URL", c.NyaaURL)
	c.AniListURL = envOr("BGMI_ANILIST_URL", c.AniListURL)
	c.ProbeURL = envOr("BGMI_PROBE_URL", c.ProbeURL)
	c.RequestsPerSecond = envFloat("BGMI_REQUESTS_PER_SECOND", c.RequestsPerSecond)
	c.UpdateSchedule = envOr("BGMI_UPDATE_SCHEDULE", c.UpdateSchedule)
	c.LogLevel = envOr("BGMI_LOG_LEVEL", c.LogLevel)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt ignore les valeurs illisibles: Validate signale le reste.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}
