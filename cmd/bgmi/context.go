package main

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/terminal"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/bootstrap"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/config"
)

type commandContext struct {
	configFlag *string
	debug      *bool

	// logOut reçoit les logs (stderr hors tests).
	logOut io.Writer

	envOnce sync.Once
	env     *bootstrap.Env
	envErr  error
}

func newCommandContext(configFlag *string, debug *bool) *commandContext {
	return &commandContext{configFlag: configFlag, debug: debug, logOut: os.Stderr}
}

func (c *commandContext) configPath() string {
	if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
		return strings.TrimSpace(*c.configFlag)
	}
	return config.DefaultFile()
}

// ensureEnv charge la config et ouvre la base au premier appel.
func (c *commandContext) ensureEnv(ctx context.Context) (*bootstrap.Env, error) {
	c.envOnce.Do(func() {
		cfg, err := config.Load(c.configPath())
		if err != nil {
			c.envErr = err
			return
		}
		c.env, c.envErr = bootstrap.Open(ctx, cfg, c.logger(cfg))
	})
	return c.env, c.envErr
}

func (c *commandContext) logger(cfg config.Config) zerolog.Logger {
	level := bootstrap.LogLevel(cfg.LogLevel)
	if c.debug != nil && *c.debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{
		Out:        c.logOut,
		NoColor:    !terminal.ShouldColorize(c.logOut),
		TimeFormat: "15:04:05",
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func (c *commandContext) close() error {
	if c.env == nil {
		return nil
	}
	err := c.env.Close()
	c.env = nil
	return err
}

// renderConfig adapte le rendu au terminal de sortie.
func (c *commandContext) renderConfig(cfg config.Config, w io.Writer) terminal.RenderConfig {
	rc := terminal.DefaultRenderConfig()
	rc.ColumnWidth = cfg.ColumnWidth
	rc.MaxPerRow = cfg.MaxPerRow
	rc.TerminalWidth = terminal.Width(w)
	rc.Color = terminal.ShouldColorize(w)
	return rc
}
