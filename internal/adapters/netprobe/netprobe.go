// Package netprobe tells whether the source website answers at all.
package netprobe

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const DefaultTimeout = 5 * time.Second

type Probe struct {
	logger zerolog.Logger
	url    string
	client *http.Client
}

func New(logger zerolog.Logger, url string, timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Probe{logger: logger, url: url, client: &http.Client{Timeout: timeout}}
}

// Reachable is true as soon as the server answers, whatever the status code.
func (p *Probe) Reachable(ctx context.Context) bool {
	if p.url == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		p.logger.Debug().Err(err).Str("url", p.url).Msg("probe request")
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug().Err(err).Str("url", p.url).Msg("probe failed")
		return false
	}
	_ = resp.Body.Close()
	return true
}
