// Package keepalive pings the service's own public URL so free-tier
// hosts do not idle the process out.
package keepalive

import (
	"context"
	"net/http"
	"time"

	"scamtrap-lab/internal/config"
	"scamtrap-lab/pkg/logger"
)

// Pinger periodically issues a GET against the configured URL.
type Pinger struct {
	url      string
	interval time.Duration
	client   *http.Client
	logger   *logger.Logger
}

func New(cfg config.KeepAliveConfig, log *logger.Logger) *Pinger {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 14 * time.Minute
	}
	return &Pinger{
		url:      cfg.URL,
		interval: interval,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   log.WithComponent("keepalive"),
	}
}

// Run pings until the context is cancelled. Failures are logged and
// the loop keeps going; this is a background nicety, never fatal.
func (p *Pinger) Run(ctx context.Context) {
	if p.url == "" {
		p.logger.Warn().Msg("keepalive enabled but no URL configured, skipping")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info().Str("url", p.url).Dur("interval", p.interval).Msg("keepalive started")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("keepalive stopped")
			return
		case <-ticker.C:
			p.ping(ctx)
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.logger.Warn().Err(err).Msg("keepalive request build failed")
		return
	}
	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn().Err(err).Msg("keepalive ping failed")
		return
	}
	resp.Body.Close()
	p.logger.Debug().Int("status", resp.StatusCode).Msg("keepalive ping")
}
