// Package transport supplies the default Fetcher implementation: the
// Period Engine's only injected I/O boundary, built on the
// sunerpy/requests client this codebase uses for outbound HTTP.
package transport

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sunerpy/requests"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config tunes the default Fetcher. Zero timeouts, delays, pacing rate and
// burst fall back to sane portal-scale defaults; a zero MaxRetries means a
// single attempt.
type Config struct {
	PortalBaseURL string
	Timeout       time.Duration
	MaxRetries    int
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
	// PacingRate bounds requests per second; Burst allows short bursts
	// above that rate.
	PacingRate float64
	Burst      int
	SessionID  string
	AsigAcad   string
}

// DefaultConfig mirrors the connection-pool defaults used elsewhere in this
// codebase, scaled down for a single-host, sequential harvest run.
func DefaultConfig(portalBaseURL string) Config {
	return Config{
		PortalBaseURL: portalBaseURL,
		Timeout:       30 * time.Second,
		MaxRetries:    3,
		RetryDelay:    200 * time.Millisecond,
		MaxRetryDelay: 5 * time.Second,
		PacingRate:    10,
		Burst:         1,
	}
}

// Fetcher fetches one teacher-workload page. It is the concrete
// implementation of the Period Engine's fetch(id, period_id) -> bytes
// contract, and also satisfies workload.FrameFetcher for frameset unwrap.
type Fetcher struct {
	cfg     Config
	session requests.Session
	limiter *rate.Limiter
	log     *zap.SugaredLogger
}

// New builds a Fetcher bound to cfg.PortalBaseURL, paced by cfg.PacingRate.
func New(cfg Config, log *zap.SugaredLogger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.PacingRate <= 0 {
		cfg.PacingRate = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	session := requests.NewSession().WithTimeout(cfg.Timeout)
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Fetcher{
		cfg:     cfg,
		session: session,
		limiter: rate.NewLimiter(rate.Limit(cfg.PacingRate), cfg.Burst),
		log:     log,
	}
}

// FetchPage retrieves the workload page for one (national_id, period_id)
// pair.
func (f *Fetcher) FetchPage(ctx context.Context, nationalID string, periodID int) ([]byte, error) {
	u := fmt.Sprintf("%s/vin_inicio_impresion.php3?cedula=%s&periodo=%d", f.cfg.PortalBaseURL, nationalID, periodID)
	return f.get(ctx, u)
}

// FetchCatalogue retrieves the period-list page consumed by the catalogue
// parser.
func (f *Fetcher) FetchCatalogue(ctx context.Context) ([]byte, error) {
	return f.get(ctx, f.cfg.PortalBaseURL+"/vin_docente.php3")
}

// FetchFrame implements workload.FrameFetcher: it dereferences a frameset's
// mainFrame_.src, which may be relative to PortalBaseURL.
func (f *Fetcher) FetchFrame(ctx context.Context, src string) ([]byte, error) {
	target := src
	if parsed, err := url.Parse(src); err == nil && !parsed.IsAbs() {
		target = f.cfg.PortalBaseURL + "/" + src
	}
	return f.get(ctx, target)
}

func (f *Fetcher) get(ctx context.Context, u string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	opts := []requests.RequestOption{requests.WithContext(ctx)}
	if f.cfg.SessionID != "" {
		opts = append(opts, requests.WithHeader("Cookie", "PHPSESSID="+f.cfg.SessionID+"; asigacad="+f.cfg.AsigAcad))
	}

	var lastErr error
	delay := f.cfg.RetryDelay
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	maxDelay := f.cfg.MaxRetryDelay
	if maxDelay <= 0 {
		maxDelay = 5 * time.Second
	}

	for attempt := 0; attempt <= f.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			if delay > maxDelay {
				delay = maxDelay
			}
		}

		resp, err := requests.Get(u, opts...)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp.Bytes(), nil
		}
		if err != nil {
			lastErr = err
			f.log.Debugw("fetch attempt failed", "url", u, "attempt", attempt, "error", err)
			continue
		}
		if resp.StatusCode < 500 {
			return resp.Bytes(), fmt.Errorf("transport: upstream returned status %d", resp.StatusCode)
		}
		lastErr = fmt.Errorf("transport: upstream returned status %d", resp.StatusCode)
	}
	return nil, lastErr
}

// Close releases the underlying session's pooled connections.
func (f *Fetcher) Close() error {
	return f.session.Close()
}
