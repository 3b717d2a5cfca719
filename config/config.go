package config

import (
	"fmt"
	"time"
)

// Harvest holds the driver configuration for one harvest run, read from
// TOML via viper with mapstructure tags the same way the rest of this
// codebase's configuration is bound. The *_seconds options are plain
// numbers in the file (fractional values allowed), converted to durations
// at the call sites.
type Harvest struct {
	PortalBaseURL       string  `mapstructure:"portal_base_url"`
	SourceIDPartition   string  `mapstructure:"source_id_partition"`
	SourceIDColumn      string  `mapstructure:"source_id_column"`
	TargetPeriodLabel   string  `mapstructure:"target_period_label"`
	PacingDelaySeconds  float64 `mapstructure:"pacing_delay_seconds"`
	MaxIDs              int     `mapstructure:"max_ids"`
	FetchTimeoutSeconds float64 `mapstructure:"fetch_timeout_seconds"`
	FetchMaxRetries     int     `mapstructure:"fetch_max_retries"`
	FetchRetrySeconds   float64 `mapstructure:"fetch_retry_delay_seconds"`
	SinkReadSeconds     float64 `mapstructure:"sink_read_timeout_seconds"`
	SinkMaxRetries      int     `mapstructure:"sink_max_retries"`
	SinkRetrySeconds    float64 `mapstructure:"sink_retry_delay_seconds"`
	SessionID           string  `mapstructure:"session_id"`
	AsigAcad            string  `mapstructure:"asig_acad"`
	SinkDir             string  `mapstructure:"sink_dir"`
}

// Seconds converts a *_seconds option into a duration; non-positive values
// yield zero so the caller's own default applies.
func Seconds(v float64) time.Duration {
	if v <= 0 {
		return 0
	}
	return time.Duration(v * float64(time.Second))
}

func (h Harvest) PacingDelay() time.Duration     { return Seconds(h.PacingDelaySeconds) }
func (h Harvest) FetchTimeout() time.Duration    { return Seconds(h.FetchTimeoutSeconds) }
func (h Harvest) FetchRetryDelay() time.Duration { return Seconds(h.FetchRetrySeconds) }
func (h Harvest) SinkReadTimeout() time.Duration { return Seconds(h.SinkReadSeconds) }
func (h Harvest) SinkRetryDelay() time.Duration  { return Seconds(h.SinkRetrySeconds) }

// Config is the complete configuration document this command reads.
type Config struct {
	Harvest Harvest `mapstructure:"harvest"`
	Zap     Zap     `mapstructure:"zap"`
}

// DefaultConfig mirrors the ambient defaults a fresh install should run
// with; the zero value for any field viper does not populate falls back to
// these.
func DefaultConfig() Config {
	return Config{
		Harvest: Harvest{
			PacingDelaySeconds:  0.1,
			FetchTimeoutSeconds: 30,
			FetchMaxRetries:     3,
			FetchRetrySeconds:   0.2,
			SinkReadSeconds:     5,
			SinkMaxRetries:      3,
			SinkRetrySeconds:    0.2,
			SinkDir:             "data",
		},
		Zap: DefaultZapConfig,
	}
}

// Validate checks the fields Harvest needs to be runnable; it does not
// reach out to the network or filesystem.
func (c *Config) Validate() error {
	if c.Harvest.PortalBaseURL == "" {
		return fmt.Errorf("config: harvest.portal_base_url is required")
	}
	if c.Harvest.TargetPeriodLabel == "" {
		return fmt.Errorf("config: harvest.target_period_label is required")
	}
	if c.Harvest.SourceIDPartition == "" || c.Harvest.SourceIDColumn == "" {
		return fmt.Errorf("config: harvest.source_id_partition and source_id_column are required")
	}
	if c.Harvest.MaxIDs < 0 {
		return fmt.Errorf("config: harvest.max_ids must not be negative")
	}
	return nil
}
