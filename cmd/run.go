package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/univalle/workload-harvester/catalogue"
	"github.com/univalle/workload-harvester/sink"
	"github.com/univalle/workload-harvester/transport"
	"github.com/univalle/workload-harvester/workload"
	glogger "gorm.io/gorm/logger"
	"moul.io/zapgorm2"
)

// errAllIDsFailed marks a run in which not a single id produced rows; the
// process exits with status 2 so the scheduler can tell a partial failure
// apart from a catastrophic one.
var errAllIDsFailed = errors.New("run: every id failed to produce rows")

var runPeriodOverride string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Harvest one academic period's worth of teacher-workload pages",
	RunE:  runHarvest,
}

func init() {
	runCmd.Flags().StringVar(&runPeriodOverride, "period", "", "period label to harvest, e.g. 2024-1 (overrides harvest.target_period_label)")
	rootCmd.AddCommand(runCmd)
}

var periodLabelPattern = regexp.MustCompile(`^(\d{4})-([12])$`)

func runHarvest(c *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	if runPeriodOverride != "" {
		cfg.Harvest.TargetPeriodLabel = runPeriodOverride
	}

	logger, err := cfg.Zap.InitLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	gormLg := zapgorm2.Logger{ZapLogger: logger, LogLevel: glogger.Silent}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	sinkDir := cfg.Harvest.SinkDir
	if !filepath.IsAbs(sinkDir) {
		sinkDir = filepath.Join(home, configDir, sinkDir)
	}
	sinkOpts := sink.Options{
		ReadTimeout: cfg.Harvest.SinkReadTimeout(),
		MaxRetries:  cfg.Harvest.SinkMaxRetries,
		RetryDelay:  cfg.Harvest.SinkRetryDelay(),
	}
	db, err := sink.Open(sinkDir, sinkOpts, gormLg)
	if err != nil {
		return err
	}
	defer db.Close()

	fetcherCfg := transport.DefaultConfig(cfg.Harvest.PortalBaseURL)
	if d := cfg.Harvest.FetchTimeout(); d > 0 {
		fetcherCfg.Timeout = d
	}
	if cfg.Harvest.FetchMaxRetries > 0 {
		fetcherCfg.MaxRetries = cfg.Harvest.FetchMaxRetries
	}
	if d := cfg.Harvest.FetchRetryDelay(); d > 0 {
		fetcherCfg.RetryDelay = d
	}
	pacing := cfg.Harvest.PacingDelay()
	if pacing > 0 {
		fetcherCfg.PacingRate = 1.0 / pacing.Seconds()
	}
	fetcherCfg.SessionID = cfg.Harvest.SessionID
	fetcherCfg.AsigAcad = cfg.Harvest.AsigAcad
	fetcher := transport.New(fetcherCfg, log)
	defer fetcher.Close()

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	period, err := resolvePeriod(ctx, fetcher, cfg.Harvest.TargetPeriodLabel)
	if err != nil {
		return err
	}

	ids, err := db.ReadIDColumn(cfg.Harvest.SourceIDPartition, cfg.Harvest.SourceIDColumn)
	if err != nil {
		return err
	}
	if cfg.Harvest.MaxIDs > 0 && len(ids) > cfg.Harvest.MaxIDs {
		ids = ids[:cfg.Harvest.MaxIDs]
	}

	if err := db.Reseed(period.Label); err != nil {
		return fmt.Errorf("reseed partition %s: %w", period.Label, err)
	}

	var processed, withRows, skipped int
	var rowsWritten int

idLoop:
	for _, id := range ids {
		body, err := fetcher.FetchPage(ctx, id, period.PeriodID)
		processed++
		if err != nil {
			log.Warnw("fetch failed", "national_id", id, "period", period.Label, "error", err)
			skipped++
			continue
		}

		rec, status, err := workload.ProcessPage(ctx, body, id, period, fetcher, log)
		if err != nil {
			log.Warnw("page skipped", "national_id", id, "period", period.Label, "status", status, "error", err)
			skipped++
			continue
		}
		if status != workload.StatusOK {
			skipped++
			continue
		}

		rows := workload.EmitRows(rec)
		if len(rows) == 0 {
			skipped++
			continue
		}
		if err := db.Append(rows); err != nil {
			log.Errorw("append failed", "national_id", id, "period", period.Label, "error", err)
			skipped++
			continue
		}
		withRows++
		rowsWritten += len(rows)

		if pacing > 0 {
			select {
			case <-ctx.Done():
				break idLoop
			case <-time.After(pacing):
			}
		}
	}

	printSummary(period.Label, processed, withRows, skipped, rowsWritten)
	log.Infow("period summary", "period", period.Label, "ids_processed", processed,
		"ids_with_rows", withRows, "ids_skipped", skipped, "rows_written", rowsWritten)

	if processed > 0 && withRows == 0 {
		return errAllIDsFailed
	}
	return nil
}

// resolvePeriod turns a "YYYY-T" label into a full PeriodDescriptor by
// consulting the portal's own period catalogue; the harvester never
// guesses a period_id from the label alone.
func resolvePeriod(ctx context.Context, fetcher *transport.Fetcher, label string) (workload.PeriodDescriptor, error) {
	if !periodLabelPattern.MatchString(label) {
		return workload.PeriodDescriptor{}, fmt.Errorf("config: target_period_label %q is not in YYYY-T form", label)
	}

	body, err := fetcher.FetchCatalogue(ctx)
	if err != nil {
		return workload.PeriodDescriptor{}, fmt.Errorf("fetch period catalogue: %w", err)
	}
	html, err := workload.DecodeLatin1(body)
	if err != nil {
		return workload.PeriodDescriptor{}, err
	}
	periods, err := catalogue.Parse(html)
	if err != nil {
		return workload.PeriodDescriptor{}, err
	}
	for _, p := range periods {
		if p.Label == label {
			return p, nil
		}
	}
	return workload.PeriodDescriptor{}, fmt.Errorf("config: period %q not found in catalogue", label)
}

func printSummary(periodLabel string, processed, withRows, skipped, rowsWritten int) {
	color.Cyan("Period %s", periodLabel)
	fmt.Printf(" ids processed: %d\n", processed)
	color.Green(" ids with rows: %d", withRows)
	if skipped > 0 {
		color.Yellow(" ids skipped: %d", skipped)
	} else {
		fmt.Printf(" ids skipped: %d\n", skipped)
	}
	fmt.Printf(" rows written: %s\n", strconv.Itoa(rowsWritten))
}
