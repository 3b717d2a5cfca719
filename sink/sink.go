// Package sink implements the default downstream tabular sink: a
// gorm-backed, pure-Go SQLite store holding one logical partition per
// period label. Each partition behaves like a spreadsheet tab with the
// fixed 17-column row shape of workload.ColumnHeaders.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/univalle/workload-harvester/workload"
	"gorm.io/gorm"
	"moul.io/zapgorm2"
)

const defaultFile = "workload.db"

// Options tunes the sink's local retry policy, the sink_* driver options.
type Options struct {
	ReadTimeout time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
}

// DefaultOptions supplies ReadTimeout and RetryDelay when those are not
// positive. A zero MaxRetries is kept, meaning a single attempt.
func DefaultOptions() Options {
	return Options{
		ReadTimeout: 5 * time.Second,
		MaxRetries:  3,
		RetryDelay:  200 * time.Millisecond,
	}
}

// Row is the GORM model for one emitted row. Column order in
// workload.ColumnHeaders has no bearing on the schema here; it only governs
// export/CSV ordering.
type Row struct {
	ID              uint   `gorm:"primaryKey"`
	PeriodLabel     string `gorm:"index;size:16"`
	NationalID      string `gorm:"index;size:32"`
	FullName        string
	School          string
	Department      string
	ActivityType    string
	Category        string
	ActivityName    string
	Hours           float64
	ActivityID      string
	HoursPercentage string
	ActivityDetail  string
	Activity        string
	EmploymentType  string
	Dedication      string
	Level           string
	Position        string
}

// TableName pins the GORM table name, independent of the struct name.
func (Row) TableName() string { return "emitted_rows" }

func fromEmitted(r workload.EmittedRow) Row {
	return Row{
		PeriodLabel:     r.PeriodLabel,
		NationalID:      r.NationalID,
		FullName:        r.FullName,
		School:          r.School,
		Department:      r.Department,
		ActivityType:    r.ActivityType,
		Category:        r.Category,
		ActivityName:    r.ActivityName,
		Hours:           r.Hours,
		ActivityID:      r.ID,
		HoursPercentage: r.HoursPercentage,
		ActivityDetail:  r.ActivityDetail,
		Activity:        r.Activity,
		EmploymentType:  r.EmploymentType,
		Dedication:      r.Dedication,
		Level:           r.Level,
		Position:        r.Position,
	}
}

// DB wraps the GORM handle behind the harvester's append-only partition
// contract.
type DB struct {
	conn *gorm.DB
	opts Options
}

// Open initialises the SQLite-backed sink under dir (created if missing)
// and migrates its schema.
func Open(dir string, opts Options, gormLg zapgorm2.Logger) (*DB, error) {
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultOptions().ReadTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultOptions().RetryDelay
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("sink: create work dir: %w", err)
	}
	dbFile := filepath.Join(dir, defaultFile)

	conn, err := gorm.Open(sqlite.Open("file:"+dbFile), &gorm.Config{Logger: gormLg})
	if err != nil {
		return nil, fmt.Errorf("sink: open database: %w", err)
	}
	if err := conn.Exec("PRAGMA journal_mode=WAL;").Error; err != nil {
		return nil, fmt.Errorf("sink: enable WAL: %w", err)
	}
	busyMillis := opts.ReadTimeout.Milliseconds()
	if err := conn.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyMillis)).Error; err != nil {
		return nil, fmt.Errorf("sink: set busy timeout: %w", err)
	}
	if err := conn.AutoMigrate(&Row{}); err != nil {
		return nil, fmt.Errorf("sink: migrate schema: %w", err)
	}
	return &DB{conn: conn, opts: opts}, nil
}

// Reseed clears every row belonging to the period's partition, so a re-run
// of the same period starts from the fixed header and nothing else. The
// column header is implicit in the GORM schema rather than a literal
// spreadsheet row; workload.ColumnHeaders remains the contract for any
// exporter that renders this table as a flat file.
func (d *DB) Reseed(periodLabel string) error {
	return d.conn.Where("period_label = ?", periodLabel).Delete(&Row{}).Error
}

// Append writes rows to the partition named by their own PeriodLabel,
// retrying transient failures per the sink retry options. Rows are inserted
// in the order given; callers must not reorder them first.
func (d *DB) Append(rows []workload.EmittedRow) error {
	if len(rows) == 0 {
		return nil
	}
	batch := make([]Row, len(rows))
	for i, r := range rows {
		batch[i] = fromEmitted(r)
	}

	var lastErr error
	for attempt := 0; attempt <= d.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(d.opts.RetryDelay)
		}
		if lastErr = d.conn.CreateInBatches(batch, 200).Error; lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("sink: append after %d retries: %w", d.opts.MaxRetries, lastErr)
}

// CountByPeriod reports how many rows a partition currently holds.
func (d *DB) CountByPeriod(periodLabel string) (int64, error) {
	var count int64
	err := d.conn.Model(&Row{}).Where("period_label = ?", periodLabel).Count(&count).Error
	return count, err
}

// ReadIDColumn reads every value of column from partition, an existing
// table in the same database. The id-list lives alongside the emitted rows:
// this harvester treats both as tables in one spreadsheet-shaped database.
func (d *DB) ReadIDColumn(partition, column string) ([]string, error) {
	var ids []string
	err := d.conn.Table(partition).Pluck(column, &ids).Error
	if err != nil {
		return nil, fmt.Errorf("sink: read id column %s.%s: %w", partition, column, err)
	}
	return ids, nil
}

// Close releases the underlying database connection.
func (d *DB) Close() error {
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
