// Package usage records per-turn token usage in SQLite.
package usage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"atlas/internal/logging"
)

// NoArea is the bucket for turns that ran without an area block.
const NoArea = "(none)"

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Tracker persists usage events.
type Tracker struct {
	db   *sql.DB
	path string
}

// Open opens or creates the usage database at path. ":memory:" is allowed.
func Open(path string) (*Tracker, error) {
	timer := logging.StartTimer(logging.CategoryUsage, "Open")
	defer timer.Stop()

	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create usage dir: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open usage db: %w", err)
	}
	// One connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	t := &Tracker{db: db, path: path}
	if err := t.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate usage db: %w", err)
	}

	logging.Get(logging.CategoryUsage).Info("Usage tracker opened at %s", path)
	return t, nil
}

func (t *Tracker) migrate() error {
	_, err := t.db.Exec(`
	CREATE TABLE IF NOT EXISTS usage_events (
		id            TEXT PRIMARY KEY,
		created_at    TEXT NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		area          TEXT NOT NULL DEFAULT '',
		persona       TEXT NOT NULL DEFAULT '',
		prompt_tokens INTEGER NOT NULL DEFAULT 0,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_usage_created ON usage_events(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_usage_area ON usage_events(area);
	`)
	return err
}

// Close closes the database.
func (t *Tracker) Close() error {
	return t.db.Close()
}

// Path returns the database path the tracker was opened with.
func (t *Tracker) Path() string {
	return t.path
}

// Track records a new usage event, assigning an ID and timestamp when unset.
func (t *Tracker) Track(ctx context.Context, ev UsageEvent) (UsageEvent, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	_, err := t.db.ExecContext(ctx, `
		INSERT INTO usage_events (id, created_at, provider, model, area, persona, prompt_tokens, input_tokens, output_tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Timestamp.UTC().Format(timeLayout), ev.Provider, ev.Model,
		ev.Area, ev.Persona, ev.PromptTokens, ev.InputTokens, ev.OutputTokens,
	)
	if err != nil {
		return ev, fmt.Errorf("insert usage event: %w", err)
	}

	logging.Get(logging.CategoryUsage).Debug("Tracked %s: area=%s in=%d out=%d", ev.ID, ev.Area, ev.InputTokens, ev.OutputTokens)
	return ev, nil
}

// Stats aggregates every recorded event.
func (t *Tracker) Stats(ctx context.Context) (AggregatedStats, error) {
	stats := AggregatedStats{
		ByArea:     make(map[string]TokenCounts),
		ByProvider: make(map[string]TokenCounts),
		ByModel:    make(map[string]TokenCounts),
	}

	rows, err := t.db.QueryContext(ctx, `
		SELECT provider, model, area,
		       COUNT(*), SUM(prompt_tokens), SUM(input_tokens), SUM(output_tokens)
		FROM usage_events
		GROUP BY provider, model, area`)
	if err != nil {
		return stats, fmt.Errorf("query usage stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			provider, model, area string
			turns                 int64
			prompt, input, output int64
		)
		if err := rows.Scan(&provider, &model, &area, &turns, &prompt, &input, &output); err != nil {
			return stats, fmt.Errorf("scan usage stats: %w", err)
		}
		if area == "" {
			area = NoArea
		}
		c := TokenCounts{Turns: turns, Prompt: prompt, Input: input, Output: output, Total: input + output}

		stats.Turns += turns
		merge(&stats.Total, c)
		mergeInto(stats.ByArea, area, c)
		mergeInto(stats.ByProvider, provider, c)
		mergeInto(stats.ByModel, model, c)
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterate usage stats: %w", err)
	}
	return stats, nil
}

// Recent returns up to limit events, newest first.
func (t *Tracker) Recent(ctx context.Context, limit int) ([]UsageEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, created_at, provider, model, area, persona, prompt_tokens, input_tokens, output_tokens
		FROM usage_events
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent usage: %w", err)
	}
	defer rows.Close()

	var events []UsageEvent
	for rows.Next() {
		var (
			ev      UsageEvent
			created string
		)
		if err := rows.Scan(&ev.ID, &created, &ev.Provider, &ev.Model, &ev.Area, &ev.Persona,
			&ev.PromptTokens, &ev.InputTokens, &ev.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage event: %w", err)
		}
		ev.Timestamp, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parse usage timestamp %q: %w", created, err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func merge(dst *TokenCounts, c TokenCounts) {
	dst.Turns += c.Turns
	dst.Prompt += c.Prompt
	dst.Input += c.Input
	dst.Output += c.Output
	dst.Total += c.Total
}

func mergeInto(m map[string]TokenCounts, key string, c TokenCounts) {
	entry := m[key]
	merge(&entry, c)
	m[key] = entry
}
