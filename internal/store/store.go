// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/stardate/internal/instant"
	"github.com/verte-zerg/stardate/internal/model"
	"github.com/verte-zerg/stardate/internal/wide"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for conversion history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Seconds are stored as decimal text since they can exceed SQLite's signed
// 64-bit INTEGER.
func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY,
			input TEXT NOT NULL,
			kind TEXT NOT NULL,
			seconds TEXT NOT NULL,
			fraction INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_recorded_at ON conversions(recorded_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertConversion stores converted inputs in one transaction and returns
// the id of the last row.
func (s *Store) InsertConversion(ctx context.Context, conversions ...model.Conversion) (int64, error) {
	if len(conversions) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO conversions (input, kind, seconds, fraction, recorded_at)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	var id int64
	for _, c := range conversions {
		res, execErr := stmt.ExecContext(ctx,
			c.Input,
			c.Kind,
			c.Instant.Sec.String(),
			int64(c.Instant.Frac),
			c.RecordedAt.UTC().Format(recordedAtLayout),
		)
		if execErr != nil {
			err = execErr
			return 0, err
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListConversions returns stored conversions, oldest first, filtered by cfg.
// A positive cfg.Last keeps only the most recent matches.
func (s *Store) ListConversions(ctx context.Context, cfg model.HistoryConfig) ([]model.ConversionRecord, error) {
	selection, args := selectConversions(cfg)
	query := `SELECT id, input, kind, seconds, fraction, recorded_at FROM (` + selection + `) ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.ConversionRecord
	for rows.Next() {
		var rec model.ConversionRecord
		var seconds, recordedAt string
		var fraction int64
		if err := rows.Scan(&rec.ID, &rec.Input, &rec.Kind, &seconds, &fraction, &recordedAt); err != nil {
			return nil, err
		}
		sec, rest, overflow := wide.Parse(seconds, 10)
		if seconds == "" || rest != "" || overflow {
			return nil, fmt.Errorf("conversion %d: bad seconds %q", rec.ID, seconds)
		}
		rec.Instant = instant.Time{Sec: sec, Frac: uint32(fraction)}
		parsed, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, err
		}
		rec.RecordedAt = parsed
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// CountByKind returns how many of the conversions selected by cfg were read
// in each format.
func (s *Store) CountByKind(ctx context.Context, cfg model.HistoryConfig) ([]model.KindCount, error) {
	selection, args := selectConversions(cfg)
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM (`+selection+`) GROUP BY kind ORDER BY COUNT(*) DESC, kind ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.KindCount
	for rows.Next() {
		var kc model.KindCount
		if err := rows.Scan(&kc.Kind, &kc.Count); err != nil {
			return nil, err
		}
		result = append(result, kc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// recordedAtLayout has a fixed width so text order in SQLite is time order.
const recordedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// selectConversions builds the subquery shared by the history readers: rows
// matching cfg, newest first, cut to cfg.Last when it is positive.
func selectConversions(cfg model.HistoryConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, cfg.Kind)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "recorded_at >= ?")
		args = append(args, cfg.Since.UTC().Format(recordedAtLayout))
	}
	limit := -1
	if cfg.Last > 0 {
		limit = cfg.Last
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT * FROM conversions
		WHERE %s
		ORDER BY id DESC
		LIMIT ?`, strings.Join(clauses, " AND "))
	return query, args
}
