// Package store handles SQLite persistence of analyses.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/snappy"

	"github.com/verte-zerg/readscore/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so stored times sort and compare as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when an analysis id does not exist.
var ErrNotFound = errors.New("analysis not found")

// Store wraps SQLite access for analysis history.
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

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY,
			analyzed_at TEXT NOT NULL,
			source TEXT NOT NULL,
			characters INTEGER NOT NULL,
			words INTEGER NOT NULL,
			sentences INTEGER NOT NULL,
			syllables INTEGER NOT NULL,
			polysyllables INTEGER NOT NULL,
			ari REAL,
			fk REAL,
			smog REAL,
			cl REAL,
			ari_age INTEGER NOT NULL,
			fk_age INTEGER NOT NULL,
			smog_age INTEGER NOT NULL,
			cl_age INTEGER NOT NULL,
			average_age REAL NOT NULL,
			text_snappy BLOB NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_analyzed_at ON analyses(analyzed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_source ON analyses(source);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

const selectColumns = `id, analyzed_at, source, characters, words, sentences, syllables, polysyllables,
	ari, fk, smog, cl, ari_age, fk_age, smog_age, cl_age, text_snappy`

// InsertAnalysis stores an analysis and returns its id. The report must
// carry a score for every metric.
func (s *Store) InsertAnalysis(ctx context.Context, rec model.AnalysisRecord) (int64, error) {
	scores := make([]model.MetricScore, len(model.Metrics))
	for i, m := range model.Metrics {
		sc, ok := rec.Report.Score(m)
		if !ok {
			return 0, fmt.Errorf("missing %s score", m.Key())
		}
		scores[i] = sc
	}
	st := rec.Report.Statistics
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (analyzed_at, source, characters, words, sentences, syllables, polysyllables,
			ari, fk, smog, cl, ari_age, fk_age, smog_age, cl_age, average_age, text_snappy)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(rec.AnalyzedAt),
		rec.Source,
		st.Characters,
		st.Words,
		st.Sentences,
		st.Syllables,
		st.Polysyllables,
		nullableScore(scores[0].Score),
		nullableScore(scores[1].Score),
		nullableScore(scores[2].Score),
		nullableScore(scores[3].Score),
		scores[0].Age,
		scores[1].Age,
		scores[2].Age,
		scores[3].Age,
		rec.Report.AverageAge(),
		snappy.Encode(nil, []byte(rec.Text)),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetAnalysis loads a single analysis by id.
func (s *Store) GetAnalysis(ctx context.Context, id int64) (model.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM analyses WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.AnalysisRecord{}, ErrNotFound
	}
	return rec, err
}

// ListAnalyses returns analyses filtered by source and start time, oldest first.
func (s *Store) ListAnalyses(ctx context.Context, cfg model.HistoryConfig) ([]model.AnalysisRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, cfg.Source)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "analyzed_at >= ?")
		args = append(args, formatTime(*cfg.Since))
	}
	query := fmt.Sprintf(`SELECT %s
		FROM analyses
		WHERE %s
		ORDER BY analyzed_at ASC, id ASC`, selectColumns, strings.Join(clauses, " AND "))
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

	var records []model.AnalysisRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteAnalyses removes analyses recorded before the given time.
func (s *Store) DeleteAnalyses(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE analyzed_at < ?`, formatTime(before))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func scanRecord(sc scanner) (model.AnalysisRecord, error) {
	var (
		rec        model.AnalysisRecord
		analyzedAt string
		st         model.TextStatistics
		raw        [4]sql.NullFloat64
		ages       [4]int
		compressed []byte
	)
	if err := sc.Scan(&rec.ID, &analyzedAt, &rec.Source,
		&st.Characters, &st.Words, &st.Sentences, &st.Syllables, &st.Polysyllables,
		&raw[0], &raw[1], &raw[2], &raw[3],
		&ages[0], &ages[1], &ages[2], &ages[3],
		&compressed,
	); err != nil {
		return model.AnalysisRecord{}, err
	}
	parsed, err := time.Parse(timeLayout, analyzedAt)
	if err != nil {
		return model.AnalysisRecord{}, err
	}
	text, err := snappy.Decode(nil, compressed)
	if err != nil {
		return model.AnalysisRecord{}, fmt.Errorf("failed to decompress text of analysis %d: %w", rec.ID, err)
	}
	rec.AnalyzedAt = parsed
	rec.Text = string(text)
	rec.Report.Statistics = st
	for i, m := range model.Metrics {
		value := math.NaN()
		if raw[i].Valid {
			value = raw[i].Float64
		}
		rec.Report.Scores = append(rec.Report.Scores, model.MetricScore{Metric: m, Score: value, Age: ages[i]})
	}
	return rec, nil
}

// SQLite has no representation for NaN or infinities.
func nullableScore(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
