// Package store keeps imported datasets in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/kanjiquiz/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for dataset records.
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
		`CREATE TABLE IF NOT EXISTS radicals (
			id INTEGER PRIMARY KEY,
			position INTEGER NOT NULL,
			radical TEXT NOT NULL UNIQUE,
			reading TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS kanji (
			radical_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			char TEXT NOT NULL,
			onyomi TEXT NOT NULL,
			kunyomi TEXT NOT NULL,
			meaning TEXT NOT NULL,
			grade TEXT NOT NULL,
			kanken REAL NOT NULL,
			kakusuu INTEGER NOT NULL,
			PRIMARY KEY (radical_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS idioms (
			position INTEGER PRIMARY KEY,
			idiom TEXT NOT NULL,
			reading TEXT NOT NULL,
			meaning TEXT NOT NULL,
			synonym TEXT NOT NULL,
			antonym TEXT NOT NULL,
			note TEXT NOT NULL,
			kanken REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS imports (
			id INTEGER PRIMARY KEY,
			kind TEXT NOT NULL,
			imported_at TEXT NOT NULL,
			records INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_idioms_kanken ON idioms(kanken);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceRadicals swaps the stored radical records for records in one transaction.
// A radical repeated in records keeps only its first record.
func (s *Store) ReplaceRadicals(ctx context.Context, records []model.RadicalRecord) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM kanji`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM radicals`); err != nil {
		return err
	}
	kanjiStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO kanji (radical_id, position, char, onyomi, kunyomi, meaning, grade, kanken, kakusuu)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := kanjiStmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.Radical]; dup {
			continue
		}
		seen[rec.Radical] = struct{}{}
		var res sql.Result
		res, err = tx.ExecContext(ctx, `INSERT INTO radicals (position, radical, reading) VALUES (?, ?, ?)`, len(seen)-1, rec.Radical, rec.Reading)
		if err != nil {
			return fmt.Errorf("radical %q: %w", rec.Radical, err)
		}
		var radicalID int64
		radicalID, err = res.LastInsertId()
		if err != nil {
			return err
		}
		for j, k := range rec.Kanji {
			var on, kun, meaning string
			if on, err = encodeList(k.Onyomi); err != nil {
				return err
			}
			if kun, err = encodeList(k.Kunyomi); err != nil {
				return err
			}
			if meaning, err = encodeList(k.Meaning); err != nil {
				return err
			}
			if _, err = kanjiStmt.ExecContext(ctx, radicalID, j, k.Char, on, kun, meaning, k.Grade, k.Kanken, k.Kakusuu); err != nil {
				return fmt.Errorf("kanji %q: %w", k.Char, err)
			}
		}
	}
	if err = recordImport(ctx, tx, "radicals", len(seen)); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceIdioms swaps the stored idiom records for records in one transaction.
func (s *Store) ReplaceIdioms(ctx context.Context, records []model.IdiomRecord) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM idioms`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO idioms (position, idiom, reading, meaning, synonym, antonym, note, kanken)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i, rec := range records {
		if _, err = stmt.ExecContext(ctx, i, rec.Radical, rec.Reading, rec.Meaning, rec.Synonym, rec.Antonym, rec.Note, rec.Kanken); err != nil {
			return fmt.Errorf("idiom %q: %w", rec.Radical, err)
		}
	}
	if err = recordImport(ctx, tx, "idioms", len(records)); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadDataset returns every stored record in import order.
func (s *Store) LoadDataset(ctx context.Context) (model.Dataset, error) {
	radicals, err := s.loadRadicals(ctx)
	if err != nil {
		return model.Dataset{}, err
	}
	idioms, err := s.loadIdioms(ctx)
	if err != nil {
		return model.Dataset{}, err
	}
	return model.Dataset{Radicals: radicals, Idioms: idioms}, nil
}

// Counts returns the number of stored radicals and idioms.
func (s *Store) Counts(ctx context.Context) (radicals, idioms int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM radicals`).Scan(&radicals); err != nil {
		return 0, 0, err
	}
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM idioms`).Scan(&idioms); err != nil {
		return 0, 0, err
	}
	return radicals, idioms, nil
}

func (s *Store) loadRadicals(ctx context.Context) ([]model.RadicalRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT r.id, r.radical, r.reading,
			k.char, k.onyomi, k.kunyomi, k.meaning, k.grade, k.kanken, k.kakusuu
		FROM radicals r
		LEFT JOIN kanji k ON k.radical_id = r.id
		ORDER BY r.position ASC, k.position ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.RadicalRecord
	lastID := int64(-1)
	for rows.Next() {
		var (
			id                     int64
			radical, reading       string
			char, on, kun, meaning sql.NullString
			grade                  sql.NullString
			kanken                 sql.NullFloat64
			kakusuu                sql.NullInt64
		)
		if err := rows.Scan(&id, &radical, &reading, &char, &on, &kun, &meaning, &grade, &kanken, &kakusuu); err != nil {
			return nil, err
		}
		if id != lastID {
			result = append(result, model.RadicalRecord{Radical: radical, Reading: reading})
			lastID = id
		}
		if !char.Valid {
			continue
		}
		k := model.KanjiRecord{
			Char:    char.String,
			Grade:   grade.String,
			Kanken:  kanken.Float64,
			Kakusuu: int(kakusuu.Int64),
		}
		if k.Onyomi, err = decodeList(on.String); err != nil {
			return nil, err
		}
		if k.Kunyomi, err = decodeList(kun.String); err != nil {
			return nil, err
		}
		if k.Meaning, err = decodeList(meaning.String); err != nil {
			return nil, err
		}
		last := &result[len(result)-1]
		last.Kanji = append(last.Kanji, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) loadIdioms(ctx context.Context) ([]model.IdiomRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idiom, reading, meaning, synonym, antonym, note, kanken
		FROM idioms ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.IdiomRecord
	for rows.Next() {
		var rec model.IdiomRecord
		if err := rows.Scan(&rec.Radical, &rec.Reading, &rec.Meaning, &rec.Synonym, &rec.Antonym, &rec.Note, &rec.Kanken); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func recordImport(ctx context.Context, tx *sql.Tx, kind string, n int) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO imports (kind, imported_at, records) VALUES (?, ?, ?)`,
		kind, time.Now().UTC().Format(time.RFC3339Nano), n)
	return err
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeList(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("failed to decode list column: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}
