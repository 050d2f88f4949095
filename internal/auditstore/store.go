// Package auditstore persists completed evaluations for downstream
// consumers (UI history, exports, audit review). The evaluation core itself
// never touches persistence; only the transport layer writes here.
package auditstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id           TEXT PRIMARY KEY,
	created_at   TEXT NOT NULL,
	patient_name TEXT NOT NULL DEFAULT '',
	intake_json  TEXT NOT NULL,
	result_json  TEXT NOT NULL,
	report       TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations (created_at);
`

type Record struct {
	ID          string `db:"id" json:"id"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	PatientName string `db:"patient_name" json:"patient_name"`
	IntakeJSON  string `db:"intake_json" json:"-"`
	ResultJSON  string `db:"result_json" json:"-"`
	Report      string `db:"report" json:"-"`
}

type Store struct {
	db *sqlx.DB
}

func Open(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(rec Record) error {
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	_, err := s.db.NamedExec(`
		INSERT INTO evaluations (id, created_at, patient_name, intake_json, result_json, report)
		VALUES (:id, :created_at, :patient_name, :intake_json, :result_json, :report)`, rec)
	if err != nil {
		return fmt.Errorf("save evaluation %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns the stored evaluation, or nil when no record exists.
func (s *Store) Get(id string) (*Record, error) {
	var rec Record
	err := s.db.Get(&rec, `SELECT * FROM evaluations WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get evaluation %s: %w", id, err)
	}
	return &rec, nil
}

// List returns the most recent evaluations, newest first.
func (s *Store) List(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	records := []Record{}
	err := s.db.Select(&records, `SELECT * FROM evaluations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	return records, nil
}
