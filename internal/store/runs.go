package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
)

// RunStore persists completed pipeline runs to SQLite. It is written
// once per run, after the pipeline finishes; the pipeline itself never
// reads from it.
type RunStore struct {
	DB *sql.DB
}

func NewRunStore(dbPath string) (*RunStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Create tables if not exist
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			request TEXT,
			params TEXT,
			summary TEXT,
			success INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS stage_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER,
			stage TEXT,
			payload TEXT
		);`,
	}
	for _, q := range queries {
		_, err = db.Exec(q)
		if err != nil {
			return nil, err
		}
	}

	return &RunStore{DB: db}, nil
}

// StagePayload pairs a stage name with its result for persistence.
type StagePayload struct {
	Stage  string
	Result any
}

// SaveRun writes one completed run and its per-stage payloads.
func (s *RunStore) SaveRun(request string, params any, stages []StagePayload, summary string, success bool) (int64, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return 0, fmt.Errorf("marshal params: %w", err)
	}

	res, err := s.DB.Exec(
		`INSERT INTO runs (request, params, summary, success) VALUES (?, ?, ?, ?)`,
		request, string(paramsJSON), summary, success,
	)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, sp := range stages {
		payload, err := json.Marshal(sp.Result)
		if err != nil {
			return 0, fmt.Errorf("marshal %s payload: %w", sp.Stage, err)
		}
		_, err = s.DB.Exec(
			`INSERT INTO stage_results (run_id, stage, payload) VALUES (?, ?, ?)`,
			runID, sp.Stage, string(payload),
		)
		if err != nil {
			return 0, err
		}
	}

	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.DB.Query(
		`SELECT id, request, params, summary, success, created_at FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var success int
		if err := rows.Scan(&r.ID, &r.Request, &r.Params, &r.Summary, &success, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Success = success != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetStageResults returns the per-stage payloads of one run in insert order.
func (s *RunStore) GetStageResults(runID int64) ([]StageRecord, error) {
	rows, err := s.DB.Query(
		`SELECT run_id, stage, payload FROM stage_results WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []StageRecord
	for rows.Next() {
		var rec StageRecord
		if err := rows.Scan(&rec.RunID, &rec.Stage, &rec.Payload); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *RunStore) Close() error {
	return s.DB.Close()
}
