package store

import "time"

// RunRecord is one persisted pipeline run.
type RunRecord struct {
	ID        int64     `json:"id"`
	Request   string    `json:"request"` // original free-text trip request
	Params    string    `json:"params"`  // parsed trip parameters, JSON
	Summary   string    `json:"summary"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}

// StageRecord is the persisted result payload of a single stage.
type StageRecord struct {
	RunID   int64  `json:"run_id"`
	Stage   string `json:"stage"`
	Payload string `json:"payload"` // stage result, JSON
}
