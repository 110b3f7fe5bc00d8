package observability

import (
	"sync"
	"time"
)

type PipelineState string

const (
	StateIdle     PipelineState = "IDLE"
	StatePlanning PipelineState = "PLANNING"
	StateDone     PipelineState = "DONE"
	StateFailed   PipelineState = "FAILED"
)

type SystemStatus struct {
	mu           sync.RWMutex
	CurrentState PipelineState
	CurrentStage string
	StartedAt    time.Time
}

var globalStatus = &SystemStatus{
	CurrentState: StateIdle,
	StartedAt:    time.Now(),
}

// SetStage updates the global status with the stage currently running.
func SetStage(state PipelineState, stage string) {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()
	globalStatus.CurrentState = state
	globalStatus.CurrentStage = stage
}

// GetStatus retrieves a copy of the global system status.
func GetStatus() (PipelineState, string, time.Time) {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return globalStatus.CurrentState, globalStatus.CurrentStage, globalStatus.StartedAt
}
