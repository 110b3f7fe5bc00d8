package observability

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// EventType defines the category of the log event.
type EventType string

const (
	EventTypeStage       EventType = "stage"
	EventTypeReasoning   EventType = "reasoning"
	EventTypePolicyCheck EventType = "policy_check"
	EventTypeVerdict     EventType = "verdict"
	EventTypeRun         EventType = "run"
	EventTypeLLM         EventType = "llm"
)

// Event represents a structured log entry.
type Event struct {
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
	Stage     string    `json:"stage,omitempty"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Logger handles structured logging.
type Logger struct {
	llmLogPath string
	maxSize    int64
}

func NewLogger() *Logger {
	return &Logger{
		llmLogPath: filepath.Join("logs", "llm.jsonl"),
		maxSize:    10 * 1024 * 1024, // 10MB
	}
}

// Log emits a structured JSON event to stdout.
func (l *Logger) Log(evt Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		fmt.Printf("{\"error\": \"failed to marshal event: %v\"}\n", err)
		return
	}
	fmt.Println(string(data))

	if evt.Type == EventTypeLLM {
		l.writeToFile(data)
	}
}

func (l *Logger) writeToFile(data []byte) {
	if err := os.MkdirAll(filepath.Dir(l.llmLogPath), 0755); err != nil {
		log.Printf("failed to create log directory: %v", err)
		return
	}

	// Check size before writing
	info, err := os.Stat(l.llmLogPath)
	if err == nil && info.Size() > l.maxSize {
		l.rotateLogs()
	}

	f, err := os.OpenFile(l.llmLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("failed to open log file: %v", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		log.Printf("failed to write to log file: %v", err)
	}
}

func (l *Logger) rotateLogs() {
	// Simple rotation: keep one .old file
	oldPath := l.llmLogPath + ".old"
	_ = os.Remove(oldPath)
	_ = os.Rename(l.llmLogPath, oldPath)
}

// Helper methods for common events

func (l *Logger) LogStage(runID, stage, status string) {
	l.Log(Event{
		Type:  EventTypeStage,
		RunID: runID,
		Stage: stage,
		Data:  map[string]string{"status": status},
	})
}

func (l *Logger) LogReasoning(runID, stage, thought, action, observation string) {
	l.Log(Event{
		Type:  EventTypeReasoning,
		RunID: runID,
		Stage: stage,
		Data: map[string]string{
			"thought":     thought,
			"action":      action,
			"observation": observation,
		},
	})
}

func (l *Logger) LogPolicyCheck(runID, stage, effect, reason string) {
	l.Log(Event{
		Type:  EventTypePolicyCheck,
		RunID: runID,
		Stage: stage,
		Data: map[string]string{
			"effect": effect,
			"reason": reason,
		},
	})
}

func (l *Logger) LogVerdict(runID string, withinBudget bool, totalSpent, remaining float64) {
	l.Log(Event{
		Type:  EventTypeVerdict,
		RunID: runID,
		Data: map[string]any{
			"within_budget": withinBudget,
			"total_spent":   totalSpent,
			"remaining":     remaining,
		},
	})
}

func (l *Logger) LogRun(runID string, success bool, elapsed time.Duration) {
	l.Log(Event{
		Type:  EventTypeRun,
		RunID: runID,
		Data: map[string]any{
			"success":    success,
			"elapsed_ms": elapsed.Milliseconds(),
		},
	})
}

func (l *Logger) LogLLM(runID, stage string, prompt any, response string) {
	l.Log(Event{
		Type:  EventTypeLLM,
		RunID: runID,
		Stage: stage,
		Data: map[string]any{
			"prompt":   prompt,
			"response": response,
		},
	})
}
