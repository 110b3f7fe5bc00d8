package agent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPromptManager_StagePrompt(t *testing.T) {
	tempDir := t.TempDir()

	files := map[string]string{
		"preamble.md":         "Preamble Content",
		"recommend_flight.md": "Flight Content",
	}
	for name, content := range files {
		err := os.WriteFile(filepath.Join(tempDir, name), []byte(content), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}

	pm := NewPromptManager(tempDir)
	prompt, err := pm.StagePrompt(StageFlight)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(prompt, "Preamble Content") {
		t.Error("Prompt missing preamble")
	}
	if !strings.Contains(prompt, "Flight Content") {
		t.Error("Prompt missing stage content")
	}
	if strings.Index(prompt, "Preamble Content") >= strings.Index(prompt, "Flight Content") {
		t.Error("Preamble should come before the stage prompt")
	}
}

func TestPromptManager_NoPreamble(t *testing.T) {
	tempDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tempDir, "validate_budget.md"), []byte("Budget Content"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	pm := NewPromptManager(tempDir)
	prompt, err := pm.StagePrompt(StageBudget)
	if err != nil {
		t.Fatal(err)
	}
	if prompt != "Budget Content" {
		t.Errorf("unexpected prompt: %q", prompt)
	}
}

func TestPromptManager_MissingStageFile(t *testing.T) {
	pm := NewPromptManager(t.TempDir())
	if _, err := pm.StagePrompt(StageSummary); err == nil {
		t.Error("expected an error for a missing stage prompt file")
	}
}
