package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PromptManager loads per-stage system prompts from a directory. Each
// stage has one <stage>.md file; a preamble.md, when present, is
// prepended to every stage's prompt.
type PromptManager struct {
	Directory string
}

func NewPromptManager(dir string) *PromptManager {
	return &PromptManager{Directory: dir}
}

// StagePrompt returns the system prompt for the named stage.
func (pm *PromptManager) StagePrompt(stage string) (string, error) {
	var contents []string

	preamble, err := os.ReadFile(filepath.Join(pm.Directory, "preamble.md"))
	if err == nil {
		contents = append(contents, strings.TrimSpace(string(preamble)))
	}

	path := filepath.Join(pm.Directory, stage+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file for stage %s: %w", stage, err)
	}
	contents = append(contents, strings.TrimSpace(string(data)))

	return strings.Join(contents, "\n\n---\n\n"), nil
}
