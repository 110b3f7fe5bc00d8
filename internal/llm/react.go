package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Reasoning holds the three labeled sections extracted from a model
// reply. Any field may be empty: the parser tolerates missing labels
// and downstream consumers must too.
type Reasoning struct {
	Thought     string `json:"thought"`
	Action      string `json:"action"`
	Observation string `json:"observation"`
	Raw         string `json:"raw"`
}

var labelRe = regexp.MustCompile(`(?i)(Thought|Action|Observation):`)

// ParseReasoning splits raw model text on the Thought/Action/Observation
// labels. Each section runs from its label to the next label or the end
// of the string. Labels are matched case-insensitively. There is no
// schema validation and no re-prompt on malformed output.
func ParseReasoning(raw string) Reasoning {
	r := Reasoning{Raw: raw}
	locs := labelRe.FindAllStringSubmatchIndex(raw, -1)
	for i, loc := range locs {
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(raw[loc[1]:end])
		switch strings.ToLower(raw[loc[2]:loc[3]]) {
		case "thought":
			r.Thought = body
		case "action":
			r.Action = body
		case "observation":
			r.Observation = body
		}
	}
	return r
}

// Text renders the parsed sections back into labeled lines, or the raw
// reply when no Thought was found.
func (r Reasoning) Text() string {
	if r.Thought == "" {
		return r.Raw
	}
	return fmt.Sprintf("Thought: %s\nAction: %s\nObservation: %s", r.Thought, r.Action, r.Observation)
}

// GenerateReasoning runs one generation and parses the reply into its
// labeled sections.
func GenerateReasoning(ctx context.Context, g Generator, systemPrompt, userPrompt string) (Reasoning, error) {
	raw, err := g.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return Reasoning{}, err
	}
	return ParseReasoning(raw), nil
}
