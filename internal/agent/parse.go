package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/meera/wayfarer/internal/llm"
)

// ParseRequest extracts the five trip parameters from freeform text.
// The model is asked for labeled lines (ORIGIN:, DESTINATION:, ...);
// any line that fails to parse leaves its field at the zero value.
// There is no fallback parser and no completeness check here: an
// unextracted destination simply matches no catalog rows downstream.
func (p *Planner) ParseRequest(ctx context.Context, runID, userInput string) (TripRequest, error) {
	userPrompt := fmt.Sprintf(`Extract travel planning parameters from this request:

"%s"

Use the ReAct framework to parse the request:
1. Thought: Identify the key travel parameters in the user's request
2. Action: Extract specific values for origin, destination, budget, days, nights, and preferences
3. Observation: Confirm all necessary parameters are identified

Format the extracted parameters as:
ORIGIN: [city]
DESTINATION: [city]
BUDGET: [number]
DAYS: [number]
NIGHTS: [number]
PREFERENCES: [text]`, userInput)

	reasoning, err := llm.GenerateReasoning(ctx, p.Gen, p.systemPrompt(StageParse), userPrompt)
	if err != nil {
		return TripRequest{}, err
	}
	p.Logger.LogLLM(runID, StageParse, userPrompt, reasoning.Raw)
	p.Logger.LogReasoning(runID, StageParse, reasoning.Thought, reasoning.Action, reasoning.Observation)

	return extractParams(reasoning.Raw), nil
}

func extractParams(response string) TripRequest {
	var req TripRequest
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "ORIGIN:"):
			req.Origin = cleanValue(strings.TrimPrefix(line, "ORIGIN:"))
		case strings.HasPrefix(line, "DESTINATION:"):
			req.Destination = cleanValue(strings.TrimPrefix(line, "DESTINATION:"))
		case strings.HasPrefix(line, "BUDGET:"):
			if v, ok := parseAmount(strings.TrimPrefix(line, "BUDGET:")); ok {
				req.Budget = v
			}
		case strings.HasPrefix(line, "DAYS:"):
			if v, ok := parseCount(strings.TrimPrefix(line, "DAYS:")); ok {
				req.Days = v
			}
		case strings.HasPrefix(line, "NIGHTS:"):
			if v, ok := parseCount(strings.TrimPrefix(line, "NIGHTS:")); ok {
				req.Nights = v
			}
		case strings.HasPrefix(line, "PREFERENCES:"):
			req.Preferences = cleanValue(strings.TrimPrefix(line, "PREFERENCES:"))
		}
	}
	return req
}

// cleanValue strips whitespace and the bracket placeholders some models
// echo back from the prompt template.
func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	return strings.TrimSpace(s)
}

func parseAmount(s string) (float64, bool) {
	s = cleanValue(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseCount(s string) (int, bool) {
	fields := strings.Fields(cleanValue(s))
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return v, true
}
