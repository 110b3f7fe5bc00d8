package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/meera/wayfarer/internal/catalog"
	"github.com/meera/wayfarer/internal/llm"
)

// BuildItinerary asks the model to lay out a day-by-day plan over the
// destination's attractions and parses the DAY sections back into
// structured activity lists. An unparseable reply degrades to a
// deterministic round-robin fill; an empty catalog yields the explicit
// empty-option marker.
func (p *Planner) BuildItinerary(ctx context.Context, runID string, req TripRequest, activityBudget float64) (*ItineraryResult, error) {
	attractions, err := p.Catalog.Attractions()
	if err != nil {
		return nil, err
	}

	candidates := catalog.FilterAttractions(attractions, req.Destination, "")
	if len(candidates) == 0 {
		return &ItineraryResult{
			Reasoning: llm.Reasoning{
				Raw: fmt.Sprintf("No attractions found for %s", req.Destination),
			},
		}, nil
	}

	var lines []string
	for _, a := range candidates {
		lines = append(lines, fmt.Sprintf("- %s (%s): $%.2f, %.1fhrs - %s",
			a.Name, a.Category, a.Cost, a.DurationHours, a.Description))
	}

	userPrompt := fmt.Sprintf(`Create a %d-day itinerary for %s from these attractions:

%s

Constraints:
- Total budget for activities: $%.2f
- %d full days to plan
- Balance activity types (culture, nature, landmarks, food)
- Don't over-pack days (max 3-4 activities per day)

User preferences: %s

Use the ReAct framework to create a balanced itinerary:
1. Thought: Consider budget, variety, pacing, and must-see attractions
2. Action: Create a day-by-day plan listing specific attractions
3. Observation: Explain the balance and reasoning behind the itinerary

Include specific attraction names in your Action section organized by day,
one "DAY N:" heading per day with a dashed list of attractions under it.`,
		req.Days, req.Destination, strings.Join(lines, "\n"), activityBudget, req.Days, orNone(req.Preferences))

	reasoning, err := llm.GenerateReasoning(ctx, p.Gen, p.systemPrompt(StageItinerary), userPrompt)
	if err != nil {
		return nil, err
	}
	p.Logger.LogLLM(runID, StageItinerary, userPrompt, reasoning.Raw)
	p.Logger.LogReasoning(runID, StageItinerary, reasoning.Thought, reasoning.Action, reasoning.Observation)

	days, totalCost := parseDayPlan(reasoning.Raw, candidates)
	if len(days) == 0 {
		days, totalCost = roundRobinItinerary(candidates, req.Days)
	}

	return &ItineraryResult{
		Days:      days,
		TotalCost: totalCost,
		Reasoning: reasoning,
	}, nil
}

// parseDayPlan walks the model reply line by line: a "DAY" heading
// starts a new day, a dashed line under it is matched against the
// candidate attraction names. Only attractions from the candidate set
// are ever admitted.
func parseDayPlan(response string, candidates []catalog.Attraction) ([]DayPlan, float64) {
	var days []DayPlan
	var totalCost float64

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		if strings.HasPrefix(upper, "DAY") {
			days = append(days, DayPlan{Day: len(days) + 1})
			continue
		}
		if strings.HasPrefix(line, "-") && len(days) > 0 {
			activity := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "-")))
			for _, a := range candidates {
				if strings.Contains(activity, strings.ToLower(a.Name)) {
					last := &days[len(days)-1]
					last.Activities = append(last.Activities, a)
					totalCost += a.Cost
					break
				}
			}
		}
	}

	return days, totalCost
}

// roundRobinItinerary deterministically spreads the candidates over the
// requested days, 2-4 activities per day.
func roundRobinItinerary(candidates []catalog.Attraction, numDays int) ([]DayPlan, float64) {
	if numDays <= 0 {
		return nil, 0
	}

	perDay := len(candidates) / numDays
	if perDay < 2 {
		perDay = 2
	}
	if perDay > 4 {
		perDay = 4
	}

	var days []DayPlan
	var totalCost float64
	for day := 1; day <= numDays; day++ {
		start := (day - 1) * perDay
		if start >= len(candidates) {
			days = append(days, DayPlan{Day: day})
			continue
		}
		end := start + perDay
		if end > len(candidates) {
			end = len(candidates)
		}
		activities := candidates[start:end]
		for _, a := range activities {
			totalCost += a.Cost
		}
		days = append(days, DayPlan{Day: day, Activities: activities})
	}
	return days, totalCost
}
