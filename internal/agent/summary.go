package agent

import (
	"context"
	"fmt"

	"github.com/meera/wayfarer/internal/llm"
)

// Summarize synthesizes the final free-text summary from the
// accumulated state and computes the overall success flag: a run
// succeeds when a flight and lodging were found and the plan fits the
// stated budget.
func (p *Planner) Summarize(ctx context.Context, runID string, state *PlanState) (string, bool, error) {
	flightLine := "Not found - $0.00"
	if state.Flight != nil && state.Flight.Flight != nil {
		flightLine = fmt.Sprintf("%s - $%.2f", state.Flight.Flight.Airline, state.Flight.Cost)
	}
	lodgingLine := "Not found - $0.00"
	if state.Accommodation != nil && state.Accommodation.Accommodation != nil {
		lodgingLine = fmt.Sprintf("%s - $%.2f", state.Accommodation.Accommodation.Name, state.Accommodation.TotalCost)
	}
	var activitiesCost float64
	if state.Itinerary != nil {
		activitiesCost = state.Itinerary.TotalCost
	}

	budgetLine := "Unknown"
	if state.Budget != nil {
		if state.Budget.WithinBudget {
			budgetLine = fmt.Sprintf("Within budget - $%.2f remaining", state.Budget.Remaining)
		} else {
			budgetLine = fmt.Sprintf("Over budget - $%.2f over", -state.Budget.Remaining)
		}
	}

	userPrompt := fmt.Sprintf(`Provide a concise executive summary of this travel plan:

Destination: %s
Duration: %d days
Budget: $%.2f

Flight: %s
Accommodation: %s
Activities Cost: $%.2f

Budget Status: %s

Use the ReAct framework to create the final summary:
1. Thought: Review all agent outputs and assess overall plan quality
2. Action: Create a 2-3 sentence executive summary highlighting key aspects
3. Observation: Note any concerns or special considerations

Be concise and highlight the best aspects of the plan.`,
		state.Request.Destination, state.Request.Days, state.Request.Budget,
		flightLine, lodgingLine, activitiesCost, budgetLine)

	reasoning, err := llm.GenerateReasoning(ctx, p.Gen, p.systemPrompt(StageSummary), userPrompt)
	if err != nil {
		return "", false, err
	}
	p.Logger.LogLLM(runID, StageSummary, userPrompt, reasoning.Raw)
	p.Logger.LogReasoning(runID, StageSummary, reasoning.Thought, reasoning.Action, reasoning.Observation)

	success := state.Flight != nil && state.Flight.Flight != nil &&
		state.Accommodation != nil && state.Accommodation.Accommodation != nil &&
		state.Budget != nil && state.Budget.WithinBudget

	return reasoning.Text(), success, nil
}
