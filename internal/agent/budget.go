package agent

import (
	"context"
	"fmt"

	"github.com/meera/wayfarer/internal/llm"
)

// ValidateBudget is the one deterministic stage: the verdict is always
// the arithmetic comparison of the three recorded costs against the
// stated budget, computed here, never inferred from model text. The
// model is only asked to phrase the verdict in the three labeled
// sections. A missing upstream option already shows up as a zero cost.
func (p *Planner) ValidateBudget(ctx context.Context, runID string, req TripRequest, flightCost, accommodationCost, activitiesCost float64) (*BudgetResult, error) {
	totalSpent := flightCost + accommodationCost + activitiesCost
	remaining := req.Budget - totalSpent
	withinBudget := remaining >= 0

	var percentUsed float64
	if req.Budget > 0 {
		percentUsed = totalSpent / req.Budget * 100
	}

	var suggestions []string
	if !withinBudget {
		suggestions = append(suggestions, fmt.Sprintf("Budget shortfall: $%.2f", -remaining))
		if flightCost > req.Budget*0.4 {
			suggestions = append(suggestions, "Consider a more economical flight option")
		}
		if accommodationCost > req.Budget*0.35 {
			suggestions = append(suggestions, "Look for cheaper accommodation alternatives")
		}
		if activitiesCost > req.Budget*0.25 {
			suggestions = append(suggestions, "Reduce number of paid attractions, focus on free options")
		}
	}

	status := fmt.Sprintf("REMAINING: $%.2f", remaining)
	if !withinBudget {
		status = fmt.Sprintf("OVER BUDGET by $%.2f", -remaining)
	}

	userPrompt := fmt.Sprintf(`Analyze this travel budget:

TOTAL BUDGET: $%.2f

Cost Breakdown:
- Flights: $%.2f
- Accommodation: $%.2f
- Activities: $%.2f

TOTAL SPENT: $%.2f
%s

Use the ReAct framework to validate the budget:
1. Thought: Assess the budget breakdown and identify any issues or opportunities
2. Action: Provide specific status and recommendations
3. Observation: Note insights about budget allocation and balance

Be specific and actionable.`,
		req.Budget, flightCost, accommodationCost, activitiesCost, totalSpent, status)

	reasoning, err := llm.GenerateReasoning(ctx, p.Gen, p.systemPrompt(StageBudget), userPrompt)
	if err != nil {
		return nil, err
	}
	p.Logger.LogLLM(runID, StageBudget, userPrompt, reasoning.Raw)
	p.Logger.LogReasoning(runID, StageBudget, reasoning.Thought, reasoning.Action, reasoning.Observation)
	p.Logger.LogVerdict(runID, withinBudget, totalSpent, remaining)

	return &BudgetResult{
		WithinBudget: withinBudget,
		Breakdown: BudgetBreakdown{
			Flights:       flightCost,
			Accommodation: accommodationCost,
			Activities:    activitiesCost,
			Total:         totalSpent,
		},
		TotalSpent:  totalSpent,
		Remaining:   remaining,
		PercentUsed: percentUsed,
		Suggestions: suggestions,
		Reasoning:   reasoning,
	}, nil
}
