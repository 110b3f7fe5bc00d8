package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/meera/wayfarer/internal/catalog"
	"github.com/meera/wayfarer/internal/governance"
	"github.com/meera/wayfarer/internal/llm"
)

var flightIDRe = regexp.MustCompile(`(?i)FL\d{3}`)

// RecommendFlight filters the flights catalog by route and price, asks
// the model to pick one, and validates the pick against policy. Zero
// matching flights yields the explicit empty-option marker. Which
// candidate the model names is its own judgment; only the filtering,
// the policy check and the fallback are deterministic.
func (p *Planner) RecommendFlight(ctx context.Context, runID string, req TripRequest) (*FlightResult, error) {
	flights, err := p.Catalog.Flights()
	if err != nil {
		return nil, err
	}

	costCap := req.Budget * flightBudgetShare
	candidates := catalog.FilterFlights(flights, req.Origin, req.Destination, costCap)
	if len(candidates) == 0 {
		return &FlightResult{
			Reasoning: llm.Reasoning{
				Raw: fmt.Sprintf("No flights found from %s to %s within budget of $%.2f", req.Origin, req.Destination, costCap),
			},
		}, nil
	}

	var lines []string
	for _, f := range candidates {
		lines = append(lines, fmt.Sprintf("- %s Flight %s: $%.2f, %s-%s, %.1fhrs, %d stops, %s",
			f.Airline, f.ID, f.Price, f.DepartureTime, f.ArrivalTime, f.DurationHours, f.Stops, f.Class))
	}

	userPrompt := fmt.Sprintf(`Analyze these available flights from %s to %s:

%s

User's budget: $%.2f
User preferences: %s

Use the ReAct framework to recommend the BEST flight option:
1. Thought: Analyze the options considering budget, timing, and convenience
2. Action: Recommend a specific Flight ID with price
3. Observation: Explain trade-offs and why this is the best choice

Be specific and include the Flight ID in your Action.`,
		req.Origin, req.Destination, strings.Join(lines, "\n"), costCap, orNone(req.Preferences))

	reasoning, err := llm.GenerateReasoning(ctx, p.Gen, p.systemPrompt(StageFlight), userPrompt)
	if err != nil {
		return nil, err
	}
	p.Logger.LogLLM(runID, StageFlight, userPrompt, reasoning.Raw)
	p.Logger.LogReasoning(runID, StageFlight, reasoning.Thought, reasoning.Action, reasoning.Observation)

	var pick *catalog.Flight
	if id := flightIDRe.FindString(reasoning.Action); id != "" {
		id = strings.ToUpper(id)
		for i := range candidates {
			if candidates[i].ID == id {
				pick = &candidates[i]
				break
			}
		}
		if pick != nil {
			res, err := p.Policy.Evaluate(ctx, governance.Request{
				Stage:      StageFlight,
				OptionID:   pick.ID,
				Cost:       pick.Price,
				CostCap:    costCap,
				Candidates: flightIDs(candidates),
			})
			if err != nil {
				return nil, err
			}
			p.Logger.LogPolicyCheck(runID, StageFlight, string(res.Effect), res.Reason)
			if res.Effect != governance.EffectAllow {
				pick = nil
			}
		}
	}

	// Unparseable or denied pick degrades to the cheapest candidate.
	if pick == nil {
		cheapest := &candidates[0]
		for i := range candidates {
			if candidates[i].Price < cheapest.Price {
				cheapest = &candidates[i]
			}
		}
		pick = cheapest
	}

	var alternatives []catalog.Flight
	for _, f := range candidates {
		if f.ID != pick.ID && len(alternatives) < 2 {
			alternatives = append(alternatives, f)
		}
	}

	return &FlightResult{
		Flight:       pick,
		Cost:         pick.Price,
		Alternatives: alternatives,
		Reasoning:    reasoning,
	}, nil
}

func flightIDs(flights []catalog.Flight) []string {
	ids := make([]string, len(flights))
	for i, f := range flights {
		ids[i] = f.ID
	}
	return ids
}

func orNone(s string) string {
	if s == "" {
		return "None specified"
	}
	return s
}
