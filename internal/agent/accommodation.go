package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/meera/wayfarer/internal/catalog"
	"github.com/meera/wayfarer/internal/governance"
	"github.com/meera/wayfarer/internal/llm"
)

// RecommendAccommodation filters the accommodations catalog by city and
// nightly rate, asks the model to pick one by name, and validates the
// pick against policy. lodgingBudget is the total amount available for
// all nights.
func (p *Planner) RecommendAccommodation(ctx context.Context, runID string, req TripRequest, lodgingBudget float64) (*AccommodationResult, error) {
	accommodations, err := p.Catalog.Accommodations()
	if err != nil {
		return nil, err
	}

	var maxPerNight float64
	if req.Nights > 0 {
		maxPerNight = lodgingBudget / float64(req.Nights)
	}

	candidates := catalog.FilterAccommodations(accommodations, req.Destination, maxPerNight)
	if len(candidates) == 0 {
		return &AccommodationResult{
			Reasoning: llm.Reasoning{
				Raw: fmt.Sprintf("No accommodations found in %s within $%.2f/night", req.Destination, maxPerNight),
			},
		}, nil
	}

	var lines []string
	for _, a := range candidates {
		amenities := a.Amenities
		if len(amenities) > 3 {
			amenities = amenities[:3]
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): $%.2f/night, Rating: %.1f, Location: %s, Amenities: %s",
			a.Name, a.Type, a.PricePerNight, a.Rating, a.Location, strings.Join(amenities, ", ")))
	}

	userPrompt := fmt.Sprintf(`Analyze these available accommodations in %s:

%s

Trip details:
- Duration: %d nights
- Budget available for accommodation: $%.2f
- Maximum per night: $%.2f

User preferences: %s

Use the ReAct framework to recommend the BEST accommodation:
1. Thought: Analyze the options considering budget, location, amenities, and ratings
2. Action: Recommend a specific accommodation by name with total cost
3. Observation: Explain the value proposition and trade-offs

Be specific and include the accommodation name in your Action.`,
		req.Destination, strings.Join(lines, "\n"), req.Nights, lodgingBudget, maxPerNight, orNone(req.Preferences))

	reasoning, err := llm.GenerateReasoning(ctx, p.Gen, p.systemPrompt(StageAccommodation), userPrompt)
	if err != nil {
		return nil, err
	}
	p.Logger.LogLLM(runID, StageAccommodation, userPrompt, reasoning.Raw)
	p.Logger.LogReasoning(runID, StageAccommodation, reasoning.Thought, reasoning.Action, reasoning.Observation)

	// The model names its pick in free text; match by name substring.
	var pick *catalog.Accommodation
	action := strings.ToLower(reasoning.Action)
	for i := range candidates {
		if strings.Contains(action, strings.ToLower(candidates[i].Name)) {
			pick = &candidates[i]
			break
		}
	}

	if pick != nil {
		res, err := p.Policy.Evaluate(ctx, governance.Request{
			Stage:      StageAccommodation,
			OptionID:   pick.Name,
			Cost:       pick.PricePerNight * float64(req.Nights),
			CostCap:    lodgingBudget,
			Candidates: accommodationNames(candidates),
		})
		if err != nil {
			return nil, err
		}
		p.Logger.LogPolicyCheck(runID, StageAccommodation, string(res.Effect), res.Reason)
		if res.Effect != governance.EffectAllow {
			pick = nil
		}
	}

	// Fallback: best rating-per-price value.
	if pick == nil {
		best := &candidates[0]
		for i := range candidates {
			if candidates[i].Rating/(candidates[i].PricePerNight+1) > best.Rating/(best.PricePerNight+1) {
				best = &candidates[i]
			}
		}
		pick = best
	}

	return &AccommodationResult{
		Accommodation: pick,
		CostPerNight:  pick.PricePerNight,
		TotalCost:     pick.PricePerNight * float64(req.Nights),
		Reasoning:     reasoning,
	}, nil
}

func accommodationNames(accommodations []catalog.Accommodation) []string {
	names := make([]string, len(accommodations))
	for i, a := range accommodations {
		names[i] = a.Name
	}
	return names
}
