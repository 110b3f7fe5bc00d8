package agent

import (
	"github.com/meera/wayfarer/internal/catalog"
	"github.com/meera/wayfarer/internal/llm"
)

// Stage names, in pipeline order. They double as the prompt file names
// under the prompts directory.
const (
	StageParse         = "parse_request"
	StageFlight        = "recommend_flight"
	StageAccommodation = "recommend_accommodation"
	StageItinerary     = "build_itinerary"
	StageBudget        = "validate_budget"
	StageSummary       = "summarize"
)

// TripRequest holds the five parameters extracted from the user's
// free-text request. It is produced once by the parse stage and
// immutable afterwards. Fields the model failed to extract stay at
// their zero values; downstream filters then simply match nothing.
type TripRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Budget      float64 `json:"budget"`
	Days        int     `json:"days"`
	Nights      int     `json:"nights"`
	Preferences string  `json:"preferences"`
}

// FlightResult is the flight stage's slot in the plan state. A nil
// Flight is the explicit "no option found" marker.
type FlightResult struct {
	Flight       *catalog.Flight  `json:"flight,omitempty"`
	Cost         float64          `json:"cost"`
	Alternatives []catalog.Flight `json:"alternatives,omitempty"`
	Reasoning    llm.Reasoning    `json:"reasoning"`
}

// AccommodationResult is the lodging stage's slot. A nil Accommodation
// is the explicit "no option found" marker.
type AccommodationResult struct {
	Accommodation *catalog.Accommodation `json:"accommodation,omitempty"`
	CostPerNight  float64                `json:"cost_per_night"`
	TotalCost     float64                `json:"total_cost"`
	Reasoning     llm.Reasoning          `json:"reasoning"`
}

// DayPlan is one day's worth of activities.
type DayPlan struct {
	Day        int                  `json:"day"`
	Activities []catalog.Attraction `json:"activities"`
}

// ItineraryResult is the itinerary stage's slot. An empty Days slice is
// the explicit "no option found" marker.
type ItineraryResult struct {
	Days      []DayPlan     `json:"days"`
	TotalCost float64       `json:"total_cost"`
	Reasoning llm.Reasoning `json:"reasoning"`
}

// BudgetBreakdown itemizes the recorded costs.
type BudgetBreakdown struct {
	Flights       float64 `json:"flights"`
	Accommodation float64 `json:"accommodation"`
	Activities    float64 `json:"activities"`
	Total         float64 `json:"total"`
}

// BudgetResult is the budget stage's slot. WithinBudget, TotalSpent and
// Remaining are computed arithmetically in code; only the Reasoning
// phrasing comes from the model.
type BudgetResult struct {
	WithinBudget bool            `json:"within_budget"`
	Breakdown    BudgetBreakdown `json:"breakdown"`
	TotalSpent   float64         `json:"total_spent"`
	Remaining    float64         `json:"remaining"`
	PercentUsed  float64         `json:"percent_used"`
	Suggestions  []string        `json:"suggestions,omitempty"`
	Reasoning    llm.Reasoning   `json:"reasoning"`
}

// PlanState is the single record threaded through the pipeline. Each
// stage populates exactly one slot; only the runner writes here, from
// the per-stage return values, so no stage can touch another's slot.
type PlanState struct {
	Input   string      `json:"input"`
	Request TripRequest `json:"request"`

	Flight        *FlightResult        `json:"flight,omitempty"`
	Accommodation *AccommodationResult `json:"accommodation,omitempty"`
	Itinerary     *ItineraryResult     `json:"itinerary,omitempty"`
	Budget        *BudgetResult        `json:"budget,omitempty"`

	Summary string `json:"summary"`
	Success bool   `json:"success"`
}
