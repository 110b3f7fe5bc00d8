package agent

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/meera/wayfarer/internal/catalog"
	"github.com/meera/wayfarer/internal/governance"
	"github.com/meera/wayfarer/internal/llm"
	"github.com/meera/wayfarer/internal/observability"
)

// Budget shares per stage: flights get 40% of the total, lodging gets
// 50% of what is left after the flight, activities get 70% of what is
// left after lodging.
const (
	flightBudgetShare   = 0.4
	lodgingBudgetShare  = 0.5
	activityBudgetShare = 0.7
)

// Planner runs the six-stage travel planning pipeline. All stages share
// one Generator, one catalog Loader and one policy engine; the only
// mutable record is the PlanState built up by Run.
type Planner struct {
	Gen     llm.Generator
	Catalog *catalog.Loader
	Prompts *PromptManager
	Policy  governance.PolicyEngine
	Logger  *observability.Logger
}

func NewPlanner(gen llm.Generator, cat *catalog.Loader, prompts *PromptManager, policy governance.PolicyEngine, logger *observability.Logger) *Planner {
	return &Planner{
		Gen:     gen,
		Catalog: cat,
		Prompts: prompts,
		Policy:  policy,
		Logger:  logger,
	}
}

// systemPrompt loads the stage's prompt file. A missing file is logged
// and tolerated: the stage runs with no system prompt.
func (p *Planner) systemPrompt(stage string) string {
	prompt, err := p.Prompts.StagePrompt(stage)
	if err != nil {
		log.Printf("Warning: %v", err)
		return ""
	}
	return prompt
}

// Run executes the six stages strictly in order, threading one
// PlanState through all of them. There is no branching, no parallelism,
// no conditional skip and no retry: the first stage error aborts the
// whole run with no partial result. A stage that finds no matching
// catalog rows is not an error; its slot records the explicit
// empty-option marker and later stages treat the missing cost as zero.
func (p *Planner) Run(ctx context.Context, userInput string) (*PlanState, error) {
	runID := fmt.Sprintf("run-%d", time.Now().UnixNano())
	started := time.Now()
	state := &PlanState{Input: userInput}

	observability.SetStage(observability.StatePlanning, StageParse)
	p.Logger.LogStage(runID, StageParse, "started")
	req, err := p.ParseRequest(ctx, runID, userInput)
	if err != nil {
		return p.abort(runID, StageParse, err)
	}
	state.Request = req
	p.Logger.LogStage(runID, StageParse, "completed")

	observability.SetStage(observability.StatePlanning, StageFlight)
	p.Logger.LogStage(runID, StageFlight, "started")
	flight, err := p.RecommendFlight(ctx, runID, req)
	if err != nil {
		return p.abort(runID, StageFlight, err)
	}
	state.Flight = flight
	p.Logger.LogStage(runID, StageFlight, "completed")

	observability.SetStage(observability.StatePlanning, StageAccommodation)
	p.Logger.LogStage(runID, StageAccommodation, "started")
	lodgingBudget := (req.Budget - flight.Cost) * lodgingBudgetShare
	accommodation, err := p.RecommendAccommodation(ctx, runID, req, lodgingBudget)
	if err != nil {
		return p.abort(runID, StageAccommodation, err)
	}
	state.Accommodation = accommodation
	p.Logger.LogStage(runID, StageAccommodation, "completed")

	observability.SetStage(observability.StatePlanning, StageItinerary)
	p.Logger.LogStage(runID, StageItinerary, "started")
	activityBudget := (req.Budget - flight.Cost - accommodation.TotalCost) * activityBudgetShare
	itinerary, err := p.BuildItinerary(ctx, runID, req, activityBudget)
	if err != nil {
		return p.abort(runID, StageItinerary, err)
	}
	state.Itinerary = itinerary
	p.Logger.LogStage(runID, StageItinerary, "completed")

	observability.SetStage(observability.StatePlanning, StageBudget)
	p.Logger.LogStage(runID, StageBudget, "started")
	budget, err := p.ValidateBudget(ctx, runID, req, flight.Cost, accommodation.TotalCost, itinerary.TotalCost)
	if err != nil {
		return p.abort(runID, StageBudget, err)
	}
	state.Budget = budget
	p.Logger.LogStage(runID, StageBudget, "completed")

	observability.SetStage(observability.StatePlanning, StageSummary)
	p.Logger.LogStage(runID, StageSummary, "started")
	summary, success, err := p.Summarize(ctx, runID, state)
	if err != nil {
		return p.abort(runID, StageSummary, err)
	}
	state.Summary = summary
	state.Success = success
	p.Logger.LogStage(runID, StageSummary, "completed")

	observability.SetStage(observability.StateDone, "")
	p.Logger.LogRun(runID, state.Success, time.Since(started))
	return state, nil
}

func (p *Planner) abort(runID, stage string, err error) (*PlanState, error) {
	observability.SetStage(observability.StateFailed, stage)
	p.Logger.LogStage(runID, stage, "failed")
	return nil, fmt.Errorf("stage %s: %w", stage, err)
}
