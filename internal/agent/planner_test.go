package agent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meera/wayfarer/internal/catalog"
	"github.com/meera/wayfarer/internal/governance"
	"github.com/meera/wayfarer/internal/observability"
)

// scriptedGenerator replays canned model replies in call order. The
// model boundary has no deterministic oracle, so pipeline tests only
// assert the deterministic logic around it.
type scriptedGenerator struct {
	responses []string
	calls     int
	err       error
}

func (g *scriptedGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	if g.calls >= len(g.responses) {
		return "", fmt.Errorf("unexpected model call %d", g.calls+1)
	}
	r := g.responses[g.calls]
	g.calls++
	return r, nil
}

const plannerTestFlights = `[
  {"id": "FL001", "airline": "Singapore Airlines", "origin": "Singapore", "destination": "Tokyo", "price": 450, "departure_time": "08:30", "arrival_time": "16:15", "duration_hours": 6.75, "stops": 0, "class": "Economy"},
  {"id": "FL002", "airline": "ANA", "origin": "Singapore", "destination": "Tokyo", "price": 520, "departure_time": "14:00", "arrival_time": "21:50", "duration_hours": 6.8, "stops": 0, "class": "Economy"},
  {"id": "FL003", "airline": "Scoot", "origin": "Singapore", "destination": "Tokyo", "price": 380, "departure_time": "01:20", "arrival_time": "11:45", "duration_hours": 9.4, "stops": 1, "class": "Economy"}
]`

const plannerTestAccommodations = `[
  {"id": "AC001", "name": "Sakura Inn", "type": "Hotel", "city": "Tokyo", "price_per_night": 120, "rating": 4.2, "location": "Shinjuku", "amenities": ["WiFi"]},
  {"id": "AC002", "name": "Capsule Pod", "type": "Capsule Hotel", "city": "Tokyo", "price_per_night": 45, "rating": 3.6, "location": "Asakusa", "amenities": ["WiFi"]}
]`

const plannerTestAttractions = `[
  {"id": "AT001", "name": "Old Temple", "city": "Tokyo", "category": "Culture", "cost": 50, "duration_hours": 2, "description": "A temple"},
  {"id": "AT002", "name": "Fish Market", "city": "Tokyo", "category": "Food", "cost": 30, "duration_hours": 3, "description": "A market"},
  {"id": "AT003", "name": "City Park", "city": "Tokyo", "category": "Nature", "cost": 0, "duration_hours": 1.5, "description": "A park"}
]`

func newTestPlanner(t *testing.T, gen *scriptedGenerator, policy governance.PolicyEngine) *Planner {
	t.Helper()

	dataDir := t.TempDir()
	files := map[string]string{
		"flights.json":        plannerTestFlights,
		"accommodations.json": plannerTestAccommodations,
		"attractions.json":    plannerTestAttractions,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0644))
	}

	if policy == nil {
		policy = governance.NewDefaultPolicyEngine()
	}

	// An empty prompts dir is fine: stages tolerate a missing prompt
	// file and run without a system prompt.
	return NewPlanner(gen, catalog.NewLoader(dataDir), NewPromptManager(t.TempDir()), policy, observability.NewLogger())
}

func TestRun_CompletePlan(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		// parse
		"Thought: clear request\nAction: extract the parameters\nObservation: all present\n\nORIGIN: Singapore\nDESTINATION: Tokyo\nBUDGET: $1,500\nDAYS: 4\nNIGHTS: 4\nPREFERENCES: culture and food",
		// flight
		"Thought: direct and on budget\nAction: Book FL001 at $450\nObservation: best balance of price and timing",
		// accommodation
		"Thought: well rated and central\nAction: Choose Sakura Inn for 4 nights, total $480\nObservation: fits the nightly cap",
		// itinerary
		"Thought: spread the highlights evenly\nAction:\nDAY 1:\n- Old Temple\n- City Park\nDAY 2:\n- Fish Market\nObservation: a balanced mix",
		// budget
		"Thought: comfortably inside the budget\nAction: approve the plan\nObservation: healthy reserve",
		// summary
		"Thought: solid plan overall\nAction: A 4-day Tokyo trip under budget with culture and food covered.\nObservation: nothing outstanding",
	}}
	planner := newTestPlanner(t, gen, nil)

	state, err := planner.Run(context.Background(), "I want to visit Tokyo for 4 days with a budget of $1500. I love culture and food.")
	require.NoError(t, err)
	require.NotNil(t, state)

	// Every slot and both final fields must be populated.
	require.NotNil(t, state.Flight)
	require.NotNil(t, state.Accommodation)
	require.NotNil(t, state.Itinerary)
	require.NotNil(t, state.Budget)
	assert.NotEmpty(t, state.Summary)

	assert.Equal(t, "Tokyo", state.Request.Destination)
	assert.Equal(t, 1500.0, state.Request.Budget)
	assert.Equal(t, 4, state.Request.Days)

	require.NotNil(t, state.Flight.Flight)
	assert.Equal(t, "FL001", state.Flight.Flight.ID)
	assert.Equal(t, 450.0, state.Flight.Cost)

	require.NotNil(t, state.Accommodation.Accommodation)
	assert.Equal(t, "Sakura Inn", state.Accommodation.Accommodation.Name)
	assert.Equal(t, 480.0, state.Accommodation.TotalCost)

	assert.Len(t, state.Itinerary.Days, 2)
	assert.Equal(t, 80.0, state.Itinerary.TotalCost)

	// 450 + 480 + 80 = 1010 of 1500: within budget, 490 remaining.
	assert.True(t, state.Budget.WithinBudget)
	assert.Equal(t, 1010.0, state.Budget.TotalSpent)
	assert.Equal(t, 490.0, state.Budget.Remaining)

	assert.True(t, state.Success)
	assert.Equal(t, 6, gen.calls)
}

func TestRun_UnknownDestination(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		// parse
		"Thought: unusual destination\nAction: extract the parameters\nObservation: done\n\nORIGIN: Singapore\nDESTINATION: Atlantis\nBUDGET: 1000\nDAYS: 3\nNIGHTS: 3\nPREFERENCES: diving",
		// budget (the three catalog stages skip their model call: no candidates)
		"Thought: nothing was booked\nAction: note the empty plan\nObservation: zero spend",
		// summary
		"Thought: nothing to summarize\nAction: No bookable options were found for Atlantis.\nObservation: try another destination",
	}}
	planner := newTestPlanner(t, gen, nil)

	state, err := planner.Run(context.Background(), "3 days in Atlantis for $1000, I love diving")
	require.NoError(t, err, "no stage may raise on an empty catalog match")
	require.NotNil(t, state)

	// Each catalog stage returns its explicit empty-option marker.
	require.NotNil(t, state.Flight)
	assert.Nil(t, state.Flight.Flight)
	assert.Equal(t, 0.0, state.Flight.Cost)

	require.NotNil(t, state.Accommodation)
	assert.Nil(t, state.Accommodation.Accommodation)

	require.NotNil(t, state.Itinerary)
	assert.Empty(t, state.Itinerary.Days)

	require.NotNil(t, state.Budget)
	assert.Equal(t, 0.0, state.Budget.TotalSpent)

	assert.False(t, state.Success)
	assert.Equal(t, 3, gen.calls)
}

func TestRun_ModelFailureAborts(t *testing.T) {
	gen := &scriptedGenerator{err: fmt.Errorf("connection refused")}
	planner := newTestPlanner(t, gen, nil)

	state, err := planner.Run(context.Background(), "Tokyo for a week")
	require.Error(t, err)
	assert.Nil(t, state, "an aborted run delivers no partial result")
	assert.Contains(t, err.Error(), StageParse)
}

func TestRun_MidPipelineFailureAborts(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		"ORIGIN: Singapore\nDESTINATION: Tokyo\nBUDGET: 1500\nDAYS: 4\nNIGHTS: 4",
		// flight stage gets no scripted reply: the generator errors
	}}
	planner := newTestPlanner(t, gen, nil)

	state, err := planner.Run(context.Background(), "Tokyo for 4 days, $1500")
	require.Error(t, err)
	assert.Nil(t, state)
	assert.Contains(t, err.Error(), StageFlight)
}
