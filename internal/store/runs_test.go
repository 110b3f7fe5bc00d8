package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RunStore {
	t.Helper()
	s, err := NewRunStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunStore_SaveAndList(t *testing.T) {
	s := newTestStore(t)

	params := map[string]any{"destination": "Tokyo", "budget": 1500}
	stages := []StagePayload{
		{Stage: "recommend_flight", Result: map[string]any{"id": "FL001", "cost": 450}},
		{Stage: "validate_budget", Result: map[string]any{"within_budget": true}},
	}

	runID, err := s.SaveRun("Tokyo for 4 days", params, stages, "A fine trip.", true)
	require.NoError(t, err)
	assert.Positive(t, runID)

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "Tokyo for 4 days", runs[0].Request)
	assert.Contains(t, runs[0].Params, "Tokyo")
	assert.Equal(t, "A fine trip.", runs[0].Summary)
	assert.True(t, runs[0].Success)
}

func TestRunStore_StageResultsKeepOrder(t *testing.T) {
	s := newTestStore(t)

	stages := []StagePayload{
		{Stage: "recommend_flight", Result: map[string]any{"cost": 450}},
		{Stage: "recommend_accommodation", Result: map[string]any{"cost": 480}},
		{Stage: "build_itinerary", Result: map[string]any{"cost": 80}},
	}
	runID, err := s.SaveRun("ordering test", nil, stages, "", false)
	require.NoError(t, err)

	records, err := s.GetStageResults(runID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "recommend_flight", records[0].Stage)
	assert.Equal(t, "recommend_accommodation", records[1].Stage)
	assert.Equal(t, "build_itinerary", records[2].Stage)
	assert.Contains(t, records[0].Payload, "450")
}

func TestRunStore_ListEmpty(t *testing.T) {
	s := newTestStore(t)
	runs, err := s.ListRuns(5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
