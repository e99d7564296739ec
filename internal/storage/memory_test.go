package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

func sampleRun(id string) model.RunRecord {
	return model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		RunID:           id,
		Engine:          "tabu",
		Problem:         "peptide",
		MotifIndex:      0,
		Motif:           "GGAGGVGKS",
		ScoreMode:       "motif",
		Seed:            42,
		Iterations:      100,
		BestSequence:    "GGAGGVGKS",
		BestFitness:     -41.5,
		Evaluations:     4100,
		CreatedAtUTC:    "2026-08-24T10:00:00Z",
	}
}

func TestMemoryStoreRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

	run := sampleRun("run-1")
	require.NoError(t, store.SaveRun(ctx, run))

	loaded, ok, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, run, loaded)
}

func TestMemoryStoreProgressRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

	input := []model.GenerationStats{
		{Generation: 0, Min: -10, Max: 4, Mean: -2.5},
		{Generation: 1, Min: -12, Max: 2, Mean: -4.1},
	}
	require.NoError(t, store.SaveProgress(ctx, "run-1", input))

	loaded, ok, err := store.GetProgress(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, input, loaded)

	// The store hands out copies.
	loaded[0].Min = 999
	again, ok, err := store.GetProgress(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, input, again)
}

func TestMemoryStoreTraceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

	input := []model.TracePoint{
		{Iteration: 0, BestFitness: -3},
		{Iteration: 1, BestFitness: -7},
		{Iteration: 2, BestFitness: -7},
	}
	require.NoError(t, store.SaveTrace(ctx, "run-1", input))

	loaded, ok, err := store.GetTrace(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, input, loaded)
}

func TestMemoryStoreMissingKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

	_, ok, err := store.GetRun(ctx, "absent")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = store.GetProgress(ctx, "absent")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = store.GetTrace(ctx, "absent")
	require.NoError(t, err)
	require.False(t, ok)
}
