package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqevo/internal/model"
)

func sampleResult() Result {
	return Result{
		RunID:          "run-1",
		Seed:           42,
		PopulationSize: 50,
		SequenceLength: 4,
		Generations:    2,
		EliteFraction:  0.5,
		Series: []model.GenerationRecord{
			{Generation: 1, AverageFitness: 0.5},
			{Generation: 2, AverageFitness: 0.75},
		},
		Diagnostics: []model.GenerationStats{
			{Generation: 1, BaseMutations: 600},
			{Generation: 2, BaseMutations: 700},
		},
		Best: model.Genome{Bases: "ACGT", Fitness: 1.25},
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, Title)
	assert.Contains(t, out, "Generation")
	assert.Contains(t, out, "Average Activity")
	assert.Contains(t, out, "0.500000")
	assert.Contains(t, out, "0.750000")
	assert.Contains(t, out, "Trend: ▁█")
	assert.Contains(t, out, "Optimized Sequence: ACGT (Activity: 1.25)")
	assert.Contains(t, out, "1,300 base mutations")
	assert.Contains(t, out, "run run-1")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "json", sampleResult()))

	var decoded Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "ACGT", decoded.Best.Bases)
	assert.Len(t, decoded.Series, 2)
}

func TestRenderUnknownFormat(t *testing.T) {
	require.Error(t, Render(&bytes.Buffer{}, "xml", sampleResult()))
}
