package evo

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqevo/internal/model"
)

func uniformGenome(base string, length int) model.Genome {
	return model.Genome{Bases: strings.Repeat(base, length)}
}

func TestSinglePointCrossoverSplicesFromSnapshot(t *testing.T) {
	population := []model.Genome{
		uniformGenome("A", 10),
		uniformGenome("C", 10),
		uniformGenome("G", 10),
		uniformGenome("T", 10),
	}
	rng := &scriptedSource{
		ints:   []int{0, 1, 3, 0},
		floats: []float64{0.5, 0.11, 0.22, 0, 0.33, 0.44},
	}

	n, err := SinglePointCrossover{}.Apply(rng, population)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, "AAAAAGGGGG", population[0].Bases)
	assert.Equal(t, "GGGGGAAAAA", population[1].Bases)
	assert.Equal(t, "TTAAAAAAAA", population[2].Bases)
	assert.Equal(t, "AATTTTTTTT", population[3].Bases)
	assert.Equal(t, []float64{0.11, 0.22, 0.33, 0.44}, []float64{
		population[0].Fitness, population[1].Fitness, population[2].Fitness, population[3].Fitness,
	})
}

func TestSinglePointCrossoverOffspringArePrefixSuffix(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 100; trial++ {
		population := make([]model.Genome, 6)
		for i := range population {
			population[i] = uniformGenome(string("ACGTAC"[i]), 20)
		}
		snapshot := append([]model.Genome(nil), population...)

		_, err := SinglePointCrossover{}.Apply(rng, population)
		require.NoError(t, err)
		for _, child := range population {
			require.Len(t, child.Bases, 20)
			assert.True(t, isSplice(child.Bases, snapshot), "child %q is not a splice of two parents", child.Bases)
			assert.GreaterOrEqual(t, child.Fitness, 0.0)
			assert.Less(t, child.Fitness, 1.0)
		}
	}
}

func isSplice(child string, parents []model.Genome) bool {
	for k := 0; k <= len(child); k++ {
		for i, p1 := range parents {
			for j, p2 := range parents {
				if i == j {
					continue
				}
				if child == p1.Bases[:k]+p2.Bases[k:] {
					return true
				}
			}
		}
	}
	return false
}

func TestSinglePointCrossoverPopulationOfTwoTerminates(t *testing.T) {
	population := []model.Genome{uniformGenome("A", 8), uniformGenome("C", 8)}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		_, err := SinglePointCrossover{}.Apply(rng, population)
		require.NoError(t, err)
	}
	assert.Len(t, population, 2)
}

func TestSinglePointCrossoverOddPopulation(t *testing.T) {
	population := []model.Genome{uniformGenome("A", 5), uniformGenome("C", 5), uniformGenome("G", 5)}
	n, err := SinglePointCrossover{}.Apply(rand.New(rand.NewSource(9)), population)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, population, 3)
	for _, g := range population {
		assert.Equal(t, 5, g.Len())
	}
}

func TestSinglePointCrossoverRejectsTinyPopulation(t *testing.T) {
	_, err := SinglePointCrossover{}.Apply(rand.New(rand.NewSource(1)), []model.Genome{uniformGenome("A", 3)})
	require.Error(t, err)
}

func TestPickDistinctNeverRepeats(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for n := 2; n < 8; n++ {
		for i := 0; i < 200; i++ {
			a, b := pickDistinct(rng, n)
			require.NotEqual(t, a, b)
			require.True(t, a >= 0 && a < n && b >= 0 && b < n)
		}
	}
}
