package genotype

import (
	"fmt"
	"strings"

	"seqevo/internal/model"
)

// Source is the slice of *rand.Rand the simulator draws from. Tests can supply
// scripted implementations.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// RandomBase draws one symbol uniformly from alphabet.
func RandomBase(rng Source, alphabet string) (byte, error) {
	if rng == nil {
		return 0, fmt.Errorf("random source is required")
	}
	if alphabet == "" {
		return 0, ErrEmptyAlphabet
	}
	return alphabet[rng.Intn(len(alphabet))], nil
}

// Random builds a genome of the given length with uniform bases and a fitness
// drawn from [0, 1).
func Random(rng Source, length int) (model.Genome, error) {
	if length <= 0 {
		return model.Genome{}, fmt.Errorf("sequence length must be > 0")
	}
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		base, err := RandomBase(rng, Alphabet)
		if err != nil {
			return model.Genome{}, err
		}
		sb.WriteByte(base)
	}
	return model.Genome{Bases: sb.String(), Fitness: rng.Float64()}, nil
}

// Seed builds a population of size n: n-1 random genomes followed by initial.
func Seed(rng Source, initial model.Genome, n int) ([]model.Genome, error) {
	if n <= 0 {
		return nil, fmt.Errorf("population size must be > 0")
	}
	population := make([]model.Genome, 0, n)
	for i := 0; i < n-1; i++ {
		g, err := Random(rng, initial.Len())
		if err != nil {
			return nil, err
		}
		population = append(population, g)
	}
	return append(population, initial), nil
}

// Splice returns p1[:k]+p2[k:] and p2[:k]+p1[k:].
func Splice(p1, p2 string, k int) (string, string, error) {
	if len(p1) != len(p2) {
		return "", "", fmt.Errorf("parent length mismatch: %d != %d", len(p1), len(p2))
	}
	if k < 0 || k > len(p1) {
		return "", "", fmt.Errorf("crossover point %d out of range [0, %d]", k, len(p1))
	}
	return p1[:k] + p2[k:], p2[:k] + p1[k:], nil
}

// Clone copies a population slice. Genomes hold only value fields so a
// shallow copy is enough.
func Clone(population []model.Genome) []model.Genome {
	return append([]model.Genome(nil), population...)
}
