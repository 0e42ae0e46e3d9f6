package model

// Genome is one individual: a nucleotide sequence and the activity score the
// simulation treats as its fitness.
type Genome struct {
	Bases   string  `json:"bases"`
	Fitness float64 `json:"fitness"`
}

// Len reports the number of bases in the genome.
func (g Genome) Len() int {
	return len(g.Bases)
}

type GenerationRecord struct {
	Generation     int     `json:"generation"`
	AverageFitness float64 `json:"average_fitness"`
}

type GenerationStats struct {
	Generation     int     `json:"generation"`
	MeanFitness    float64 `json:"mean_fitness"`
	BestFitness    float64 `json:"best_fitness"`
	MinFitness     float64 `json:"min_fitness"`
	PopulationSize int     `json:"population_size"`
	EliteSize      int     `json:"elite_size"`
	Crossovers     int     `json:"crossovers"`
	BaseMutations  int     `json:"base_mutations"`
}

// Record projects the stats onto the (generation, average) pair reported to
// callers.
func (s GenerationStats) Record() GenerationRecord {
	return GenerationRecord{Generation: s.Generation, AverageFitness: s.MeanFitness}
}

// RunRecord is what the run registry keeps for one completed evolution.
type RunRecord struct {
	ID             string             `json:"id"`
	CreatedAtUTC   string             `json:"created_at_utc"`
	Seed           int64              `json:"seed"`
	PopulationSize int                `json:"population_size"`
	SequenceLength int                `json:"sequence_length"`
	Generations    int                `json:"generations"`
	EliteFraction  float64            `json:"elite_fraction"`
	Initial        Genome             `json:"initial"`
	Series         []GenerationRecord `json:"series"`
	Diagnostics    []GenerationStats  `json:"diagnostics,omitempty"`
	Best           Genome             `json:"best"`
}
