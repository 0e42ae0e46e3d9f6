package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"seqevo/internal/model"
	"seqevo/internal/stats"
)

const Title = "Optimization of Lead Sequences"

type Result struct {
	RunID          string                   `json:"run_id"`
	Seed           int64                    `json:"seed"`
	PopulationSize int                      `json:"population_size"`
	SequenceLength int                      `json:"sequence_length"`
	Generations    int                      `json:"generations"`
	EliteFraction  float64                  `json:"elite_fraction"`
	Series         []model.GenerationRecord `json:"series"`
	Diagnostics    []model.GenerationStats  `json:"diagnostics,omitempty"`
	Best           model.Genome             `json:"best"`
	Summary        *stats.SeriesSummary     `json:"summary,omitempty"`
}

var (
	teal  = lipgloss.Color("#20B9B4")
	deep  = lipgloss.Color("#16858E")
	muted = lipgloss.Color("#2C4A54")
)

// RenderTable writes the generation table and the optimized sequence. Colour
// is only emitted when w is a terminal.
func RenderTable(w io.Writer, res Result) error {
	r := lipgloss.NewRenderer(w)
	titleStyle := r.NewStyle().Bold(true).Foreground(teal)
	headerStyle := r.NewStyle().Bold(true).Align(lipgloss.Center).Padding(0, 1)
	cellStyle := r.NewStyle().Align(lipgloss.Center).Padding(0, 1)
	mutedStyle := r.NewStyle().Foreground(muted)

	rows := make([][]string, 0, len(res.Series))
	for _, record := range res.Series {
		rows = append(rows, []string{
			strconv.Itoa(record.Generation),
			strconv.FormatFloat(record.AverageFitness, 'f', 6, 64),
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(deep)).
		Headers("Generation", "Average Activity").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	points := stats.BuildAveragePlot(res.Series)
	lines := []string{
		titleStyle.Render(Title),
		t.String(),
		"Trend: " + stats.Sparkline(points),
		fmt.Sprintf("Optimized Sequence: %s (Activity: %s)", res.Best.Bases, strconv.FormatFloat(res.Best.Fitness, 'f', -1, 64)),
		mutedStyle.Render(metaLine(res)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func metaLine(res Result) string {
	mutations := 0
	for _, d := range res.Diagnostics {
		mutations += d.BaseMutations
	}
	line := fmt.Sprintf("%d genomes x %d bases x %d generations, seed %d, %s base mutations",
		res.PopulationSize, res.SequenceLength, res.Generations, res.Seed, humanize.Comma(int64(mutations)))
	if res.RunID != "" {
		line = "run " + res.RunID + ": " + line
	}
	return line
}

func RenderJSON(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func Render(w io.Writer, format string, res Result) error {
	switch format {
	case "", "table":
		return RenderTable(w, res)
	case "json":
		return RenderJSON(w, res)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
