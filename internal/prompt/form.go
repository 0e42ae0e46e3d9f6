package prompt

import (
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// FormPrompter asks through an interactive terminal form. Invalid answers
// are rejected inline by the form's validators.
type FormPrompter struct {
	in  io.Reader
	out io.Writer
}

func NewFormPrompter(in io.Reader, out io.Writer) *FormPrompter {
	return &FormPrompter{in: in, out: out}
}

func (p *FormPrompter) Sequence(length int) (string, error) {
	var raw string
	input := huh.NewInput().
		Title(sequenceQuestion(length)).
		CharLimit(length).
		Value(&raw).
		Validate(func(s string) error {
			_, err := ParseSequence(s, length)
			return err
		})
	if err := p.run(input); err != nil {
		return "", err
	}
	return ParseSequence(raw, length)
}

func (p *FormPrompter) Activity() (float64, error) {
	var raw string
	input := huh.NewInput().
		Title(activityQuestion).
		Value(&raw).
		Validate(func(s string) error {
			_, err := ParseActivity(s)
			return err
		})
	if err := p.run(input); err != nil {
		return 0, err
	}
	return ParseActivity(raw)
}

func (p *FormPrompter) run(field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithInput(p.in).
		WithOutput(p.out).
		Run()
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// New picks a form on a terminal and plain line prompts otherwise.
func New(in *os.File, out io.Writer) Prompter {
	if IsInteractive(in) {
		return NewFormPrompter(in, out)
	}
	return NewLinePrompter(in, out)
}
