package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// LinePrompter asks on out and reads answers line by line from in, asking
// again until the answer validates. Running out of input is an error.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) Sequence(length int) (string, error) {
	for {
		line, err := p.ask(sequenceQuestion(length))
		if err != nil {
			return "", err
		}
		seq, perr := ParseSequence(line, length)
		if perr == nil {
			return seq, nil
		}
		fmt.Fprintln(p.out, Message(perr))
	}
}

func (p *LinePrompter) Activity() (float64, error) {
	for {
		line, err := p.ask(activityQuestion)
		if err != nil {
			return 0, err
		}
		v, perr := ParseActivity(line)
		if perr == nil {
			return v, nil
		}
		fmt.Fprintln(p.out, Message(perr))
	}
}

func (p *LinePrompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read answer: %w", io.ErrUnexpectedEOF)
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return line, nil
}
