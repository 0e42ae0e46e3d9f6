package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func main() {
	s := streams{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	if err := run(context.Background(), os.Args[1:], s); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, s streams) error {
	root := newRootCommand(s)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand(s streams) *cobra.Command {
	root := &cobra.Command{
		Use:           "seqevoctl",
		Short:         "Evolve nucleotide lead sequences with a toy genetic algorithm",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(s.in)
	root.SetOut(s.out)
	root.SetErr(s.errOut)
	root.AddCommand(newRunCommand(s))
	return root
}
