package main

import (
	"fmt"

	"github.com/dhamidi/resrap"
	"github.com/dhamidi/resrap/grammar"
	"github.com/spf13/cobra"
)

func newDotCmd() *cobra.Command {
	var frozen bool

	cmd := &cobra.Command{
		Use:   "dot <file>",
		Short: "Render a grammar's graph in Graphviz dot format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := resrap.ReadStatements(args[0])
			if err != nil {
				return err
			}

			if !frozen {
				g, err := grammar.Parse(text)
				if err != nil {
					return fmt.Errorf("parse %s: %w", args[0], err)
				}
				fmt.Fprint(cmd.OutOrStdout(), g.Dot())
				return nil
			}

			compiled, err := grammar.Compile(text)
			if err != nil {
				return fmt.Errorf("compile %s: %w", args[0], err)
			}
			fmt.Fprint(cmd.OutOrStdout(), compiled.Dot())
			return nil
		},
	}

	cmd.Flags().BoolVar(&frozen, "frozen", false, "render the frozen automaton with cumulative frequencies")

	return cmd
}
