package main

import (
	"errors"
	"fmt"

	"github.com/dhamidi/resrap"
	"github.com/dhamidi/resrap/grammar"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Compile a grammar file and report errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := resrap.ReadStatements(args[0])
			if err != nil {
				return err
			}

			compiled, err := grammar.Compile(text)
			if err != nil {
				var list grammar.ErrorList
				if errors.As(err, &list) {
					for _, e := range list {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", args[0], e)
					}
					return fmt.Errorf("%d errors", len(list))
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d rules)\n", args[0], len(compiled.Rules()))
			return nil
		},
	}
}
