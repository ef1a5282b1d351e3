package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:     "calc <expression>",
	Short:   "Evaluate an expression",
	Example: `  eqsolve calc "2×3÷4"
  eqsolve calc "sqrt(2) * π"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cfg, err := setup(nil)
		if err != nil {
			return err
		}
		out, err := s.Calculate(strings.Join(args, " "))
		if err != nil {
			return err
		}
		st := newStyles(cmd.OutOrStdout(), cfg.Output.Color)
		fmt.Fprintln(cmd.OutOrStdout(), st.value(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calcCmd)
}
