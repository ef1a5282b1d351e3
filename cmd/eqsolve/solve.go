package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve <equations>",
	Short: "Solve an equation or a system of equations",
	Long: `Solve a single equation with the root finder, a linear system by Gaussian
elimination or a nonlinear system by Newton iteration. Separate equations with
';' or newlines. Use "-" to read the equations from stdin.`,
	Example: `  eqsolve solve "2x + 1 = 7"
  eqsolve solve "x + y = 3; x - y = 1"
  echo "x^2 + y^2 = 25
x*y = 12" | eqsolve solve -`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := strings.Join(args, " ")
		if input == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			input = string(data)
		}

		s, cfg, err := setup(nil)
		if err != nil {
			return err
		}
		sol, err := s.SolveContext(cmd.Context(), input)
		if err != nil {
			return err
		}
		st := newStyles(cmd.OutOrStdout(), cfg.Output.Color)
		fmt.Fprintln(cmd.OutOrStdout(), st.solution(sol.Kind, sol.Values))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
}
