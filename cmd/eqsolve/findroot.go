package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/eqsolve/equation"
	"github.com/katalvlaran/eqsolve/rootfind"
)

var rootFindCmd = &cobra.Command{
	Use:   "root <equation>",
	Short: "Find roots of a single-variable equation in a range",
	Example: `  eqsolve root "x^3 - x = 0" --lo -2 --hi 2 --all
  eqsolve root "cos(t) = t" --var t --lo 0 --hi 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eq := strings.Join(args, " ")
		name, _ := cmd.Flags().GetString("var")
		all, _ := cmd.Flags().GetBool("all")

		s, cfg, err := setup(nil)
		if err != nil {
			return err
		}
		opts := cfg.RootOptions()
		if cmd.Flags().Changed("lo") {
			opts.Lo, _ = cmd.Flags().GetFloat64("lo")
		}
		if cmd.Flags().Changed("hi") {
			opts.Hi, _ = cmd.Flags().GetFloat64("hi")
		}
		st := newStyles(cmd.OutOrStdout(), cfg.Output.Color)

		if all {
			roots, err := rootfind.FindAll(eq, name, opts)
			if err != nil {
				return err
			}
			for _, x := range roots {
				fmt.Fprintln(cmd.OutOrStdout(), st.value(name+" = "+equation.FormatValue(x)))
			}
			return nil
		}

		x, err := s.FindRoot(eq, name, opts.Lo, opts.Hi)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), st.value(name+" = "+equation.FormatValue(x)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rootFindCmd)

	rootFindCmd.Flags().String("var", "x", "Variable to solve for")
	rootFindCmd.Flags().Float64("lo", rootfind.DefaultLo, "Lower end of the search range")
	rootFindCmd.Flags().Float64("hi", rootfind.DefaultHi, "Upper end of the search range")
	rootFindCmd.Flags().Bool("all", false, "List every root in the range instead of the leftmost")
}
