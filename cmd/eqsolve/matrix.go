package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/eqsolve/engine"
)

var matrixCmd = &cobra.Command{
	Use:       "matrix <" + strings.Join(engine.MatrixOps, "|") + ">",
	Short:     "Matrix arithmetic on literal matrices",
	Long:      `Rows are separated by ';' and entries by ',' or spaces: --a "1,2;3,4".`,
	Example:   `  eqsolve matrix mul --a "1,2;3,4" --b "5,6;7,8"`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: engine.MatrixOps,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _ := cmd.Flags().GetString("a")
		b, _ := cmd.Flags().GetString("b")

		s, cfg, err := setup(nil)
		if err != nil {
			return err
		}
		out, err := s.MatrixOp(args[0], a, b)
		if err != nil {
			return err
		}
		st := newStyles(cmd.OutOrStdout(), cfg.Output.Color)
		fmt.Fprintln(cmd.OutOrStdout(), st.value(strings.TrimSuffix(out, "\n")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matrixCmd)

	matrixCmd.Flags().String("a", "", "Matrix A")
	matrixCmd.Flags().String("b", "", "Matrix B (add, sub and mul)")
	_ = matrixCmd.MarkFlagRequired("a")
}
