package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/eqsolve/engine"
	"github.com/katalvlaran/eqsolve/equation"
	"github.com/katalvlaran/eqsolve/internal/metrics"
)

const replHelp = `expressions are evaluated, lines containing '=' are solved
  a;b         solve a system on one line
  :mc         clear memory          :mr       recall memory
  :m+ [v]     add v (or ans)        :m- [v]   subtract v (or ans)
  :ms [v]     store v (or ans)      :ans      show the last answer
  :help       this text             :quit     leave`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive calculator session with memory and last answer",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("metrics-addr")

		var m *metrics.Metrics
		if addr != "" {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			m = metrics.New(reg)

			srv := &http.Server{
				Addr:              addr,
				Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					fmt.Fprintln(cmd.ErrOrStderr(), "metrics server:", err)
				}
			}()
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = srv.Shutdown(ctx)
			}()
		}

		s, cfg, err := setup(m)
		if err != nil {
			return err
		}
		st := newStyles(cmd.OutOrStdout(), cfg.Output.Color)
		return runREPL(cmd.Context(), s, cmd.InOrStdin(), cmd.OutOrStdout(), st)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

// runREPL reads lines from in until EOF, :quit or ctx is done.
func runREPL(ctx context.Context, s *engine.Session, in io.Reader, out io.Writer, st styles) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sc := bufio.NewScanner(in)
	fmt.Fprintln(out, st.muted("eqsolve, :help for commands"))
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			quit, err := replCommand(s, line, out, st)
			if err != nil {
				fmt.Fprintln(out, st.failure(err))
			}
			if quit {
				return nil
			}
			continue
		}
		if strings.Contains(line, "=") {
			sol, err := s.SolveContext(ctx, line)
			if err != nil {
				fmt.Fprintln(out, st.failure(err))
				continue
			}
			fmt.Fprintln(out, st.solution(sol.Kind, sol.Values))
			continue
		}
		res, err := s.Calculate(line)
		if err != nil {
			fmt.Fprintln(out, st.failure(err))
			continue
		}
		fmt.Fprintln(out, st.value(res))
	}
}

// replCommand runs a ':' command and reports whether to quit.
func replCommand(s *engine.Session, line string, out io.Writer, st styles) (bool, error) {
	fields := strings.Fields(line)
	arg := func() (float64, error) {
		if len(fields) < 2 {
			return s.LastAnswerValue(), nil
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0, equation.Errorf(equation.ErrParse, "%s: bad number %q", fields[0], fields[1])
		}
		return v, nil
	}

	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true, nil
	case ":help":
		fmt.Fprintln(out, st.muted(replHelp))
	case ":mc":
		s.MemoryClear()
	case ":mr":
		fmt.Fprintln(out, st.value(equation.FormatValue(s.MemoryRecall())))
	case ":ans":
		fmt.Fprintln(out, st.value(s.LastAnswer()))
	case ":m+", ":m-", ":ms":
		v, err := arg()
		if err != nil {
			return false, err
		}
		switch fields[0] {
		case ":m+":
			s.MemoryAdd(v)
		case ":m-":
			s.MemorySubtract(v)
		default:
			s.MemoryStore(v)
		}
	default:
		return false, fmt.Errorf("unknown command %s, try :help", fields[0])
	}
	return false, nil
}
