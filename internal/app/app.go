// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seqopt/core/chisel"
	"seqopt/internal/builder"
	"seqopt/internal/config"
	"seqopt/internal/jsonutil"
	"seqopt/internal/logging"
	"seqopt/internal/metrics"
	"seqopt/internal/report"
	"seqopt/internal/server"
	"seqopt/internal/solve"
	"seqopt/pkg/api"
)

// Version is overridden at link time.
var Version = "dev"

// exitError carries a process exit code out of a cobra RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

type globalFlags struct {
	configPath string
	logLevel   string
	logJSON    bool
	seed       uint64
}

// RunContext executes the CLI and returns the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stderr)
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	_, _ = fmt.Fprintln(stderr, "Error:", err)
	return 1
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "seqopt <input> <output>",
		Short: "Design a DNA sequence under constraints and objectives",
		Long: `seqopt reads a design request (JSON, or YAML for .yaml/.yml files),
resolves its hard constraints, improves its objectives and writes exactly
one JSON result document to <output>, also when the request fails.`,
		Example: `  seqopt request.json result.json
  SEQOPT_SOLVER_SEED=7 seqopt --log-level debug request.yaml result.json
  seqopt serve --addr :8080`,
		Version:       Version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesign(cmd, g, stderr, args[0], args[1])
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&g.logJSON, "log-json", false, "write logs as JSON lines")
	pf.Uint64Var(&g.seed, "seed", 0, "random seed of the local search")

	root.AddCommand(newServeCmd(g, stderr))
	return root
}

// setup loads configuration, applies flag overrides and builds a logger.
func setup(cmd *cobra.Command, g *globalFlags, stderr io.Writer) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = g.logJSON
	}
	if flags.Changed("seed") {
		cfg.Solver.Seed = g.seed
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.JSON, stderr)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// newReporter wires the pipeline from configuration.
func newReporter(cfg *config.Config, log *zap.Logger, m *metrics.Recorder) *report.Reporter {
	factory := solve.ChiselFactory{Options: chisel.Options{
		Seed:               cfg.Solver.Seed,
		MaxIterations:      cfg.Solver.MaxIterations,
		OptimizeIterations: cfg.Solver.OptimizeIterations,
		MaxProposals:       cfg.Solver.MaxProposals,
	}}
	capability := solve.Detect(cfg.Solver.Enabled, factory)
	if !capability.Available {
		log.Warn("solver unavailable", zap.String("reason", capability.Reason))
	}
	return report.New(report.Deps{
		Capability:   capability,
		Builder:      builder.New(log, builder.Options{MaxSequenceLength: cfg.Limits.MaxSequenceLength}),
		Orchestrator: solve.NewOrchestrator(factory, log),
		Log:          log,
		Metrics:      m,
	})
}

func runDesign(cmd *cobra.Command, g *globalFlags, stderr io.Writer, input, output string) error {
	fail := func(err error) error {
		if werr := jsonutil.WriteFile(output, api.Failure(err.Error(), report.Traceback(err))); werr != nil {
			_, _ = fmt.Fprintf(stderr, "Error: write %s: %v\n", output, werr)
		}
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return &exitError{code: 1, err: err}
	}

	cfg, log, err := setup(cmd, g, stderr)
	if err != nil {
		return fail(err)
	}
	defer func() { _ = log.Sync() }()

	wire, err := jsonutil.ReadRequestFile(input)
	if err != nil {
		return fail(fmt.Errorf("read %s: %w", input, err))
	}

	res := newReporter(cfg, log, nil).Run(cmd.Context(), report.FromV1(wire))
	if err := jsonutil.WriteFile(output, res); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: write %s: %v\n", output, err)
		return &exitError{code: 1, err: err}
	}
	if !res.Success {
		_, _ = fmt.Fprintln(stderr, "Error:", res.Error)
		return &exitError{code: 1}
	}
	return nil
}

func newServeCmd(g *globalFlags, stderr io.Writer) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the design pipeline over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd, g, stderr)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			m := metrics.New()
			srv := server.New(newReporter(cfg, log, m), m, log, cfg.Limits.MaxSequenceLength)
			return srv.Run(cmd.Context(), cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.addr)")
	return cmd
}
