package main

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/micrograd/autodiff"
	"github.com/born-ml/micrograd/internal/config"
	"github.com/born-ml/micrograd/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type runOptions struct {
	configPath string
	mode       string
	render     bool
	logLevel   string
	logFormat  string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Differentiate the reference neuron o = tanh(x1*w1 + x2*w2 + b)",
		Long: `Builds n = x1*w1 + x2*w2 + b and o = (exp(2n) - 1) / (exp(2n) + 1),
seeds o's gradient, runs the backward pass and reports every input gradient.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return runScenario(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file (defaults to the reference scenario)")
	flags.StringVar(&opts.mode, "mode", "", "backward mode: topological or recursive")
	flags.BoolVar(&opts.render, "render", false, "print the expression graph to stdout")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")

	return cmd
}

// resolve loads the config file and applies explicitly set flags on top.
func (o *runOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Backward.Mode = o.mode
	}
	if flags.Changed("render") {
		cfg.Backward.Render = o.render
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// neuron holds the leaves and output of the reference scenario.
type neuron struct {
	leaves []*autodiff.Node
	output *autodiff.Node
}

func buildNeuron(s config.ScenarioConfig) neuron {
	x1 := autodiff.Named("x1", s.X1)
	x2 := autodiff.Named("x2", s.X2)
	w1 := autodiff.Named("w1", s.W1)
	w2 := autodiff.Named("w2", s.W2)
	b := autodiff.Named("b", s.B)

	x1w1 := x1.Mul(w1).SetLabel("x1w1")
	x2w2 := x2.Mul(w2).SetLabel("x2w2")
	x1w1x2w2 := x1w1.Add(x2w2).SetLabel("x1w1 + x2w2")
	n := x1w1x2w2.Add(b).SetLabel("n")

	e := autodiff.ScalarMul(2, n).Exp().SetLabel("e")
	o := e.SubScalar(1).Div(e.AddScalar(1)).SetLabel("o")

	return neuron{
		leaves: []*autodiff.Node{x1, x2, w1, w2, b},
		output: o,
	}
}

func runScenario(cmd *cobra.Command, cfg config.Config) error {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{
		Level:   level,
		Format:  logging.Format(cfg.Log.Format),
		Output:  cmd.ErrOrStderr(),
		Service: "micrograd",
	}).With("run_id", uuid.NewString())

	mode, err := autodiff.ParseMode(cfg.Backward.Mode)
	if err != nil {
		return err
	}

	nr := buildNeuron(cfg.Scenario)
	logger.Debug("graph built",
		slog.Int("nodes", len(autodiff.Topo(nr.output))),
		slog.Float64("output", nr.output.Value()))

	autodiff.SeedGradient(nr.output, cfg.Scenario.Seed)
	if err := autodiff.BackwardMode(nr.output, mode); err != nil {
		return fmt.Errorf("backward: %w", err)
	}

	logger.Info("backward complete",
		slog.String("mode", mode.String()),
		slog.Float64("output", nr.output.Value()))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "o = %.4f\n", nr.output.Value())
	for _, leaf := range nr.leaves {
		fmt.Fprintf(out, "d o/d %s = %.4f\n", leaf.Label(), leaf.Grad())
	}

	if cfg.Backward.Render {
		fmt.Fprintln(out)
		if err := autodiff.Render(out, nr.output); err != nil {
			return err
		}
	}
	return nil
}
