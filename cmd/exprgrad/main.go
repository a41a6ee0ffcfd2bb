// Package main provides the exprgrad CLI: render demo expressions and fit
// small models by gradient descent.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/exprgrad/exprgrad/backend/scalar"
	"github.com/exprgrad/exprgrad/internal/table"
	"github.com/exprgrad/exprgrad/train"
)

const version = "v0.1.0-dev"

func main() {
	root := &cobra.Command{
		Use:           "exprgrad",
		Short:         "Reverse-mode automatic differentiation for Go",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newVersionCmd(), newRenderCmd(), newFitCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "exprgrad:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("exprgrad %s\n", version)
		},
	}
}

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Print a demo expression tree as text",
		Run: func(cmd *cobra.Command, args []string) {
			b := scalar.NewBuilder()
			x1 := b.NewVariable("x1")
			x2 := b.NewVariable("x2")
			z := x1.Add(x2).PowI(2)
			fmt.Println("z =", z)

			b2 := scalar.NewBuilder()
			x := b2.NewVariable("x")
			fmt.Println("y =", x.Cos().Mul(x.Sin()))
		},
	}
}

// fitConfig drives the fit command. Flags override file values.
type fitConfig struct {
	Epochs    int     `yaml:"epochs"`
	LearnRate float32 `yaml:"learn_rate"`
	Slope     float32 `yaml:"slope"`
	Intercept float32 `yaml:"intercept"`
	Range     struct {
		Start float32 `yaml:"start"`
		End   float32 `yaml:"end"`
		Step  float32 `yaml:"step"`
	} `yaml:"range"`
	Dump string `yaml:"dump"`
}

func defaultFitConfig() fitConfig {
	cfg := fitConfig{Epochs: 1000, LearnRate: 0.01, Slope: 3.14, Intercept: 0.7}
	cfg.Range.Start = -2
	cfg.Range.End = 2
	cfg.Range.Step = 0.1
	return cfg
}

func newFitCmd() *cobra.Command {
	cfg := defaultFitConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a line model y = a*x + b by gradient descent",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := loadFitConfig(configPath, &cfg, cmd); err != nil {
					return err
				}
			}
			return runFit(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "number of epochs")
	cmd.Flags().Float32Var(&cfg.LearnRate, "learn-rate", cfg.LearnRate, "learning rate")
	cmd.Flags().Float32Var(&cfg.Slope, "slope", cfg.Slope, "target line slope")
	cmd.Flags().Float32Var(&cfg.Intercept, "intercept", cfg.Intercept, "target line intercept")
	cmd.Flags().Float32Var(&cfg.Range.Start, "start", cfg.Range.Start, "sample range start")
	cmd.Flags().Float32Var(&cfg.Range.End, "end", cfg.Range.End, "sample range end (exclusive)")
	cmd.Flags().Float32Var(&cfg.Range.Step, "step", cfg.Range.Step, "sample range step")
	cmd.Flags().StringVar(&cfg.Dump, "dump", cfg.Dump, "write fit curve as TSV to this path")
	return cmd
}

// loadFitConfig merges the YAML file under explicitly set flags.
func loadFitConfig(path string, cfg *fitConfig, cmd *cobra.Command) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	fromFile := *cfg
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if !cmd.Flags().Changed("epochs") {
		cfg.Epochs = fromFile.Epochs
	}
	if !cmd.Flags().Changed("learn-rate") {
		cfg.LearnRate = fromFile.LearnRate
	}
	if !cmd.Flags().Changed("slope") {
		cfg.Slope = fromFile.Slope
	}
	if !cmd.Flags().Changed("intercept") {
		cfg.Intercept = fromFile.Intercept
	}
	if !cmd.Flags().Changed("start") {
		cfg.Range.Start = fromFile.Range.Start
	}
	if !cmd.Flags().Changed("end") {
		cfg.Range.End = fromFile.Range.End
	}
	if !cmd.Flags().Changed("step") {
		cfg.Range.Step = fromFile.Range.Step
	}
	if !cmd.Flags().Changed("dump") {
		cfg.Dump = fromFile.Dump
	}
	return nil
}

func runFit(cmd *cobra.Command, cfg fitConfig) error {
	b := scalar.NewBuilder()
	x := b.NewVariable("x")
	y := b.NewVariable("y")
	a := b.NewNamedParameter("a", 0.1)
	c := b.NewNamedParameter("b", 0.0)
	model := a.Mul(x).Add(c)
	loss := model.Sub(y).PowI(2)

	points := train.Grid{Start: cfg.Range.Start, End: cfg.Range.End, Step: cfg.Range.Step}.Values()
	samples := make([]train.Sample, len(points))
	for i, p := range points {
		samples[i] = train.Sample{
			x.Ident(): scalar.Value(p),
			y.Ident(): scalar.Value(cfg.Slope*p + cfg.Intercept),
		}
	}

	g := scalar.NewGraph(b)
	history := train.Fit(g, loss.Ident(), samples, train.Config{
		Epochs:    cfg.Epochs,
		LearnRate: cfg.LearnRate,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "epochs: %d  final loss: %g\n", cfg.Epochs, history[len(history)-1])
	fmt.Fprintf(cmd.OutOrStdout(), "a = %s  b = %s\n",
		g.Primal(a.Ident()), g.Primal(c.Ident()))

	if cfg.Dump == "" {
		return nil
	}
	fitted := train.Eval(g, x.Ident(), model.Ident(), points)
	t := table.New()
	t.ExtendCol("x", points...)
	for _, p := range points {
		t.ExtendCol("target", cfg.Slope*p+cfg.Intercept)
	}
	t.ExtendCol("fitted", fitted...)
	if err := t.SaveTSV(cfg.Dump); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.Dump)
	return nil
}
