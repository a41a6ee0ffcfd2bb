// Package train packages the gradient-descent loop built on top of the
// computation graph lifecycle: per epoch, reset, accumulate gradients over
// every example, then apply the mean-gradient parameter update.
package train

import (
	"fmt"
	"math"

	"github.com/exprgrad/exprgrad/internal/backend/scalar"
	"github.com/exprgrad/exprgrad/internal/expr"
	"github.com/exprgrad/exprgrad/internal/graph"
)

// Config holds the loop settings.
type Config struct {
	Epochs    int     // Number of epochs (default: 100)
	LearnRate float32 // Learning rate (default: 0.01)
}

// Sample binds variable idents to their values for one training example.
type Sample map[expr.Ident]scalar.Value

// Fit runs gradient descent against the loss node and returns the per-epoch
// mean loss. Each epoch accumulates adjoints across all samples, so the
// parameter update uses the mean gradient over the batch.
func Fit(g *graph.Graph[scalar.Value], loss expr.Ident, samples []Sample, cfg Config) []float32 {
	if cfg.Epochs == 0 {
		cfg.Epochs = 100
	}
	if cfg.LearnRate == 0 {
		cfg.LearnRate = 0.01
	}
	if len(samples) == 0 {
		panic("train: no samples")
	}

	history := make([]float32, 0, cfg.Epochs)
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		g.ResetForNextEpoch()
		var total float32
		for _, s := range samples {
			g.ResetForNextInput()
			for id, v := range s {
				g.SetVariable(id, v)
			}
			total += float32(g.Forward(loss))
			g.Backward(loss)
		}
		g.UpdateParamsLR(cfg.LearnRate)
		history = append(history, total/float32(len(samples)))
	}
	return history
}

// Eval evaluates the output node at each point, setting x per point with a
// per-input reset in between. Parameters keep their trained values.
func Eval(g *graph.Graph[scalar.Value], x, output expr.Ident, points []float32) []float32 {
	out := make([]float32, len(points))
	for i, p := range points {
		g.ResetForNextInput()
		g.SetVariable(x, scalar.Value(p))
		out[i] = float32(g.Forward(output))
	}
	return out
}

// Grid is a half-open range of evenly spaced float values.
type Grid struct {
	Start, End, Step float32
}

// Values materializes the grid points [Start, End) stepping by Step.
func (r Grid) Values() []float32 {
	if r.Step <= 0 {
		panic(fmt.Sprintf("non-positive grid step %g", r.Step))
	}
	var out []float32
	for x := r.Start; x < r.End; x += r.Step {
		out = append(out, x)
	}
	return out
}

// RMS returns the root-mean-square difference between two equally long
// series.
func RMS(a, b []float32) float32 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("series length mismatch: %d vs %d", len(a), len(b)))
	}
	if len(a) == 0 {
		return 0
	}
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum / float64(len(a))))
}
