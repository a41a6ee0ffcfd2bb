// Copyright 2025 The Exprgrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides a gradient-descent training loop over scalar
// computation graphs, plus small helpers for evaluating and comparing the
// fitted model.
package train

import (
	"github.com/exprgrad/exprgrad/expr"
	"github.com/exprgrad/exprgrad/internal/backend/scalar"
	igraph "github.com/exprgrad/exprgrad/internal/graph"
	itrain "github.com/exprgrad/exprgrad/internal/train"
)

// Config holds the loop settings.
type Config = itrain.Config

// Sample binds variable idents to their values for one training example.
type Sample = itrain.Sample

// Grid is a half-open range of evenly spaced float values.
type Grid = itrain.Grid

// Fit runs gradient descent against the loss node and returns the per-epoch
// mean loss.
func Fit(g *igraph.Graph[scalar.Value], loss expr.Ident, samples []Sample, cfg Config) []float32 {
	return itrain.Fit(g, loss, samples, cfg)
}

// Eval evaluates the output node at each point, resetting per-input state in
// between. Parameters keep their trained values.
func Eval(g *igraph.Graph[scalar.Value], x, output expr.Ident, points []float32) []float32 {
	return itrain.Eval(g, x, output, points)
}

// RMS returns the root-mean-square difference between two equally long
// series.
func RMS(a, b []float32) float32 {
	return itrain.RMS(a, b)
}
