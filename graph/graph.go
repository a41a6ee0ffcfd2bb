// Copyright 2025 The Exprgrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the public API for computation graphs.
//
// A computation graph freezes an expression builder, attaches per-node
// numeric state and drives memoized forward evaluation and reverse-mode
// gradient accumulation through a pluggable per-operator Calculator.
//
// Example:
//
//	b := scalar.NewBuilder()
//	x1 := b.NewVariable("x1")
//	x2 := b.NewVariable("x2")
//	z := x1.Add(x2).PowI(2)
//
//	g := scalar.NewGraph(b)
//	g.SetVariable(x1.Ident(), 3)
//	g.SetVariable(x2.Ident(), 5)
//	g.Forward(z.Ident())  // 64
//	g.Backward(z.Ident())
//	g.Adjoint(x1.Ident()) // 16
package graph

import (
	"github.com/exprgrad/exprgrad/expr"
	igraph "github.com/exprgrad/exprgrad/internal/graph"
)

// Graph is a frozen expression arena plus mutable numeric state.
type Graph[V expr.Value[V]] = igraph.Graph[V]

// Calculator supplies forward values and local derivatives per operator over
// a concrete value type; it is the sole point of contact between the engine
// and a numeric backend.
type Calculator[V expr.Value[V]] = igraph.Calculator[V]

// New freezes the builder and creates the computation graph. The builder is
// consumed and cannot register nodes afterwards.
func New[V expr.Value[V]](b *expr.Builder[V], calc Calculator[V]) *Graph[V] {
	return igraph.New(b, calc)
}
