// Copyright 2025 The Exprgrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package expr provides the public API for building expression graphs.
//
// An expression graph is an append-only arena of nodes addressed by small
// integer idents: named variables, trainable parameters, constants and the
// unary/binary operations combining them. Backends supply the concrete
// operator sets and arithmetic sugar; see backend/scalar and backend/matrix.
//
// Example:
//
//	b := scalar.NewBuilder()
//	x := b.NewVariable("x")
//	a := b.NewNamedParameter("a", 0.1)
//	y := a.Mul(x)
//	fmt.Println(y) // (a * x)
package expr

import (
	iexpr "github.com/exprgrad/exprgrad/internal/expr"
)

// Ident identifies a node inside one builder.
type Ident = iexpr.Ident

// NameID points at the name stored aside for a variable or named parameter.
type NameID = iexpr.NameID

// Kind discriminates the node variants.
type Kind = iexpr.Kind

// Node kinds.
const (
	KindConst     Kind = iexpr.KindConst
	KindVariable  Kind = iexpr.KindVariable
	KindParameter Kind = iexpr.KindParameter
	KindUnary     Kind = iexpr.KindUnary
	KindBinary    Kind = iexpr.KindBinary
)

// Operator is implemented by backend-defined operator sets.
type Operator = iexpr.Operator

// Value is the contract every computed value type must satisfy.
type Value[V any] = iexpr.Value[V]

// Node is the tagged union stored per ident.
type Node[V Value[V]] = iexpr.Node[V]

// Builder owns the append-only expression arena.
type Builder[V Value[V]] = iexpr.Builder[V]

// Expr is a lightweight, copyable handle into a builder.
type Expr[V Value[V]] = iexpr.Expr[V]

// NewBuilder creates an empty expression builder.
func NewBuilder[V Value[V]]() *Builder[V] {
	return iexpr.NewBuilder[V]()
}
