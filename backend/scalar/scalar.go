// Copyright 2025 The Exprgrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package scalar provides the float32 backend: a calculator for elementary
// real arithmetic and the expression sugar to build formulas with it.
package scalar

import (
	"github.com/exprgrad/exprgrad/internal/backend/scalar"
	igraph "github.com/exprgrad/exprgrad/internal/graph"
)

// Value is a plain float32 satisfying the engine value contract.
type Value = scalar.Value

// Builder wraps the generic expression builder with scalar sugar.
type Builder = scalar.Builder

// Expr is a scalar expression handle with arithmetic methods.
type Expr = scalar.Expr

// Calculator evaluates scalar operators and their local derivatives.
type Calculator = scalar.Calculator

// BinaryOp is a two-operand scalar operator.
type BinaryOp = scalar.BinaryOp

// UnaryOp is a one-operand scalar operator.
type UnaryOp = scalar.UnaryOp

// PowI raises its operand to a constant integer power.
type PowI = scalar.PowI

// Scalar operators.
const (
	OpAdd BinaryOp = scalar.OpAdd
	OpSub BinaryOp = scalar.OpSub
	OpMul BinaryOp = scalar.OpMul
	OpPow BinaryOp = scalar.OpPow

	OpSin  UnaryOp = scalar.OpSin
	OpCos  UnaryOp = scalar.OpCos
	OpLn   UnaryOp = scalar.OpLn
	OpRelu UnaryOp = scalar.OpRelu
)

// NewBuilder creates an empty scalar expression builder.
func NewBuilder() *Builder {
	return scalar.NewBuilder()
}

// NewGraph freezes the builder into a computation graph backed by the scalar
// calculator.
func NewGraph(b *Builder) *igraph.Graph[Value] {
	return scalar.NewGraph(b)
}
