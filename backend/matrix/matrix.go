// Copyright 2025 The Exprgrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense float32 matrix backend: element-wise
// arithmetic with scalar broadcasting, relu, integer powers, summation and
// 2-D valid convolution, each with reverse-mode derivatives.
package matrix

import (
	"github.com/exprgrad/exprgrad/internal/backend/matrix"
	igraph "github.com/exprgrad/exprgrad/internal/graph"
)

// Shape describes tensor dimensions.
type Shape = matrix.Shape

// Dense is an immutable row-major float32 array.
type Dense = matrix.Dense

// Value is either a dense array or a broadcastable scalar.
type Value = matrix.Value

// Builder wraps the generic expression builder with matrix sugar.
type Builder = matrix.Builder

// Expr is a matrix expression handle with arithmetic methods.
type Expr = matrix.Expr

// Calculator evaluates matrix operators and their local derivatives.
type Calculator = matrix.Calculator

// BinaryOp is a two-operand matrix operator.
type BinaryOp = matrix.BinaryOp

// UnaryOp is a one-operand matrix operator.
type UnaryOp = matrix.UnaryOp

// PowI raises each element to a constant integer power.
type PowI = matrix.PowI

// Matrix operators.
const (
	OpAdd    BinaryOp = matrix.OpAdd
	OpSub    BinaryOp = matrix.OpSub
	OpMul    BinaryOp = matrix.OpMul
	OpConv2D BinaryOp = matrix.OpConv2D

	OpRelu UnaryOp = matrix.OpRelu
	OpSum  UnaryOp = matrix.OpSum
)

// NewDense validates the shape against the data length and builds an array.
func NewDense(shape Shape, data []float32) (*Dense, error) {
	return matrix.NewDense(shape, data)
}

// FromElem builds an array of the given shape filled with elem.
func FromElem(shape Shape, elem float32) *Dense {
	return matrix.FromElem(shape, elem)
}

// FromFunc builds an array of the given shape, calling f per flat index.
func FromFunc(shape Shape, f func(i int) float32) *Dense {
	return matrix.FromFunc(shape, f)
}

// FromDense wraps an array as a backend value.
func FromDense(m *Dense) Value {
	return matrix.FromDense(m)
}

// FromScalar wraps a broadcastable scalar as a backend value.
func FromScalar(v float32) Value {
	return matrix.FromScalar(v)
}

// NewBuilder creates an empty matrix expression builder.
func NewBuilder() *Builder {
	return matrix.NewBuilder()
}

// NewGraph freezes the builder into a computation graph backed by the matrix
// calculator.
func NewGraph(b *Builder) *igraph.Graph[Value] {
	return matrix.NewGraph(b)
}
