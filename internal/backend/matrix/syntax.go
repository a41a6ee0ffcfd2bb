package matrix

import (
	"github.com/exprgrad/exprgrad/internal/expr"
	"github.com/exprgrad/exprgrad/internal/graph"
)

// Builder wraps the generic expression builder with the matrix operator
// vocabulary.
type Builder struct {
	eb *expr.Builder[Value]
}

// NewBuilder creates an empty matrix expression builder.
func NewBuilder() *Builder {
	return &Builder{eb: expr.NewBuilder[Value]()}
}

// Inner returns the wrapped generic builder.
func (b *Builder) Inner() *expr.Builder[Value] { return b.eb }

// NewVariable registers a named external input.
func (b *Builder) NewVariable(name string) Expr {
	return Expr{b.eb.NewVariable(name)}
}

// NewParameter registers an anonymous trainable parameter.
func (b *Builder) NewParameter(initial Value) Expr {
	return Expr{b.eb.NewParameter(initial)}
}

// NewNamedParameter registers a named trainable parameter.
func (b *Builder) NewNamedParameter(name string, initial Value) Expr {
	return Expr{b.eb.NewNamedParameter(name, initial)}
}

// Const registers a literal.
func (b *Builder) Const(v Value) Expr {
	return Expr{b.eb.Const(v)}
}

// Expr is a matrix expression handle with arithmetic sugar over the generic
// registration methods.
type Expr struct {
	expr.Expr[Value]
}

// Add returns the element-wise sum e + rhs.
func (e Expr) Add(rhs Expr) Expr { return Expr{e.Apply2(OpAdd, rhs.Expr)} }

// Sub returns the element-wise difference e - rhs.
func (e Expr) Sub(rhs Expr) Expr { return Expr{e.Apply2(OpSub, rhs.Expr)} }

// Mul returns the element-wise product e .* rhs.
func (e Expr) Mul(rhs Expr) Expr { return Expr{e.Apply2(OpMul, rhs.Expr)} }

// Relu returns element-wise max(0, e).
func (e Expr) Relu() Expr { return Expr{e.Apply1(OpRelu)} }

// PowI returns element-wise e^n for a constant integer exponent.
func (e Expr) PowI(n int) Expr { return Expr{e.Apply1(PowI(n))} }

// Sum reduces e to the sum of its elements.
func (e Expr) Sum() Expr { return Expr{e.Apply1(OpSum)} }

// Conv2D returns the valid stride-1 2-D convolution of e with kernel.
func (e Expr) Conv2D(kernel Expr) Expr { return Expr{e.Apply2(OpConv2D, kernel.Expr)} }

// NewGraph freezes the builder into a computation graph wired to the matrix
// calculator.
func NewGraph(b *Builder) *graph.Graph[Value] {
	return graph.New(b.Inner(), Calculator{})
}
