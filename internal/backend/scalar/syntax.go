package scalar

import (
	"github.com/exprgrad/exprgrad/internal/expr"
	"github.com/exprgrad/exprgrad/internal/graph"
)

// Builder wraps the generic expression builder with the scalar operator
// vocabulary, so callers write b.NewVariable("x").Mul(a).Sin() instead of
// registering nodes by hand.
type Builder struct {
	eb *expr.Builder[Value]
}

// NewBuilder creates an empty scalar expression builder.
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
func (b *Builder) NewParameter(initial float32) Expr {
	return Expr{b.eb.NewParameter(Value(initial))}
}

// NewNamedParameter registers a named trainable parameter.
func (b *Builder) NewNamedParameter(name string, initial float32) Expr {
	return Expr{b.eb.NewNamedParameter(name, Value(initial))}
}

// Const registers a literal.
func (b *Builder) Const(v float32) Expr {
	return Expr{b.eb.Const(Value(v))}
}

// Expr is a scalar expression handle with arithmetic sugar over the generic
// registration methods.
type Expr struct {
	expr.Expr[Value]
}

// Add returns e + rhs.
func (e Expr) Add(rhs Expr) Expr { return Expr{e.Apply2(OpAdd, rhs.Expr)} }

// Sub returns e - rhs.
func (e Expr) Sub(rhs Expr) Expr { return Expr{e.Apply2(OpSub, rhs.Expr)} }

// Mul returns e * rhs.
func (e Expr) Mul(rhs Expr) Expr { return Expr{e.Apply2(OpMul, rhs.Expr)} }

// Pow returns e^p where p is another expression.
func (e Expr) Pow(p Expr) Expr { return Expr{e.Apply2(OpPow, p.Expr)} }

// PowI returns e^n for a constant integer exponent.
func (e Expr) PowI(n int) Expr { return Expr{e.Apply1(PowI(n))} }

// Sin returns sin(e).
func (e Expr) Sin() Expr { return Expr{e.Apply1(OpSin)} }

// Cos returns cos(e).
func (e Expr) Cos() Expr { return Expr{e.Apply1(OpCos)} }

// Ln returns the natural logarithm of e.
func (e Expr) Ln() Expr { return Expr{e.Apply1(OpLn)} }

// Relu returns max(0, e).
func (e Expr) Relu() Expr { return Expr{e.Apply1(OpRelu)} }

// NewGraph freezes the builder into a computation graph wired to the scalar
// calculator.
func NewGraph(b *Builder) *graph.Graph[Value] {
	return graph.New(b.Inner(), Calculator{})
}
