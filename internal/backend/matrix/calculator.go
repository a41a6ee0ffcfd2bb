package matrix

import (
	"fmt"

	"github.com/exprgrad/exprgrad/internal/expr"
	"github.com/exprgrad/exprgrad/internal/graph"
)

// Calculator implements the matrix forward and backward rules. It is
// stateless; the zero value is ready to use.
type Calculator struct{}

var _ graph.Calculator[Value] = Calculator{}

// Forward computes the value of a unary or binary node from the memoized
// values of its operands. Leaves are handled by the graph and must not reach
// the calculator.
func (c Calculator) Forward(g *graph.Graph[Value], id expr.Ident) Value {
	n := g.Node(id)
	switch n.Kind() {
	case expr.KindUnary:
		a := g.Forward(n.A())
		switch op := n.Op().(type) {
		case UnaryOp:
			switch op {
			case OpRelu:
				return a.relu()
			case OpSum:
				return a.sum()
			}
		case PowI:
			return a.powi(int(op))
		}
	case expr.KindBinary:
		a := g.Forward(n.A())
		b := g.Forward(n.B())
		if op, ok := n.Op().(BinaryOp); ok {
			switch op {
			case OpAdd:
				return a.Add(b)
			case OpSub:
				return a.Sub(b)
			case OpMul:
				return a.Mul(b)
			case OpConv2D:
				return FromDense(conv2d(mustDense(a, "conv2d input"), mustDense(b, "conv2d kernel")))
			}
		}
	default:
		panic(fmt.Sprintf("matrix: forward invoked for %s node %s", n.Kind(), id))
	}
	panic(fmt.Sprintf("matrix: unsupported operator %s", n.Op()))
}

// Backward accumulates the incoming adjoint into the node and propagates the
// chain-rule products into the operands, using the primals cached by the
// forward pass.
func (c Calculator) Backward(g *graph.Graph[Value], id expr.Ident, adjoint Value) {
	g.AddAdjoint(id, adjoint)
	n := g.Node(id)
	switch n.Kind() {
	case expr.KindConst, expr.KindVariable, expr.KindParameter:
		return
	case expr.KindUnary:
		a := n.A()
		switch op := n.Op().(type) {
		case UnaryOp:
			switch op {
			case OpRelu:
				c.Backward(g, a, adjoint.Mul(g.Primal(a).reluGate()))
			case OpSum:
				// Every element contributed with weight 1; the scalar
				// adjoint broadcasts over the operand when accumulated.
				c.Backward(g, a, adjoint)
			}
		case PowI:
			c.Backward(g, a, adjoint.Mul(g.Primal(a).powiGrad(int(op))))
		default:
			panic(fmt.Sprintf("matrix: unsupported operator %s", n.Op()))
		}
	case expr.KindBinary:
		aID, bID := n.A(), n.B()
		op, ok := n.Op().(BinaryOp)
		if !ok {
			panic(fmt.Sprintf("matrix: unsupported operator %s", n.Op()))
		}
		switch op {
		case OpAdd:
			c.Backward(g, aID, adjoint)
			c.Backward(g, bID, adjoint)
		case OpSub:
			c.Backward(g, aID, adjoint)
			c.Backward(g, bID, adjoint.Scale(-1))
		case OpMul:
			pa, pb := g.Primal(aID), g.Primal(bID)
			c.Backward(g, aID, adjoint.Mul(pb))
			c.Backward(g, bID, adjoint.Mul(pa))
		case OpConv2D:
			in := mustDense(g.Primal(aID), "conv2d input")
			k := mustDense(g.Primal(bID), "conv2d kernel")
			grad := mustDense(adjoint, "conv2d adjoint")
			c.Backward(g, aID, FromDense(conv2dInputBackward(in, k, grad)))
			c.Backward(g, bID, FromDense(conv2dKernelBackward(in, k, grad)))
		}
	}
}

func mustDense(v Value, what string) *Dense {
	if v.m == nil {
		panic(fmt.Sprintf("%s must be a dense array, have scalar %s", what, v))
	}
	return v.m
}
