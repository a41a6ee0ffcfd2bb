package scalar

import (
	"fmt"
	"math"

	"github.com/exprgrad/exprgrad/internal/expr"
	"github.com/exprgrad/exprgrad/internal/graph"
)

// Calculator implements the scalar forward and backward rules. It is
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
			case OpSin:
				return sin(a)
			case OpCos:
				return cos(a)
			case OpLn:
				return ln(a)
			case OpRelu:
				if a > 0 {
					return a
				}
				return 0
			}
		case PowI:
			return powi(a, int(op))
		}
	case expr.KindBinary:
		a := g.Forward(n.A())
		b := g.Forward(n.B())
		if op, ok := n.Op().(BinaryOp); ok {
			switch op {
			case OpAdd:
				return a + b
			case OpSub:
				return a - b
			case OpMul:
				return a * b
			case OpPow:
				return pow(a, b)
			}
		}
	default:
		panic(fmt.Sprintf("scalar: forward invoked for %s node %s", n.Kind(), id))
	}
	panic(fmt.Sprintf("scalar: unsupported operator %s", n.Op()))
}

// Backward accumulates the incoming adjoint into the node and propagates the
// chain-rule products into the operands, using the primals cached by the
// forward pass. Leaves terminate the recursion after accumulating.
func (c Calculator) Backward(g *graph.Graph[Value], id expr.Ident, adjoint Value) {
	g.AddAdjoint(id, adjoint)
	n := g.Node(id)
	switch n.Kind() {
	case expr.KindConst, expr.KindVariable, expr.KindParameter:
		return
	case expr.KindUnary:
		a := n.A()
		p := g.Primal(a)
		var local Value
		switch op := n.Op().(type) {
		case UnaryOp:
			switch op {
			case OpSin:
				local = cos(p)
			case OpCos:
				local = -sin(p)
			case OpLn:
				local = 1 / p
			case OpRelu:
				if p > 0 {
					local = 1
				}
			}
		case PowI:
			// d(a^n)/da = n * a^(n-1)
			local = Value(int(op)) * powi(p, int(op)-1)
		default:
			panic(fmt.Sprintf("scalar: unsupported operator %s", n.Op()))
		}
		c.Backward(g, a, adjoint*local)
	case expr.KindBinary:
		aID, bID := n.A(), n.B()
		op, ok := n.Op().(BinaryOp)
		if !ok {
			panic(fmt.Sprintf("scalar: unsupported operator %s", n.Op()))
		}
		switch op {
		case OpAdd:
			c.Backward(g, aID, adjoint)
			c.Backward(g, bID, adjoint)
		case OpSub:
			c.Backward(g, aID, adjoint)
			c.Backward(g, bID, -adjoint)
		case OpMul:
			pa, pb := g.Primal(aID), g.Primal(bID)
			c.Backward(g, aID, adjoint*pb)
			c.Backward(g, bID, adjoint*pa)
		case OpPow:
			// d(a^b)/da = b * a^(b-1); d(a^b)/db = a^b * ln(a)
			pa, pb := g.Primal(aID), g.Primal(bID)
			c.Backward(g, aID, adjoint*pb*pow(pa, pb-1))
			c.Backward(g, bID, adjoint*pow(pa, pb)*ln(pa))
		}
	}
}

func sin(v Value) Value { return Value(math.Sin(float64(v))) }
func cos(v Value) Value { return Value(math.Cos(float64(v))) }
func ln(v Value) Value  { return Value(math.Log(float64(v))) }

func pow(a, b Value) Value {
	return Value(math.Pow(float64(a), float64(b)))
}

func powi(a Value, n int) Value {
	return Value(math.Pow(float64(a), float64(n)))
}
