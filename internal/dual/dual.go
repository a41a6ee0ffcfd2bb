// Package dual implements forward-mode automatic differentiation over dual
// numbers: each value carries a tangent ("dot" value) that every operation
// propagates by the chain rule alongside the primal. It is independent of
// the reverse-mode engine and doubles as a cross-check for its gradients.
package dual

import "math"

// Dual is a value together with its tangent.
type Dual struct {
	V float32 // primal value
	D float32 // tangent, d(V)/d(seed input)
}

// Seed lifts the differentiation input: tangent 1.
func Seed(x float32) Dual { return Dual{V: x, D: 1} }

// Lift lifts a constant: tangent 0.
func Lift(c float32) Dual { return Dual{V: c} }

// Add returns d + o.
func (d Dual) Add(o Dual) Dual { return Dual{V: d.V + o.V, D: d.D + o.D} }

// Sub returns d - o.
func (d Dual) Sub(o Dual) Dual { return Dual{V: d.V - o.V, D: d.D - o.D} }

// Mul returns d * o with the product rule tangent.
func (d Dual) Mul(o Dual) Dual {
	return Dual{V: d.V * o.V, D: d.V*o.D + d.D*o.V}
}

// Div returns d / o with the quotient rule tangent.
func (d Dual) Div(o Dual) Dual {
	return Dual{V: d.V / o.V, D: (d.D*o.V - d.V*o.D) / (o.V * o.V)}
}

// Sin returns sin(d); tangent cos(v) * dot.
func (d Dual) Sin() Dual {
	return Dual{V: sinf(d.V), D: cosf(d.V) * d.D}
}

// Cos returns cos(d); tangent -sin(v) * dot.
func (d Dual) Cos() Dual {
	return Dual{V: cosf(d.V), D: -sinf(d.V) * d.D}
}

// Exp returns e^d; tangent e^v * dot.
func (d Dual) Exp() Dual {
	e := float32(math.Exp(float64(d.V)))
	return Dual{V: e, D: e * d.D}
}

// Ln returns the natural logarithm; tangent dot / v.
func (d Dual) Ln() Dual {
	return Dual{V: float32(math.Log(float64(d.V))), D: d.D / d.V}
}

// PowI returns d^n for a constant integer exponent; tangent n*v^(n-1) * dot.
func (d Dual) PowI(n int) Dual {
	return Dual{
		V: powif(d.V, n),
		D: float32(n) * powif(d.V, n-1) * d.D,
	}
}

// Relu returns max(0, d), gating the tangent on v > 0.
func (d Dual) Relu() Dual {
	if d.V <= 0 {
		return Dual{}
	}
	return d
}

func sinf(v float32) float32 { return float32(math.Sin(float64(v))) }
func cosf(v float32) float32 { return float32(math.Cos(float64(v))) }

func powif(v float32, n int) float32 {
	return float32(math.Pow(float64(v), float64(n)))
}
