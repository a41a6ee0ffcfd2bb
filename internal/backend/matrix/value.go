package matrix

import (
	"math"
	"strconv"
)

// Value is either a dense array or a plain scalar. For all practical
// purposes a scalar v behaves as an array of matching shape with every
// element set to v, which keeps syntax like "m*2 + 3" cheap.
type Value struct {
	m *Dense // nil for scalars
	v float32
}

// FromDense wraps a dense array. The array is shared, not copied.
func FromDense(m *Dense) Value { return Value{m: m} }

// FromScalar wraps a plain float32.
func FromScalar(v float32) Value { return Value{v: v} }

// Dense returns the underlying array, or nil for a scalar value.
func (x Value) Dense() *Dense { return x.m }

// Scalar returns the underlying scalar and whether the value is one.
func (x Value) Scalar() (float32, bool) {
	if x.m != nil {
		return 0, false
	}
	return x.v, true
}

// Add returns the element-wise sum, broadcasting scalars over arrays.
func (x Value) Add(other Value) Value {
	switch {
	case x.m != nil && other.m != nil:
		return FromDense(zipWith(x.m, other.m, func(a, b float32) float32 { return a + b }))
	case x.m != nil:
		return FromDense(mapv(x.m, func(a float32) float32 { return a + other.v }))
	case other.m != nil:
		return FromDense(mapv(other.m, func(b float32) float32 { return x.v + b }))
	default:
		return FromScalar(x.v + other.v)
	}
}

// Sub returns the element-wise difference, broadcasting scalars over arrays.
func (x Value) Sub(other Value) Value {
	switch {
	case x.m != nil && other.m != nil:
		return FromDense(zipWith(x.m, other.m, func(a, b float32) float32 { return a - b }))
	case x.m != nil:
		return FromDense(mapv(x.m, func(a float32) float32 { return a - other.v }))
	case other.m != nil:
		return FromDense(mapv(other.m, func(b float32) float32 { return x.v - b }))
	default:
		return FromScalar(x.v - other.v)
	}
}

// Mul returns the element-wise product, broadcasting scalars over arrays.
func (x Value) Mul(other Value) Value {
	switch {
	case x.m != nil && other.m != nil:
		return FromDense(zipWith(x.m, other.m, func(a, b float32) float32 { return a * b }))
	case x.m != nil:
		return FromDense(mapv(x.m, func(a float32) float32 { return a * other.v }))
	case other.m != nil:
		return FromDense(mapv(other.m, func(b float32) float32 { return x.v * b }))
	default:
		return FromScalar(x.v * other.v)
	}
}

// Scale multiplies every element by k.
func (x Value) Scale(k float32) Value {
	if x.m != nil {
		return FromDense(mapv(x.m, func(a float32) float32 { return a * k }))
	}
	return FromScalar(x.v * k)
}

// OnesLike returns the default adjoint: ones in the shape of the receiver.
func (x Value) OnesLike() Value {
	if x.m != nil {
		return FromDense(FromElem(x.m.shape, 1))
	}
	return FromScalar(1)
}

// Clone returns a structural copy. The dense array is shared since arrays
// are immutable once built.
func (x Value) Clone() Value { return x }

func (x Value) String() string {
	if x.m != nil {
		return x.m.String()
	}
	return strconv.FormatFloat(float64(x.v), 'g', -1, 32)
}

func (x Value) relu() Value {
	if x.m != nil {
		return FromDense(mapv(x.m, reluScalar))
	}
	return FromScalar(reluScalar(x.v))
}

// reluGate is the local derivative of relu evaluated at the primal.
func (x Value) reluGate() Value {
	if x.m != nil {
		return FromDense(mapv(x.m, reluGateScalar))
	}
	return FromScalar(reluGateScalar(x.v))
}

func (x Value) powi(n int) Value {
	if x.m != nil {
		return FromDense(mapv(x.m, func(a float32) float32 { return powiScalar(a, n) }))
	}
	return FromScalar(powiScalar(x.v, n))
}

// powiGrad is the local derivative of powi evaluated at the primal,
// n * a^(n-1).
func (x Value) powiGrad(n int) Value {
	f := func(a float32) float32 { return float32(n) * powiScalar(a, n-1) }
	if x.m != nil {
		return FromDense(mapv(x.m, f))
	}
	return FromScalar(f(x.v))
}

// sum reduces an array to the scalar sum of its elements; scalars reduce to
// themselves.
func (x Value) sum() Value {
	if x.m != nil {
		return FromScalar(x.m.Sum())
	}
	return x
}

func reluScalar(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return v
}

func reluGateScalar(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return 1
}

func powiScalar(a float32, n int) float32 {
	return float32(math.Pow(float64(a), float64(n)))
}
