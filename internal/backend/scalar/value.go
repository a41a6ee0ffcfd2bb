// Package scalar is the float32 reference backend: a Value type satisfying
// the engine's value contract, the scalar operator set (+ - * pow, sin cos ln
// relu and integer powers) and the Calculator carrying their forward and
// backward rules.
package scalar

import "strconv"

// Value is a scalar float32 computed value.
type Value float32

// Add returns v + other.
func (v Value) Add(other Value) Value { return v + other }

// Sub returns v - other.
func (v Value) Sub(other Value) Value { return v - other }

// Scale returns v * k.
func (v Value) Scale(k float32) Value { return v * Value(k) }

// OnesLike returns the default adjoint for a scalar, 1.
func (v Value) OnesLike() Value { return 1 }

// Clone returns the value itself; scalars are trivially copyable.
func (v Value) Clone() Value { return v }

func (v Value) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
