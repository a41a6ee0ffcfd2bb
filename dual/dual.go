// Copyright 2025 The Exprgrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dual provides forward-mode automatic differentiation over dual
// numbers. Seed the input, chain operations, and read the derivative off the
// tangent:
//
//	d := dual.Seed(2).PowI(3) // v=8, d=12
package dual

import (
	idual "github.com/exprgrad/exprgrad/internal/dual"
)

// Dual is a value together with its tangent.
type Dual = idual.Dual

// Seed lifts the differentiation input: tangent 1.
func Seed(x float32) Dual {
	return idual.Seed(x)
}

// Lift lifts a constant: tangent 0.
func Lift(c float32) Dual {
	return idual.Lift(c)
}
