// Package matrix is the dense-array reference backend: a Value type that is
// either a scalar or a shared dense row-major float32 array, the matrix
// operator set (element-wise + - *, relu, integer powers, reduction-sum, 2-D
// convolution) and the Calculator carrying their forward and backward rules.
package matrix

import (
	"fmt"

	"github.com/exprgrad/exprgrad/internal/parallel"
)

var par = parallel.DefaultConfig()

// Dense is a dense row-major float32 n-d array. A Dense is treated as
// immutable once built: operations allocate fresh outputs, so values may
// share one Dense by pointer the way the engine clones values freely.
type Dense struct {
	shape Shape
	data  []float32
}

// NewDense creates a dense array from a flat row-major data slice.
func NewDense(shape Shape, data []float32) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	return &Dense{shape: shape.Clone(), data: data}, nil
}

// FromElem creates a dense array with every element set to v.
func FromElem(shape Shape, v float32) *Dense {
	data := make([]float32, shape.NumElements())
	for i := range data {
		data[i] = v
	}
	return &Dense{shape: shape.Clone(), data: data}
}

// FromFunc creates a dense array filling each flat index from f.
func FromFunc(shape Shape, f func(i int) float32) *Dense {
	data := make([]float32, shape.NumElements())
	for i := range data {
		data[i] = f(i)
	}
	return &Dense{shape: shape.Clone(), data: data}
}

// Shape returns the array dimensions.
func (d *Dense) Shape() Shape { return d.shape }

// Data returns the flat row-major backing slice. Callers must not mutate it.
func (d *Dense) Data() []float32 { return d.data }

// At returns the element at row i, column j of a 2-D array.
func (d *Dense) At(i, j int) float32 {
	if len(d.shape) != 2 {
		panic(fmt.Sprintf("At needs a 2-D array, have shape %v", d.shape))
	}
	return d.data[i*d.shape[1]+j]
}

// Equal reports whether two arrays have the same shape and elements.
func (d *Dense) Equal(other *Dense) bool {
	if !d.shape.Equal(other.shape) {
		return false
	}
	for i := range d.data {
		if d.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Sum returns the sum of all elements.
func (d *Dense) Sum() float32 {
	var total float32
	for _, v := range d.data {
		total += v
	}
	return total
}

func (d *Dense) String() string {
	return fmt.Sprintf("%v%v", []int(d.shape), d.data)
}

// mapv applies f element-wise into a fresh array.
func mapv(d *Dense, f func(float32) float32) *Dense {
	out := &Dense{shape: d.shape.Clone(), data: make([]float32, len(d.data))}
	parallel.For(len(d.data), func(i int) {
		out.data[i] = f(d.data[i])
	}, par)
	return out
}

// zipWith applies f pair-wise into a fresh array. Shapes must match.
func zipWith(a, b *Dense, f func(x, y float32) float32) *Dense {
	if !a.shape.Equal(b.shape) {
		panic(fmt.Sprintf("shape mismatch: %v vs %v", a.shape, b.shape))
	}
	out := &Dense{shape: a.shape.Clone(), data: make([]float32, len(a.data))}
	parallel.For(len(a.data), func(i int) {
		out.data[i] = f(a.data[i], b.data[i])
	}, par)
	return out
}
