package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exprgrad/exprgrad/internal/backend/matrix"
)

func dense(t *testing.T, shape matrix.Shape, data []float32) matrix.Value {
	t.Helper()
	d, err := matrix.NewDense(shape, data)
	require.NoError(t, err)
	return matrix.FromDense(d)
}

func elems(t *testing.T, v matrix.Value) []float32 {
	t.Helper()
	require.NotNil(t, v.Dense(), "value %s is a scalar, want an array", v)
	return v.Dense().Data()
}

func TestNewDense_Validation(t *testing.T) {
	_, err := matrix.NewDense(matrix.Shape{2, 2}, []float32{1, 2, 3})
	assert.Error(t, err)

	_, err = matrix.NewDense(matrix.Shape{2, 0}, nil)
	assert.Error(t, err)

	d, err := matrix.NewDense(matrix.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, float32(6), d.At(1, 2))
	assert.Equal(t, float32(21), d.Sum())
}

func TestForward_AddMul(t *testing.T) {
	b := matrix.NewBuilder()
	a := b.NewVariable("a")
	c := b.NewVariable("b")
	d := b.NewVariable("c")
	y := a.Add(c.Mul(d)) // a + b .* c

	g := matrix.NewGraph(b)
	g.SetVariable(a.Ident(), matrix.FromDense(matrix.FromElem(matrix.Shape{2, 2}, 1)))
	g.SetVariable(c.Ident(), matrix.FromDense(matrix.FromElem(matrix.Shape{2, 2}, 2)))
	g.SetVariable(d.Ident(), matrix.FromDense(matrix.FromElem(matrix.Shape{2, 2}, 3)))

	out := g.Forward(y.Ident())
	assert.Equal(t, []float32{7, 7, 7, 7}, elems(t, out))

	g.Backward(y.Ident())
	assert.Equal(t, []float32{1, 1, 1, 1}, elems(t, g.Adjoint(a.Ident())))
	assert.Equal(t, []float32{3, 3, 3, 3}, elems(t, g.Adjoint(c.Ident())))
	assert.Equal(t, []float32{2, 2, 2, 2}, elems(t, g.Adjoint(d.Ident())))
}

func TestForward_ScalarBroadcast(t *testing.T) {
	b := matrix.NewBuilder()
	m := b.NewVariable("m")
	y := m.Mul(b.Const(matrix.FromScalar(2))).Add(b.Const(matrix.FromScalar(3)))

	g := matrix.NewGraph(b)
	g.SetVariable(m.Ident(), dense(t, matrix.Shape{2, 2}, []float32{1, 2, 3, 4}))

	out := g.Forward(y.Ident())
	assert.Equal(t, []float32{5, 7, 9, 11}, elems(t, out))

	g.Backward(y.Ident())
	assert.Equal(t, []float32{2, 2, 2, 2}, elems(t, g.Adjoint(m.Ident())))
}

func TestRelu(t *testing.T) {
	b := matrix.NewBuilder()
	m := b.NewVariable("m")
	y := m.Relu()

	g := matrix.NewGraph(b)
	g.SetVariable(m.Ident(), dense(t, matrix.Shape{2, 2}, []float32{-1, 2, -3, 4}))

	out := g.Forward(y.Ident())
	assert.Equal(t, []float32{0, 2, 0, 4}, elems(t, out))

	g.Backward(y.Ident())
	assert.Equal(t, []float32{0, 1, 0, 1}, elems(t, g.Adjoint(m.Ident())))
}

func TestPowI(t *testing.T) {
	b := matrix.NewBuilder()
	m := b.NewVariable("m")
	y := m.PowI(2)

	g := matrix.NewGraph(b)
	g.SetVariable(m.Ident(), dense(t, matrix.Shape{2, 2}, []float32{-1, 0, 1, 2}))

	out := g.Forward(y.Ident())
	assert.Equal(t, []float32{1, 0, 1, 4}, elems(t, out))

	// d(a^2)/da = 2a per element.
	g.Backward(y.Ident())
	assert.Equal(t, []float32{-2, 0, 2, 4}, elems(t, g.Adjoint(m.Ident())))
}

func TestSum(t *testing.T) {
	b := matrix.NewBuilder()
	m := b.NewVariable("m")
	y := m.Sum()

	g := matrix.NewGraph(b)
	g.SetVariable(m.Ident(), dense(t, matrix.Shape{2, 2}, []float32{1, 2, 3, 4}))

	out := g.Forward(y.Ident())
	total, ok := out.Scalar()
	require.True(t, ok, "sum should reduce to a scalar")
	assert.Equal(t, float32(10), total)

	// The scalar seed routes through the reduction unchanged; it broadcasts
	// over the operand once it meets element-wise ops.
	g.Backward(y.Ident())
	adj, ok := g.Adjoint(m.Ident()).Scalar()
	require.True(t, ok)
	assert.Equal(t, float32(1), adj)
}

func TestSum_OfSquares(t *testing.T) {
	b := matrix.NewBuilder()
	m := b.NewVariable("m")
	y := m.PowI(2).Sum()

	g := matrix.NewGraph(b)
	g.SetVariable(m.Ident(), dense(t, matrix.Shape{1, 3}, []float32{1, 2, 3}))

	out := g.Forward(y.Ident())
	total, ok := out.Scalar()
	require.True(t, ok)
	assert.Equal(t, float32(14), total)

	g.Backward(y.Ident())
	assert.Equal(t, []float32{2, 4, 6}, elems(t, g.Adjoint(m.Ident())))
}

func TestConv2D_Forward(t *testing.T) {
	b := matrix.NewBuilder()
	in := b.NewVariable("in")
	k := b.NewVariable("k")
	y := in.Conv2D(k)

	g := matrix.NewGraph(b)
	g.SetVariable(in.Ident(), dense(t, matrix.Shape{3, 3}, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}))
	g.SetVariable(k.Ident(), dense(t, matrix.Shape{2, 2}, []float32{1, 0, 0, 1}))

	out := g.Forward(y.Ident())
	require.Equal(t, matrix.Shape{2, 2}, out.Dense().Shape())
	// out[i][j] = in[i][j] + in[i+1][j+1]
	assert.Equal(t, []float32{6, 8, 12, 14}, elems(t, out))
}

func TestConv2D_Backward(t *testing.T) {
	b := matrix.NewBuilder()
	in := b.NewVariable("in")
	k := b.NewVariable("k")
	y := in.Conv2D(k)

	g := matrix.NewGraph(b)
	g.SetVariable(in.Ident(), dense(t, matrix.Shape{3, 3}, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}))
	g.SetVariable(k.Ident(), dense(t, matrix.Shape{2, 2}, []float32{1, 0, 0, 1}))

	g.Forward(y.Ident())
	g.Backward(y.Ident())

	// dK[p][q] = sum over output cells of in[i+p][j+q] with a ones seed.
	assert.Equal(t, []float32{12, 16, 24, 28}, elems(t, g.Adjoint(k.Ident())))
	// dIn scatters the kernel under every output cell.
	assert.Equal(t, []float32{1, 1, 0, 1, 2, 1, 0, 1, 1}, elems(t, g.Adjoint(in.Ident())))
}

func TestConv2D_ShapeErrors(t *testing.T) {
	build := func(inShape, kShape matrix.Shape) func() {
		return func() {
			b := matrix.NewBuilder()
			in := b.NewVariable("in")
			k := b.NewVariable("k")
			y := in.Conv2D(k)

			g := matrix.NewGraph(b)
			g.SetVariable(in.Ident(), matrix.FromDense(matrix.FromElem(inShape, 1)))
			g.SetVariable(k.Ident(), matrix.FromDense(matrix.FromElem(kShape, 1)))
			g.Forward(y.Ident())
		}
	}

	assert.Panics(t, build(matrix.Shape{4}, matrix.Shape{2, 2}), "1-D input")
	assert.Panics(t, build(matrix.Shape{2, 2}, matrix.Shape{3, 3}), "kernel larger than input")
}

func TestRendering(t *testing.T) {
	b := matrix.NewBuilder()
	a := b.NewVariable("a")
	c := b.NewVariable("c")

	assert.Equal(t, "(a .* c)", a.Mul(c).String())
	assert.Equal(t, "relu((a + c))", a.Add(c).Relu().String())
	assert.Equal(t, "sum(pow2(a))", a.PowI(2).Sum().String())
	assert.Equal(t, "(a conv2d c)", a.Conv2D(c).String())
}
