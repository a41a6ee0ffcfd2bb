package matrix

import (
	"fmt"

	"github.com/exprgrad/exprgrad/internal/parallel"
)

// conv2d computes a valid (no padding), stride-1 2-D convolution of a 2-D
// input with a 2-D kernel: out[i][j] = sum_{p,q} in[i+p][j+q] * k[p][q].
func conv2d(in, k *Dense) *Dense {
	h, w, kh, kw := convDims(in, k)
	oh, ow := h-kh+1, w-kw+1
	out := FromElem(Shape{oh, ow}, 0)
	parallel.For2(oh, ow, func(i, j int) {
		var acc float32
		for p := 0; p < kh; p++ {
			for q := 0; q < kw; q++ {
				acc += in.data[(i+p)*w+j+q] * k.data[p*kw+q]
			}
		}
		out.data[i*ow+j] = acc
	}, par)
	return out
}

// conv2dInputBackward scatters the output gradient back onto the input:
// dIn[i+p][j+q] += grad[i][j] * k[p][q].
func conv2dInputBackward(in, k, grad *Dense) *Dense {
	h, w, kh, kw := convDims(in, k)
	oh, ow := h-kh+1, w-kw+1
	dIn := FromElem(Shape{h, w}, 0)
	// Sequential: output cells overlap on the input, a parallel scatter
	// would race.
	for i := 0; i < oh; i++ {
		for j := 0; j < ow; j++ {
			g := grad.data[i*ow+j]
			for p := 0; p < kh; p++ {
				for q := 0; q < kw; q++ {
					dIn.data[(i+p)*w+j+q] += g * k.data[p*kw+q]
				}
			}
		}
	}
	return dIn
}

// conv2dKernelBackward correlates the input with the output gradient:
// dK[p][q] = sum_{i,j} grad[i][j] * in[i+p][j+q].
func conv2dKernelBackward(in, k, grad *Dense) *Dense {
	h, w, kh, kw := convDims(in, k)
	oh, ow := h-kh+1, w-kw+1
	dK := FromElem(Shape{kh, kw}, 0)
	parallel.For2(kh, kw, func(p, q int) {
		var acc float32
		for i := 0; i < oh; i++ {
			for j := 0; j < ow; j++ {
				acc += grad.data[i*ow+j] * in.data[(i+p)*w+j+q]
			}
		}
		dK.data[p*kw+q] = acc
	}, par)
	return dK
}

func convDims(in, k *Dense) (h, w, kh, kw int) {
	if len(in.shape) != 2 || len(k.shape) != 2 {
		panic(fmt.Sprintf("conv2d needs 2-D input and kernel, have %v and %v", in.shape, k.shape))
	}
	h, w = in.shape[0], in.shape[1]
	kh, kw = k.shape[0], k.shape[1]
	if h < kh || w < kw {
		panic(fmt.Sprintf("conv2d input %v smaller than kernel %v", in.shape, k.shape))
	}
	return h, w, kh, kw
}
