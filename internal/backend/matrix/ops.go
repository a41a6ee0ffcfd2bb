package matrix

import "fmt"

// BinaryOp is the matrix binary operator set.
type BinaryOp int

// Binary operators. OpMul is element-wise, not a matrix product.
const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpConv2D
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return " + "
	case OpSub:
		return " - "
	case OpMul:
		return " .* "
	case OpConv2D:
		return " conv2d "
	default:
		return fmt.Sprintf("binop(%d)", int(op))
	}
}

// UnaryOp is the matrix unary operator set.
type UnaryOp int

// Unary operators.
const (
	OpRelu UnaryOp = iota
	// OpSum adds all elements of the array and yields a single value.
	OpSum
)

func (op UnaryOp) String() string {
	switch op {
	case OpRelu:
		return "relu"
	case OpSum:
		return "sum"
	default:
		return fmt.Sprintf("unop(%d)", int(op))
	}
}

// PowI is the element-wise power-to-constant-integer operator.
type PowI int

func (op PowI) String() string {
	return fmt.Sprintf("pow%d", int(op))
}
