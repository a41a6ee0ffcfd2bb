package scalar

import "fmt"

// BinaryOp is the scalar binary operator set.
type BinaryOp int

// Binary operators.
const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	// OpPow is a^b where b is another expression.
	OpPow
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return " + "
	case OpSub:
		return " - "
	case OpMul:
		return " * "
	case OpPow:
		return "^"
	default:
		return fmt.Sprintf("binop(%d)", int(op))
	}
}

// UnaryOp is the scalar unary operator set.
type UnaryOp int

// Unary operators.
const (
	OpSin UnaryOp = iota
	OpCos
	OpLn
	OpRelu
)

func (op UnaryOp) String() string {
	switch op {
	case OpSin:
		return "sin"
	case OpCos:
		return "cos"
	case OpLn:
		return "ln"
	case OpRelu:
		return "relu"
	default:
		return fmt.Sprintf("unop(%d)", int(op))
	}
}

// PowI is the power-to-constant-integer unary operator; the operand is raised
// to the stored exponent.
type PowI int

func (op PowI) String() string {
	return fmt.Sprintf("pow%d", int(op))
}
