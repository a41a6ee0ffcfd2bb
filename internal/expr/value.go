package expr

import "fmt"

// Value is the contract a computed value type must satisfy so the engine can
// stay generic over scalars and tensors. Add accumulates adjoint
// contributions; Sub and Scale drive the parameter update; OnesLike produces
// the default adjoint used to seed a backward pass, shaped like the receiver.
type Value[V any] interface {
	fmt.Stringer

	// Add returns the element-wise sum of the receiver and other.
	Add(other V) V
	// Sub returns the element-wise difference of the receiver and other.
	Sub(other V) V
	// Scale returns the receiver with every element multiplied by k.
	Scale(k float32) V
	// OnesLike returns a ones-filled value with the shape of the receiver.
	OnesLike() V
	// Clone returns a structural copy of the receiver.
	Clone() V
}

// Operator is implemented by backend-defined operator sets. The engine never
// interprets operators itself; it only stores them in nodes and renders them
// in expression dumps.
type Operator interface {
	fmt.Stringer
}
