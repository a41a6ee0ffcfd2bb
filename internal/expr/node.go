package expr

// Kind discriminates the node variants stored in the arena.
type Kind int

// Node kinds.
const (
	KindConst Kind = iota
	KindVariable
	KindParameter
	KindUnary
	KindBinary
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindVariable:
		return "variable"
	case KindParameter:
		return "parameter"
	case KindUnary:
		return "unary"
	case KindBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Node is the tagged union stored per ident: a literal constant, a named
// external input, a trainable parameter with an initial value, or a unary or
// binary operation over existing nodes. Nodes are immutable once registered.
type Node[V Value[V]] struct {
	kind  Kind
	value V      // Const literal, or Parameter initial value.
	name  NameID // Variable, or named Parameter.
	named bool
	op    Operator
	a, b  Ident
}

// Kind returns the node variant.
func (n Node[V]) Kind() Kind { return n.kind }

// Value returns the Const literal or the Parameter initial value.
func (n Node[V]) Value() V { return n.value }

// NameID returns the name key and whether the node carries one. Variables are
// always named; parameters only when built with NewNamedParameter.
func (n Node[V]) NameID() (NameID, bool) { return n.name, n.named }

// Op returns the operator of a unary or binary node.
func (n Node[V]) Op() Operator { return n.op }

// A returns the first (or only) operand ident.
func (n Node[V]) A() Ident { return n.a }

// B returns the second operand ident of a binary node.
func (n Node[V]) B() Ident { return n.b }
