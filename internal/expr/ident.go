package expr

import "fmt"

// Ident identifies a node inside one Builder. Idents are issued in strictly
// increasing construction order, densely packed from zero, and never reused.
// Two idents are equal iff they denote the same node of the same builder.
type Ident int

// String renders the ident the way anonymous nodes appear in expression
// dumps, e.g. "_3".
func (id Ident) String() string {
	return fmt.Sprintf("_%d", int(id))
}

// NameID points at the human-readable name stored aside for a variable or a
// named parameter. The distinct type only distinguishes name keys from plain
// idents; the numeric value is the ident of the named node.
type NameID Ident

func (n NameID) String() string {
	return fmt.Sprintf("name(%s)", Ident(n))
}
