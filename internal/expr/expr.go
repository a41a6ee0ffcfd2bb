package expr

import (
	"strings"
)

// Expr is a lightweight, copyable handle: an ident coupled with a reference
// to the owning builder, so it can be combined into further operations.
type Expr[V Value[V]] struct {
	ident Ident
	b     *Builder[V]
}

// Ident returns the node identifier of the handle.
func (e Expr[V]) Ident() Ident { return e.ident }

// Builder returns the owning builder.
func (e Expr[V]) Builder() *Builder[V] { return e.b }

// Apply1 registers op over this handle and returns the new handle.
func (e Expr[V]) Apply1(op Operator) Expr[V] {
	return e.b.Unary(op, e)
}

// Apply2 registers op over this handle and rhs and returns the new handle.
func (e Expr[V]) Apply2(op Operator, rhs Expr[V]) Expr[V] {
	return e.b.Binary(op, e, rhs)
}

// String renders the fully parenthesized expression, looking up dependency
// nodes recursively. Variables and named parameters render as their names,
// anonymous parameters as their idents, constants via the value type.
func (e Expr[V]) String() string {
	var sb strings.Builder
	e.writeNode(&sb, e.ident)
	return sb.String()
}

func (e Expr[V]) writeNode(sb *strings.Builder, id Ident) {
	n := e.b.node(id)
	switch n.kind {
	case KindConst:
		sb.WriteString(n.value.String())
	case KindVariable, KindParameter:
		if n.named {
			name, _ := e.b.Name(n.name)
			sb.WriteString(name)
		} else {
			sb.WriteString(id.String())
		}
	case KindUnary:
		sb.WriteString(n.op.String())
		sb.WriteString("(")
		e.writeNode(sb, n.a)
		sb.WriteString(")")
	case KindBinary:
		sb.WriteString("(")
		e.writeNode(sb, n.a)
		sb.WriteString(n.op.String())
		e.writeNode(sb, n.b)
		sb.WriteString(")")
	}
}
