// Package expr implements the expression graph builder: an append-only arena
// that turns method-chained arithmetic into a DAG of nodes addressed by small
// integer idents. The builder owns the node arena and the variable/parameter
// names; computing values out of the nodes is the job of internal/graph.
package expr

import (
	"fmt"

	"github.com/google/uuid"
)

// Builder owns the append-only expression arena. It is not safe for
// concurrent use. A builder is consumed exactly once by graph construction
// and cannot register new nodes afterwards.
type Builder[V Value[V]] struct {
	id      uuid.UUID
	nodes   []Node[V]
	names   map[NameID]string
	nameSet map[string]struct{}
	frozen  bool
}

// NewBuilder creates an empty expression builder.
func NewBuilder[V Value[V]]() *Builder[V] {
	return &Builder[V]{
		id:      uuid.New(),
		names:   make(map[NameID]string),
		nameSet: make(map[string]struct{}),
	}
}

// ID returns the builder instance tag. The computation graph built from this
// builder inherits it, so fatal cross-instance lookups can name the offender.
func (b *Builder[V]) ID() uuid.UUID { return b.id }

// Len returns the number of registered nodes.
func (b *Builder[V]) Len() int { return len(b.nodes) }

// NewVariable registers a named external input. The name must be unique among
// all variables and named parameters of this builder.
func (b *Builder[V]) NewVariable(name string) Expr[V] {
	nameID := b.claimName(name)
	id := b.register(Node[V]{kind: KindVariable, name: nameID, named: true})
	return Expr[V]{ident: id, b: b}
}

// NewParameter registers an anonymous trainable parameter with the given
// initial value.
func (b *Builder[V]) NewParameter(initial V) Expr[V] {
	id := b.register(Node[V]{kind: KindParameter, value: initial})
	return Expr[V]{ident: id, b: b}
}

// NewNamedParameter registers a trainable parameter under a unique name.
func (b *Builder[V]) NewNamedParameter(name string, initial V) Expr[V] {
	nameID := b.claimName(name)
	id := b.register(Node[V]{kind: KindParameter, value: initial, name: nameID, named: true})
	return Expr[V]{ident: id, b: b}
}

// Const registers a literal. Constants have no mutable numeric state and
// never receive backward contributions.
func (b *Builder[V]) Const(v V) Expr[V] {
	id := b.register(Node[V]{kind: KindConst, value: v})
	return Expr[V]{ident: id, b: b}
}

// Unary appends a unary operation node over an existing handle.
func (b *Builder[V]) Unary(op Operator, a Expr[V]) Expr[V] {
	b.checkOwned(a)
	id := b.register(Node[V]{kind: KindUnary, op: op, a: a.ident})
	return Expr[V]{ident: id, b: b}
}

// Binary appends a binary operation node over two existing handles. No
// deduplication is performed: registering the same combination twice yields
// two distinct nodes.
func (b *Builder[V]) Binary(op Operator, lhs, rhs Expr[V]) Expr[V] {
	b.checkOwned(lhs)
	b.checkOwned(rhs)
	id := b.register(Node[V]{kind: KindBinary, op: op, a: lhs.ident, b: rhs.ident})
	return Expr[V]{ident: id, b: b}
}

// Freeze marks the builder frozen and hands the arena over. Called exactly
// once by graph construction; any registration afterwards panics.
func (b *Builder[V]) Freeze() []Node[V] {
	if b.frozen {
		panic(fmt.Sprintf("builder %s is already frozen", b.id))
	}
	b.frozen = true
	return b.nodes
}

// Name returns the stored name for a name key.
func (b *Builder[V]) Name(id NameID) (string, bool) {
	name, ok := b.names[id]
	return name, ok
}

func (b *Builder[V]) register(n Node[V]) Ident {
	if b.frozen {
		panic(fmt.Sprintf("builder %s is frozen, expressions cannot grow after graph construction", b.id))
	}
	id := Ident(len(b.nodes))
	b.nodes = append(b.nodes, n)
	return id
}

func (b *Builder[V]) claimName(name string) NameID {
	if _, ok := b.nameSet[name]; ok {
		panic(fmt.Sprintf("name %q already used by another variable or parameter", name))
	}
	b.nameSet[name] = struct{}{}
	nameID := NameID(len(b.nodes))
	b.names[nameID] = name
	return nameID
}

func (b *Builder[V]) checkOwned(e Expr[V]) {
	if e.b != b {
		panic(fmt.Sprintf("handle %s belongs to builder %s, not %s", e.ident, e.b.id, b.id))
	}
}

func (b *Builder[V]) node(id Ident) Node[V] {
	if int(id) < 0 || int(id) >= len(b.nodes) {
		panic(fmt.Sprintf("no node %s in builder %s", id, b.id))
	}
	return b.nodes[id]
}
