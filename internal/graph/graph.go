// Package graph implements the computation graph: it freezes an expression
// builder, attaches per-node numeric state (cached primal, accumulated
// adjoint, contribution count) and drives memoized forward evaluation and
// reverse-mode gradient accumulation through a pluggable Calculator.
package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/exprgrad/exprgrad/internal/expr"
)

// Calculator supplies the forward value and the local derivatives for every
// non-leaf operator over a concrete value type. It is the sole point of
// contact between the engine and a numeric backend.
type Calculator[V expr.Value[V]] interface {
	// Forward returns the computed value for a unary or binary node,
	// querying the graph for the (memoized) values of its dependencies.
	// It is never invoked for Const, Variable or Parameter nodes.
	Forward(g *Graph[V], id expr.Ident) V

	// Backward records the node's own accumulated adjoint via
	// Graph.AddAdjoint and recursively propagates the chain-rule product of
	// the incoming adjoint and each local partial derivative into the
	// node's dependencies.
	Backward(g *Graph[V], id expr.Ident, adjoint V)
}

// state is the per-node numeric record created at freeze time. Topology never
// changes after freeze; this record is the only thing that mutates.
type state[V expr.Value[V]] struct {
	primal  *V
	adjoint *V
	count   uint32
	// pinned marks a parameter primal explicitly written through
	// SetParameter, as opposed to the freeze-time initial value.
	pinned bool
}

// Graph is a frozen expression arena plus mutable numeric state. Forward and
// Backward mutate the cached state, so a graph must not be shared between
// goroutines; use one graph instance per worker instead.
type Graph[V expr.Value[V]] struct {
	id    uuid.UUID
	nodes []expr.Node[V]
	b     *expr.Builder[V] // kept for name lookups only
	state []state[V]
	calc  Calculator[V]
}

// New freezes the builder and creates the computation graph. The builder is
// consumed: it cannot register nodes afterwards. Parameter primals are
// initialized from their construction-time initial values; variable and
// intermediate state starts empty.
func New[V expr.Value[V]](b *expr.Builder[V], calc Calculator[V]) *Graph[V] {
	nodes := b.Freeze()
	g := &Graph[V]{
		id:    b.ID(),
		nodes: nodes,
		b:     b,
		state: make([]state[V], len(nodes)),
		calc:  calc,
	}
	for i, n := range nodes {
		if n.Kind() == expr.KindParameter {
			v := n.Value().Clone()
			g.state[i].primal = &v
		}
	}
	return g
}

// ID returns the instance tag inherited from the builder.
func (g *Graph[V]) ID() uuid.UUID { return g.id }

// Len returns the number of nodes.
func (g *Graph[V]) Len() int { return len(g.nodes) }

// Node returns the node stored for id. Dereferencing an ident that was not
// issued by this graph's builder is a fatal invariant violation.
func (g *Graph[V]) Node(id expr.Ident) expr.Node[V] {
	if int(id) < 0 || int(id) >= len(g.nodes) {
		panic(fmt.Sprintf("no node %s in graph %s", id, g.id))
	}
	return g.nodes[id]
}

// Name returns the variable or parameter name stored for a name key.
func (g *Graph[V]) Name(id expr.NameID) (string, bool) {
	return g.b.Name(id)
}

// Forward computes (or returns the cached) primal value of id.
//
// Constants return their literal immediately. A cached primal is returned
// unchanged: an ident's primal is computed at most once per reset cycle.
// Variables and parameters must have been set beforehand; an absent leaf
// value is a fatal error, never silently defaulted.
func (g *Graph[V]) Forward(id expr.Ident) V {
	n := g.Node(id)
	if n.Kind() == expr.KindConst {
		return n.Value()
	}
	if st := &g.state[id]; st.primal != nil {
		return *st.primal
	}
	switch n.Kind() {
	case expr.KindVariable, expr.KindParameter:
		panic(fmt.Sprintf("value not set for %s %s", n.Kind(), g.describe(id)))
	}
	primal := g.calc.Forward(g, id)
	g.setPrimal(id, primal)
	return primal
}

// Backward runs reverse-mode differentiation from id: it computes (or
// fetches) the primal of id, seeds the adjoint with a ones-like value of the
// same shape and lets the calculator propagate contributions down to every
// node that fed into id. Contributions accumulate; run a reset between
// backward passes that must not add up.
func (g *Graph[V]) Backward(id expr.Ident) {
	primal := g.Forward(id)
	g.calc.Backward(g, id, primal.OnesLike())
}

// AddAdjoint accumulates a partial adjoint into id and increments its
// contribution count. Constants never take part in differentiation: a
// contribution arriving at a Const node is discarded, not an error.
func (g *Graph[V]) AddAdjoint(id expr.Ident, adjoint V) {
	n := g.Node(id)
	if n.Kind() == expr.KindConst {
		return
	}
	st := &g.state[id]
	if st.adjoint == nil {
		v := adjoint.Clone()
		st.adjoint = &v
	} else {
		v := (*st.adjoint).Add(adjoint)
		st.adjoint = &v
	}
	st.count++
}

// Primal returns the cached primal of id. Fatal if the forward pass has not
// reached the node since the last reset.
func (g *Graph[V]) Primal(id expr.Ident) V {
	n := g.Node(id)
	if n.Kind() == expr.KindConst {
		return n.Value()
	}
	st := &g.state[id]
	if st.primal == nil {
		panic(fmt.Sprintf("primal missing for %s", g.describe(id)))
	}
	return *st.primal
}

// Adjoint returns the accumulated adjoint of id. Fatal if no backward pass
// has written to the node since the last reset.
func (g *Graph[V]) Adjoint(id expr.Ident) V {
	g.Node(id)
	st := &g.state[id]
	if st.adjoint == nil {
		panic(fmt.Sprintf("adjoint missing for %s, maybe you didn't run backward?", g.describe(id)))
	}
	return *st.adjoint
}

// AdjointCount returns the number of contributions accumulated into id since
// the last reset.
func (g *Graph[V]) AdjointCount(id expr.Ident) uint32 {
	g.Node(id)
	return g.state[id].count
}

// SetVariable writes the primal of a variable. Writing a variable that is
// already set without an intervening reset is fatal; this at-most-once
// discipline keeps the memoized forward pass sound.
func (g *Graph[V]) SetVariable(id expr.Ident, value V) {
	if k := g.Node(id).Kind(); k != expr.KindVariable {
		panic(fmt.Sprintf("%s is not a variable but a %s node", g.describe(id), k))
	}
	g.setPrimal(id, value)
}

// SetParameter overrides a parameter's primal, replacing the freeze-time
// initial value. At most one explicit write is allowed between full resets.
func (g *Graph[V]) SetParameter(id expr.Ident, value V) {
	if k := g.Node(id).Kind(); k != expr.KindParameter {
		panic(fmt.Sprintf("%s is not a parameter but a %s node", g.describe(id), k))
	}
	st := &g.state[id]
	if st.pinned {
		panic(fmt.Sprintf("parameter %s already set to %s", g.describe(id), *st.primal))
	}
	st.primal = &value
	st.pinned = true
}

// ResetForNextInput clears every non-parameter primal so the next forward
// pass recomputes with new variable values. Accumulated adjoints and
// parameter primals are preserved: gradients keep accumulating across the
// examples of one epoch.
func (g *Graph[V]) ResetForNextInput() {
	for i, n := range g.nodes {
		if n.Kind() != expr.KindParameter {
			g.state[i].primal = nil
		}
	}
}

// ResetForNextEpoch clears all primals and adjoints except parameter
// primals, which persist across epochs.
func (g *Graph[V]) ResetForNextEpoch() {
	for i, n := range g.nodes {
		if n.Kind() != expr.KindParameter {
			g.state[i].primal = nil
		}
		g.state[i].adjoint = nil
		g.state[i].count = 0
	}
}

// Reset clears all numeric state, restores parameter primals to their
// construction-time initial values and re-arms SetVariable/SetParameter.
// Used by derivative sweeps that evaluate the same graph at many points.
func (g *Graph[V]) Reset() {
	for i, n := range g.nodes {
		g.state[i] = state[V]{}
		if n.Kind() == expr.KindParameter {
			v := n.Value().Clone()
			g.state[i].primal = &v
		}
	}
}

// UpdateParamsLR applies one gradient-descent step to every parameter:
//
//	primal -= lr * adjoint/count
//
// The division by the contribution count turns the accumulated sum into a
// mean gradient over the inputs of the epoch. Each parameter's adjoint is
// cleared afterwards; primals persist. A parameter with no accumulated
// adjoint is fatal.
func (g *Graph[V]) UpdateParamsLR(lr float32) {
	for i, n := range g.nodes {
		if n.Kind() != expr.KindParameter {
			continue
		}
		st := &g.state[i]
		if st.adjoint == nil {
			panic(fmt.Sprintf("no adjoint for parameter %s, did you forget to call backward?",
				g.describe(expr.Ident(i))))
		}
		mean := (*st.adjoint).Scale(1 / float32(st.count))
		updated := (*st.primal).Sub(mean.Scale(lr))
		st.primal = &updated
		st.adjoint = nil
		st.count = 0
	}
}

func (g *Graph[V]) setPrimal(id expr.Ident, value V) {
	st := &g.state[id]
	if st.primal != nil {
		panic(fmt.Sprintf("value for %s already set to %s", g.describe(id), *st.primal))
	}
	st.primal = &value
}

// describe names a node for error messages: the stored name when there is
// one, the ident otherwise.
func (g *Graph[V]) describe(id expr.Ident) string {
	if nameID, ok := g.nodes[id].NameID(); ok {
		if name, ok := g.b.Name(nameID); ok {
			return name
		}
	}
	return id.String()
}
