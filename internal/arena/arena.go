// Package arena implements a bump allocator used to own AST and type nodes
// for the lifetime of a single compilation. Nodes are never freed
// individually; the whole arena is dropped at once when the pipeline ends
// (spec.md §5: "AST allocation: each parser allocates nodes individually
// (or from an arena); ownership is hierarchical, freed post-order once the
// pipeline ends").
package arena

// Pool hands out *T values grown from fixed-size chunks, doubling chunk
// capacity geometrically — the same growth policy the parser's own
// node-list arrays use (spec.md §4.3: "geometric capacity doubling,
// starting at 8"). A Pool is specialized to a single concrete node type so
// allocation never needs reflection or unsafe: the backing chunks are
// ordinary []T slices.
type Pool[T any] struct {
	chunks [][]T
	off    int
	next   int
}

const initialChunkCap = 8

// NewPool creates an empty pool for node type T.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{next: initialChunkCap}
}

// Alloc reserves space for a single T, returning a pointer to the
// zero-valued slot inside the pool's backing storage. The returned pointer
// is valid for the lifetime of the Pool; it is never individually freed.
func (p *Pool[T]) Alloc() *T {
	if len(p.chunks) == 0 || p.off == len(p.chunks[len(p.chunks)-1]) {
		p.chunks = append(p.chunks, make([]T, p.next))
		p.next *= 2
		p.off = 0
	}
	cur := p.chunks[len(p.chunks)-1]
	node := &cur[p.off]
	p.off++
	return node
}

// Len reports how many T values have been handed out so far.
func (p *Pool[T]) Len() int {
	if len(p.chunks) == 0 {
		return 0
	}
	total := 0
	for _, c := range p.chunks[:len(p.chunks)-1] {
		total += len(c)
	}
	return total + p.off
}

// Reset drops every allocation made so far, keeping the first backing chunk
// for reuse by a subsequent compilation.
func (p *Pool[T]) Reset() {
	p.off = 0
	if len(p.chunks) > 1 {
		p.chunks = p.chunks[:1]
	}
	p.next = initialChunkCap * 2
}

// Arena owns every node pool used by a single compilation: one Pool per
// concrete AST/type node kind. It is constructed once per compilation
// (spec.md §5) and dropped — never walked for individual frees — once the
// pipeline finishes with it.
type Arena struct {
	pools map[string]any
}

// New creates an empty arena.
func New() *Arena {
	return &Arena{pools: make(map[string]any)}
}

// PoolFor returns the Pool[T] for node type T, creating it on first use.
// Callers pass a stable name (typically the node kind's constant tag) so
// the same concrete Go type can back more than one logical node kind if a
// future grammar addition needs that; in practice each Go type has exactly
// one name.
func PoolFor[T any](a *Arena, name string) *Pool[T] {
	if existing, ok := a.pools[name]; ok {
		return existing.(*Pool[T])
	}
	p := NewPool[T]()
	a.pools[name] = p
	return p
}
