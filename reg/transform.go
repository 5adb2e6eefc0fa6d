package reg

import (
	"fmt"
	"strconv"
	"strings"
)

// Generator produces the per-leaf value of a transformed tree. It receives
// the leaf's descriptor, with array offsets already applied, and nothing
// about its position in the tree, so the same generator works unchanged on
// any register map. Stateful generators (counters, collectors) are ordinary
// closures; the transform invokes them exactly once per leaf.
type Generator[T any] func(Register) T

// Transform walks a schema and produces an isomorphic tree whose leaves hold
// the generator's outputs. Traversal is declaration order: group fields in
// the order they were declared, array elements 0..N-1. The order is stable
// across invocations and across generators, so generators that assign
// sequential identity see the same sequence every time.
//
// The walk itself cannot fail and never mutates the schema; the result is an
// independent value sharing no mutable state with the source or with other
// transformed trees.
func Transform[T any](n *Node, g Generator[T]) *Tree[T] {
	t := transformNode(n, g, 0)
	return &t
}

func transformNode[T any](n *Node, g Generator[T], offset uint32) Tree[T] {
	switch n.kind {
	case nodeLeaf:
		r := n.reg
		r.Addr += offset
		return Tree[T]{kind: nodeLeaf, leaf: g(r)}
	case nodeGroup:
		fields := make([]treeField[T], len(n.fields))
		for i, f := range n.fields {
			fields[i] = treeField[T]{name: f.Name, tree: transformNode(f.Node, g, offset)}
		}
		return Tree[T]{kind: nodeGroup, fields: fields}
	default:
		elems := make([]Tree[T], n.count)
		for i := range elems {
			elems[i] = transformNode(n.elem, g, offset+uint32(i)*n.step)
		}
		return Tree[T]{kind: nodeArray, elems: elems}
	}
}

type treeField[T any] struct {
	name string
	tree Tree[T]
}

// Tree is the output of a Transform: the same shape as the source schema,
// with each leaf position holding a generator output instead of a register
// descriptor.
type Tree[T any] struct {
	kind   nodeKind
	leaf   T
	fields []treeField[T]
	elems  []Tree[T]
}

// IsLeaf reports whether the position holds a leaf value.
func (t *Tree[T]) IsLeaf() bool { return t.kind == nodeLeaf }

// Leaf returns the leaf value. For groups and arrays it returns the zero
// value; check IsLeaf when the shape is not known statically.
func (t *Tree[T]) Leaf() T { return t.leaf }

// Len returns the number of direct children, like [Node.Len].
func (t *Tree[T]) Len() int {
	switch t.kind {
	case nodeArray:
		return len(t.elems)
	case nodeGroup:
		return len(t.fields)
	default:
		return 0
	}
}

// Field returns the named child of a group position.
func (t *Tree[T]) Field(name string) (*Tree[T], bool) {
	if t.kind != nodeGroup {
		return nil, false
	}
	for i := range t.fields {
		if t.fields[i].name == name {
			return &t.fields[i].tree, true
		}
	}
	return nil, false
}

// Index returns the i'th element of an array position.
func (t *Tree[T]) Index(i int) (*Tree[T], bool) {
	if t.kind != nodeArray || i < 0 || i >= len(t.elems) {
		return nil, false
	}
	return &t.elems[i], true
}

// Find resolves a dotted path like [Node.At] and returns the subtree there.
func (t *Tree[T]) Find(path string) (*Tree[T], error) {
	if path == "" {
		return t, nil
	}
	cur := t
	for _, seg := range strings.Split(path, ".") {
		switch cur.kind {
		case nodeGroup:
			next, ok := cur.Field(seg)
			if !ok {
				return nil, fmt.Errorf("reg: field %q in path %q: %w", seg, path, ErrNotFound)
			}
			cur = next
		case nodeArray:
			i, err := strconv.Atoi(seg)
			if err != nil {
				return nil, fmt.Errorf("reg: array index %q in path %q: %w", seg, path, ErrNotFound)
			}
			next, ok := cur.Index(i)
			if !ok {
				return nil, fmt.Errorf("reg: index %d out of range [0,%d) in path %q: %w",
					i, len(cur.elems), path, ErrNotFound)
			}
			cur = next
		default:
			return nil, fmt.Errorf("reg: %q descends below leaf in path %q: %w", seg, path, ErrNotFound)
		}
	}
	return cur, nil
}

// Each visits every leaf value in declaration order.
func (t *Tree[T]) Each(fn func(T)) {
	switch t.kind {
	case nodeLeaf:
		fn(t.leaf)
	case nodeGroup:
		for i := range t.fields {
			t.fields[i].tree.Each(fn)
		}
	default:
		for i := range t.elems {
			t.elems[i].Each(fn)
		}
	}
}

// NumLeaves returns the number of leaf positions in the tree.
func (t *Tree[T]) NumLeaves() int {
	n := 0
	t.Each(func(T) { n++ })
	return n
}
