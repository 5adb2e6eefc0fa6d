package reg

import (
	"fmt"
	"strconv"
	"strings"
)

type nodeKind int

const (
	nodeLeaf nodeKind = iota
	nodeGroup
	nodeArray
)

// Field is a named child of a group node.
type Field struct {
	Name string
	Node *Node
}

// F is shorthand for declaring a group field.
func F(name string, n *Node) Field {
	return Field{Name: name, Node: n}
}

// Node is one position in a register map schema: a leaf register, a group of
// named fields, or a fixed-size array of identical elements. Nodes are
// immutable once constructed; the constructors validate, so a reachable Node
// is always well formed.
//
// Array elements share a single element schema. Element i lives at the
// element schema's addresses plus i times the array step, applied during
// traversal rather than stored, so a thousand-element array costs one node.
type Node struct {
	kind   nodeKind
	reg    Register
	fields []Field
	elem   *Node
	count  int
	step   uint32
}

// NewLeaf declares a single register.
func NewLeaf(r Register) (*Node, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &Node{kind: nodeLeaf, reg: r}, nil
}

// NewGroup declares a composite of named children, visited in the order
// given. Names must be nonempty, unique within the group, and must not
// contain the path separator.
func NewGroup(fields ...Field) (*Node, error) {
	if len(fields) == 0 {
		return nil, schemaErr("group has no fields")
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, schemaErr("group field has an empty name")
		}
		if strings.Contains(f.Name, ".") {
			return nil, schemaErr(fmt.Sprintf("group field name %q contains a path separator", f.Name))
		}
		if _, err := strconv.Atoi(f.Name); err == nil {
			return nil, schemaErr(fmt.Sprintf("group field name %q is numeric (reserved for array indices)", f.Name))
		}
		if _, dup := seen[f.Name]; dup {
			return nil, schemaErr(fmt.Sprintf("duplicate field name %q", f.Name))
		}
		seen[f.Name] = struct{}{}
		if f.Node == nil {
			return nil, schemaErr(fmt.Sprintf("field %q has no node", f.Name))
		}
	}
	return &Node{kind: nodeGroup, fields: append([]Field(nil), fields...)}, nil
}

// NewArray declares count repetitions of elem, element i offset by i*step
// bytes. This models repeated hardware units such as per-channel blocks.
func NewArray(count int, step uint32, elem *Node) (*Node, error) {
	if count <= 0 {
		return nil, schemaErr(fmt.Sprintf("array count %d is not positive", count))
	}
	if step%WordSize != 0 {
		return nil, schemaErr(fmt.Sprintf("array step 0x%x is not word aligned", step))
	}
	if elem == nil {
		return nil, schemaErr("array has no element schema")
	}
	return &Node{kind: nodeArray, elem: elem, count: count, step: step}, nil
}

// MustLeaf is NewLeaf for static declarations; it panics on invalid input.
func MustLeaf(r Register) *Node {
	n, err := NewLeaf(r)
	if err != nil {
		panic(err)
	}
	return n
}

// MustGroup is NewGroup for static declarations; it panics on invalid input.
func MustGroup(fields ...Field) *Node {
	n, err := NewGroup(fields...)
	if err != nil {
		panic(err)
	}
	return n
}

// MustArray is NewArray for static declarations; it panics on invalid input.
func MustArray(count int, step uint32, elem *Node) *Node {
	n, err := NewArray(count, step, elem)
	if err != nil {
		panic(err)
	}
	return n
}

// IsLeaf reports whether the node is a single register.
func (n *Node) IsLeaf() bool { return n.kind == nodeLeaf }

// Register returns the leaf's register descriptor. The second return is
// false for groups and arrays.
func (n *Node) Register() (Register, bool) {
	if n.kind != nodeLeaf {
		return Register{}, false
	}
	return n.reg, true
}

// Fields returns the group's children in declaration order, or nil for other
// kinds. Callers must not modify the returned slice.
func (n *Node) Fields() []Field {
	if n.kind != nodeGroup {
		return nil
	}
	return n.fields
}

// Elem returns the array's element schema, or nil for other kinds.
func (n *Node) Elem() *Node {
	if n.kind != nodeArray {
		return nil
	}
	return n.elem
}

// Step returns the per-element address step of an array, or 0.
func (n *Node) Step() uint32 {
	if n.kind != nodeArray {
		return 0
	}
	return n.step
}

// Len returns the number of direct children: the element count for arrays,
// the field count for groups, and 0 for leaves.
func (n *Node) Len() int {
	switch n.kind {
	case nodeArray:
		return n.count
	case nodeGroup:
		return len(n.fields)
	default:
		return 0
	}
}

// At resolves a dotted path to the subtree at that position. Path segments
// name group fields; numeric segments index arrays. The returned subtree is
// rebased so that its leaf addresses include the array offsets accumulated
// along the path; it shares no state with the receiver when rebasing was
// needed. The empty path returns the receiver.
func (n *Node) At(path string) (*Node, error) {
	if path == "" {
		return n, nil
	}
	cur := n
	var offset uint32
	for _, seg := range strings.Split(path, ".") {
		switch cur.kind {
		case nodeGroup:
			next := (*Node)(nil)
			for _, f := range cur.fields {
				if f.Name == seg {
					next = f.Node
					break
				}
			}
			if next == nil {
				return nil, fmt.Errorf("reg: field %q in path %q: %w", seg, path, ErrNotFound)
			}
			cur = next
		case nodeArray:
			i, err := strconv.Atoi(seg)
			if err != nil {
				return nil, fmt.Errorf("reg: array index %q in path %q: %w", seg, path, ErrNotFound)
			}
			if i < 0 || i >= cur.count {
				return nil, fmt.Errorf("reg: index %d out of range [0,%d) in path %q: %w",
					i, cur.count, path, ErrNotFound)
			}
			offset += uint32(i) * cur.step
			cur = cur.elem
		default:
			return nil, fmt.Errorf("reg: %q descends below leaf in path %q: %w", seg, path, ErrNotFound)
		}
	}
	return rebase(cur, offset), nil
}

// Find resolves a dotted path to the effective register at that position,
// with array offsets applied.
func (n *Node) Find(path string) (Register, error) {
	sub, err := n.At(path)
	if err != nil {
		return Register{}, err
	}
	r, ok := sub.Register()
	if !ok {
		return Register{}, fmt.Errorf("reg: %q is not a register: %w", path, ErrNotFound)
	}
	return r, nil
}

// rebase returns n with delta added to every leaf address. For delta 0 the
// receiver is returned unchanged; otherwise a fresh tree is built, keeping
// the original immutable.
func rebase(n *Node, delta uint32) *Node {
	if delta == 0 {
		return n
	}
	switch n.kind {
	case nodeLeaf:
		r := n.reg
		r.Addr += delta
		return &Node{kind: nodeLeaf, reg: r}
	case nodeGroup:
		fields := make([]Field, len(n.fields))
		for i, f := range n.fields {
			fields[i] = Field{Name: f.Name, Node: rebase(f.Node, delta)}
		}
		return &Node{kind: nodeGroup, fields: fields}
	default:
		return &Node{kind: nodeArray, elem: rebase(n.elem, delta), count: n.count, step: n.step}
	}
}
