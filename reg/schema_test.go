package reg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rwReg(addr uint32, mask uint32) Register {
	return Register{Addr: addr, Mask: mask, CanRead: true, CanWrite: true}
}

// testMap builds the map used throughout the schema and transform tests:
// two OH blocks 0x100 apart, each with a control word and four 4-byte-spaced
// channel registers.
func testMap(t *testing.T) *Node {
	t.Helper()
	channel, err := NewLeaf(rwReg(0x1010, 0x0000000f))
	require.NoError(t, err)
	oh, err := NewGroup(
		F("CONTROL", MustLeaf(rwReg(0x1000, FullMask))),
		F("CHAN", MustArray(4, 0x4, channel)),
	)
	require.NoError(t, err)
	root, err := NewGroup(
		F("OH", MustArray(2, 0x100, oh)),
	)
	require.NoError(t, err)
	return root
}

func TestNewLeafValidates(t *testing.T) {
	_, err := NewLeaf(Register{Addr: 0x1000, Mask: 0x5, CanRead: true})
	require.Error(t, err)

	var typed *Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, ErrKindSchema, typed.Kind)
}

func TestNewGroupErrors(t *testing.T) {
	leaf := MustLeaf(rwReg(0x0, FullMask))

	_, err := NewGroup()
	assert.Error(t, err, "empty group")

	_, err = NewGroup(F("", leaf))
	assert.Error(t, err, "empty name")

	_, err = NewGroup(F("A.B", leaf))
	assert.Error(t, err, "dot in name")

	_, err = NewGroup(F("42", leaf))
	assert.Error(t, err, "numeric name")

	_, err = NewGroup(F("A", leaf), F("A", leaf))
	assert.Error(t, err, "duplicate name")

	_, err = NewGroup(F("A", nil))
	assert.Error(t, err, "nil node")
}

func TestNewArrayErrors(t *testing.T) {
	leaf := MustLeaf(rwReg(0x0, FullMask))

	_, err := NewArray(0, 4, leaf)
	assert.Error(t, err, "zero count")

	_, err = NewArray(-1, 4, leaf)
	assert.Error(t, err, "negative count")

	_, err = NewArray(2, 2, leaf)
	assert.Error(t, err, "unaligned step")

	_, err = NewArray(2, 4, nil)
	assert.Error(t, err, "nil element")
}

func TestMustPanics(t *testing.T) {
	assert.Panics(t, func() { MustLeaf(Register{}) })
	assert.Panics(t, func() { MustGroup() })
	assert.Panics(t, func() { MustArray(0, 0, nil) })
}

func TestNodeIntrospection(t *testing.T) {
	root := testMap(t)

	assert.False(t, root.IsLeaf())
	assert.Equal(t, 1, root.Len())
	require.Len(t, root.Fields(), 1)
	assert.Equal(t, "OH", root.Fields()[0].Name)

	arr := root.Fields()[0].Node
	assert.Equal(t, 2, arr.Len())
	assert.Equal(t, uint32(0x100), arr.Step())
	require.NotNil(t, arr.Elem())

	_, ok := root.Register()
	assert.False(t, ok)

	leaf, err := root.At("OH.0.CONTROL")
	require.NoError(t, err)
	r, ok := leaf.Register()
	require.True(t, ok)
	assert.Equal(t, uint32(0x1000), r.Addr)
}

func TestNodeAtAppliesArrayOffsets(t *testing.T) {
	root := testMap(t)

	tests := []struct {
		path string
		addr uint32
	}{
		{"OH.0.CONTROL", 0x1000},
		{"OH.1.CONTROL", 0x1100},
		{"OH.0.CHAN.0", 0x1010},
		{"OH.0.CHAN.3", 0x101c},
		{"OH.1.CHAN.2", 0x1118},
	}
	for _, tt := range tests {
		r, err := root.Find(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.addr, r.Addr, tt.path)
	}
}

func TestNodeAtSubtree(t *testing.T) {
	root := testMap(t)

	// A rebased subtree reports addresses with the path offsets applied.
	oh1, err := root.At("OH.1")
	require.NoError(t, err)
	assert.Equal(t, 5, oh1.NumLeaves())
	assert.Equal(t, []uint32{0x1100, 0x1110, 0x1114, 0x1118, 0x111c}, Addresses(oh1))

	// Empty path returns the node itself.
	same, err := root.At("")
	require.NoError(t, err)
	assert.Same(t, root, same)

	// Index 0 requires no rebasing and may share the original nodes.
	oh0, err := root.At("OH.0")
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x1000, 0x1010, 0x1014, 0x1018, 0x101c}, Addresses(oh0))
}

func TestNodeAtNotFound(t *testing.T) {
	root := testMap(t)

	tests := []string{
		"BAD",            // unknown field
		"OH.2.CONTROL",   // index out of range
		"OH.x.CONTROL",   // not an index
		"OH.0.CONTROL.R", // descends below a leaf
		"OH.-1.CONTROL",
	}
	for _, path := range tests {
		_, err := root.At(path)
		require.Error(t, err, path)
		assert.ErrorIs(t, err, ErrNotFound, path)
	}

	_, err := root.Find("OH.0")
	require.Error(t, err, "Find on a non-leaf")
	assert.ErrorIs(t, err, ErrNotFound)
}
