package reg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformShape(t *testing.T) {
	root := testMap(t)

	masks := Transform(root, func(r Register) uint32 { return r.Mask })

	// Same shape as the schema.
	assert.False(t, masks.IsLeaf())
	assert.Equal(t, 1, masks.Len())
	oh, ok := masks.Field("OH")
	require.True(t, ok)
	assert.Equal(t, 2, oh.Len())
	elem, ok := oh.Index(0)
	require.True(t, ok)
	control, ok := elem.Field("CONTROL")
	require.True(t, ok)
	assert.True(t, control.IsLeaf())
	assert.Equal(t, FullMask, control.Leaf())

	chan2, err := masks.Find("OH.1.CHAN.2")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0000000f), chan2.Leaf())
}

func TestTransformShapeInvariance(t *testing.T) {
	root := testMap(t)

	// Any two generators produce trees with identical leaf counts, equal to
	// the schema's own count.
	t1 := Transform(root, func(r Register) uint32 { return r.Addr })
	t2 := Transform(root, func(Register) string { return "" })

	assert.Equal(t, root.NumLeaves(), t1.NumLeaves())
	assert.Equal(t, t1.NumLeaves(), t2.NumLeaves())
	assert.Equal(t, 10, root.NumLeaves())
}

func TestTransformOrderStability(t *testing.T) {
	root := testMap(t)

	first := Addresses(root)
	second := Addresses(root)
	assert.Equal(t, first, second)

	// Declaration order: fields as declared, array elements 0..N-1.
	want := []uint32{
		0x1000, 0x1010, 0x1014, 0x1018, 0x101c, // OH[0]
		0x1100, 0x1110, 0x1114, 0x1118, 0x111c, // OH[1]
	}
	assert.Equal(t, want, first)
}

func TestTransformDoesNotMutateSource(t *testing.T) {
	root := testMap(t)
	before := Addresses(root)

	Transform(root, func(r Register) Register {
		r.Addr = 0xdeadbeef // changes only the copy handed to the generator
		return r
	})

	assert.Equal(t, before, Addresses(root))
}

func TestIndexGenerator(t *testing.T) {
	root := testMap(t)

	indexes := Transform(root, IndexGenerator())

	var got []int
	indexes.Each(func(i int) { got = append(got, i) })
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)

	// Each call returns an independent counter.
	again := Transform(root, IndexGenerator())
	first, err := again.Find("OH.0.CONTROL")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Leaf())
}

func TestCollectAddresses(t *testing.T) {
	root := testMap(t)

	var addrs []uint32
	CollectAddresses(root, &addrs)
	assert.Len(t, addrs, root.NumLeaves())

	// Appending continues an existing accumulator.
	CollectAddresses(root, &addrs)
	assert.Len(t, addrs, 2*root.NumLeaves())
	assert.Equal(t, addrs[:10], addrs[10:])
}

func TestTreeFindErrors(t *testing.T) {
	root := testMap(t)
	tree := Transform(root, IndexGenerator())

	for _, path := range []string{"BAD", "OH.2", "OH.x", "OH.0.CONTROL.R"} {
		_, err := tree.Find(path)
		require.Error(t, err, path)
		assert.ErrorIs(t, err, ErrNotFound, path)
	}

	sub, err := tree.Find("")
	require.NoError(t, err)
	assert.Same(t, tree, sub)
}

// The scenario from the component documentation: one OH group holding two
// identical sub-blocks with a 4-bit register each.
func TestTwoBlockScenario(t *testing.T) {
	block := MustGroup(
		F("REG", MustLeaf(rwReg(0x1000, 0x0000000f))),
	)
	root := MustGroup(
		F("OH", MustArray(2, 0x4, block)),
	)

	assert.Equal(t, 2, root.NumLeaves())
	assert.Equal(t, []uint32{0x1000, 0x1004}, Addresses(root))
}
