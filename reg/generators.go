package reg

// The built-in generators. Each one is an ordinary [Generator] closure; they
// double as examples of how to write new ones.

// NumLeaves returns the total number of registers in the schema, independent
// of masks and permissions.
func (n *Node) NumLeaves() int {
	count := 0
	Transform(n, func(Register) struct{} {
		count++
		return struct{}{}
	})
	return count
}

// CollectAddresses appends every leaf's address to dst in traversal order.
// After a full walk len(*dst) has grown by exactly [Node.NumLeaves]. The
// accumulator is owned by the caller; concurrent walks into the same slice
// need external synchronization.
func CollectAddresses(n *Node, dst *[]uint32) {
	Transform(n, func(r Register) struct{} {
		*dst = append(*dst, r.Addr)
		return struct{}{}
	})
}

// Addresses returns every leaf address in traversal order.
func Addresses(n *Node) []uint32 {
	out := make([]uint32, 0, n.NumLeaves())
	CollectAddresses(n, &out)
	return out
}

// IndexGenerator returns a generator that assigns 0, 1, 2, ... in traversal
// order. Transforming a schema with it yields a stable per-register index,
// suitable as identity in lookup tables. Each call returns an independent
// counter.
func IndexGenerator() Generator[int] {
	next := 0
	return func(Register) int {
		i := next
		next++
		return i
	}
}
