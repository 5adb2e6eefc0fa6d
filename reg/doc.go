// Package reg models hierarchical hardware register maps.
//
// A register is a named bitfield inside a 32-bit device word, identified by a
// byte address, a contiguous bit mask and read/write permissions. Register
// maps are declared once as an immutable schema tree ([Node]) of leaf
// registers, groups of named fields and fixed-size arrays of repeated blocks.
//
// The same declared topology can be reinterpreted for different purposes with
// [Transform]: given a per-leaf [Generator], it produces an isomorphic
// [Tree] whose leaves hold the generator's outputs. The built-in generators
// cover live device access ([Device.Map]), leaf counting ([Node.NumLeaves]),
// address collection ([CollectAddresses]) and sequential index assignment
// ([IndexGenerator]). Because every view is derived from the one schema by
// the one traversal, views can never drift out of sync with each other.
//
// Actual device memory access goes through the transport package; this
// package never touches raw memory itself.
package reg
