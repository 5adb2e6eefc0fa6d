package main

import (
	"fmt"
	"os"

	"github.com/lmoureaux/addresstable/transport"
)

// loadImage reads a little-endian device memory image into an in-memory
// transport at the given base address. It returns the transport and the
// image size in bytes.
func loadImage(path string, base uint32) (*transport.Mem, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read image: %w", err)
	}
	mem := transport.NewMem(transport.MemOptions{})
	if err := mem.LoadBytes(base, data); err != nil {
		return nil, 0, fmt.Errorf("failed to load image: %w", err)
	}
	return mem, len(data), nil
}

// saveImage writes the transport contents back to the image file.
func saveImage(path string, mem *transport.Mem, base uint32, size int) error {
	data, err := mem.Bytes(base, size)
	if err != nil {
		return fmt.Errorf("failed to snapshot image: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}
