//go:build !unix

package devmem

import (
	"fmt"
	"os"
)

// Open reads the file into memory when mmap is not available. The resulting
// transport is read-only.
func Open(path string, base uint32, length int) (*Device, error) {
	if length <= 0 || length%4 != 0 {
		return nil, fmt.Errorf("devmem: window length %d is not a positive number of words", length)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < length {
		return nil, fmt.Errorf("devmem: %s is %d bytes, window needs %d", path, len(data), length)
	}
	return &Device{
		base: base,
		data: data[:length],
	}, nil
}
