//go:build unix

package devmem

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open maps length bytes of the file at path and serves them as device
// addresses [base, base+length). The mapping is shared and writable; writes
// are synced to the backing file.
func Open(path string, base uint32, length int) (*Device, error) {
	if length <= 0 || length%4 != 0 {
		return nil, fmt.Errorf("devmem: window length %d is not a positive number of words", length)
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close() // safe before return; the mapping keeps pages alive

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() < int64(length) {
		return nil, fmt.Errorf("devmem: %s is %d bytes, window needs %d", path, info.Size(), length)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("devmem: mmap %s: %w", path, err)
	}
	d := &Device{
		base:     base,
		data:     data,
		writable: true,
	}
	d.sync = func() error {
		return unix.Msync(data, unix.MS_SYNC)
	}
	d.cleanup = func() error {
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Double unmap is a no-op for callers.
			return nil
		}
		return err
	}
	return d, nil
}
