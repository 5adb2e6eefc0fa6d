//go:build unix

package devmem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmoureaux/addresstable/transport"
)

func newImageFile(t *testing.T, words int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "window.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, words*4), 0o644))
	return path
}

func TestDeviceReadWrite(t *testing.T) {
	path := newImageFile(t, 4)

	d, err := Open(path, 0x1000, 16)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.Write(0x1004, []uint32{0xdeadbeef, 0x12345678}))

	got := make([]uint32, 2)
	require.NoError(t, d.Read(0x1004, got))
	assert.Equal(t, []uint32{0xdeadbeef, 0x12345678}, got)

	// The write reached the backing file, little-endian.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xef, 0xbe, 0xad, 0xde}, data[4:8])
}

func TestDeviceWindowBounds(t *testing.T) {
	path := newImageFile(t, 4)

	d, err := Open(path, 0x1000, 16)
	require.NoError(t, err)
	defer d.Close()

	one := make([]uint32, 1)

	err = d.Read(0x0ffc, one)
	assert.ErrorIs(t, err, transport.ErrUnmapped, "below window")

	err = d.Read(0x1010, one)
	assert.ErrorIs(t, err, transport.ErrUnmapped, "past window end")

	err = d.Read(0x100c, make([]uint32, 2))
	assert.ErrorIs(t, err, transport.ErrUnmapped, "block crosses window end")

	err = d.Read(0x1002, one)
	assert.ErrorIs(t, err, transport.ErrUnaligned)
}

func TestDeviceOpenErrors(t *testing.T) {
	path := newImageFile(t, 2)

	_, err := Open(path, 0, 16)
	assert.Error(t, err, "file smaller than window")

	_, err = Open(path, 0, 6)
	assert.Error(t, err, "ragged window length")

	_, err = Open(filepath.Join(t.TempDir(), "missing"), 0, 16)
	assert.Error(t, err)
}

func TestDeviceClose(t *testing.T) {
	path := newImageFile(t, 4)

	d, err := Open(path, 0, 16)
	require.NoError(t, err)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close(), "double close is a no-op")

	assert.Error(t, d.Read(0, make([]uint32, 1)))
}
