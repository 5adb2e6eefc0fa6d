package wordenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWords(t *testing.T) {
	b := []byte{
		0x78, 0x56, 0x34, 0x12,
		0xef, 0xbe, 0xad, 0xde,
	}
	words, err := Words(b)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x12345678, 0xdeadbeef}, words)

	_, err = Words(b[:5])
	assert.Error(t, err, "ragged input")

	empty, err := Words(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBytesRoundTrip(t *testing.T) {
	words := []uint32{0, 1, 0xffffffff, 0x80000001}
	got, err := Words(Bytes(words))
	require.NoError(t, err)
	assert.Equal(t, words, got)
}

func TestU32(t *testing.T) {
	b := make([]byte, 4)
	PutU32(b, 0xcafebabe)
	assert.Equal(t, []byte{0xbe, 0xba, 0xfe, 0xca}, b)
	assert.Equal(t, uint32(0xcafebabe), U32(b))
}
