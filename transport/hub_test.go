package transport

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDelegates(t *testing.T) {
	h := NewHub(NewMem(MemOptions{}))

	require.NoError(t, h.Write(0x1000, []uint32{42}))
	got := make([]uint32, 1)
	require.NoError(t, h.Read(0x1000, got))
	assert.Equal(t, uint32(42), got[0])
	require.NoError(t, h.Close())
}

// inFlightTransport fails the test if two operations ever overlap.
type inFlightTransport struct {
	t  *testing.T
	mu sync.Mutex
	n  int
}

func (f *inFlightTransport) enter() {
	f.mu.Lock()
	f.n++
	if f.n > 1 {
		f.t.Error("overlapping transport operations")
	}
	f.mu.Unlock()
}

func (f *inFlightTransport) leave() {
	f.mu.Lock()
	f.n--
	f.mu.Unlock()
}

func (f *inFlightTransport) Read(uint32, []uint32) error {
	f.enter()
	defer f.leave()
	return nil
}

func (f *inFlightTransport) Write(uint32, []uint32) error {
	f.enter()
	defer f.leave()
	return nil
}

func (f *inFlightTransport) Close() error { return nil }

func TestHubSerializes(t *testing.T) {
	h := NewHub(&inFlightTransport{t: t})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			buf := make([]uint32, 4)
			for i := 0; i < 100; i++ {
				_ = h.Write(uint32(g*0x100+i*4), buf)
				_ = h.Read(uint32(g*0x100+i*4), buf)
			}
		}(g)
	}
	wg.Wait()
}
