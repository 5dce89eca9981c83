package pool

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(SyncBufferDefaultSize)

	n, err := bb.Write([]byte("OggS"))
	require.NoError(t, err)
	require.Equal(t, 4, n)

	bb.MustWrite([]byte{0, 2})
	require.Equal(t, []byte{'O', 'g', 'g', 'S', 0, 2}, bb.Bytes())

	capBefore := bb.Cap()
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, capBefore, bb.Cap(), "Reset should keep capacity")
}

func TestByteBuffer_Discard(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []byte
	}{
		{"Zero", 0, []byte("xxOggS")},
		{"Negative", -1, []byte("xxOggS")},
		{"Prefix", 2, []byte("OggS")},
		{"All", 6, []byte{}},
		{"More than length", 100, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bb := NewByteBuffer(16)
			bb.MustWrite([]byte("xxOggS"))

			bb.Discard(tt.n)

			require.Equal(t, tt.want, bb.Bytes())
			require.Equal(t, 16, bb.Cap())
		})
	}
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("Sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(100)
		bb.Grow(50)
		assert.Equal(t, 100, bb.Cap())
	})

	t.Run("Small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(10)
		bb.MustWrite([]byte("0123456789"))

		bb.Grow(20)

		assert.Equal(t, 10+PageBufferDefaultSize, bb.Cap())
		assert.Equal(t, []byte("0123456789"), bb.Bytes())
	})

	t.Run("Large request", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(PageBufferDefaultSize * 2)
		assert.GreaterOrEqual(t, bb.Cap(), PageBufferDefaultSize*2)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("page"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)
	require.Equal(t, "page", out.String())

	_, err = bb.WriteTo(failingWriter{})
	require.Error(t, err)
}

func TestByteBufferPool(t *testing.T) {
	t.Run("Get returns empty buffer", func(t *testing.T) {
		p := NewByteBufferPool(64, 0)
		bb := p.Get()
		require.NotNil(t, bb)
		require.Equal(t, 0, bb.Len())

		bb.MustWrite([]byte("data"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("Put nil is ignored", func(t *testing.T) {
		p := NewByteBufferPool(64, 0)
		require.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("Oversized buffers are not reset", func(t *testing.T) {
		p := NewByteBufferPool(64, 128)
		bb := NewByteBuffer(1024)
		bb.MustWrite([]byte("kept"))

		p.Put(bb)

		require.Equal(t, 4, bb.Len())
	})

	t.Run("Default page pool", func(t *testing.T) {
		bb := GetPageBuffer()
		require.NotNil(t, bb)
		require.GreaterOrEqual(t, bb.Cap(), 0)
		bb.MustWrite([]byte("OggS"))
		PutPageBuffer(bb)
	})

	t.Run("Concurrent use", func(t *testing.T) {
		p := NewByteBufferPool(64, 0)
		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for range 100 {
					bb := p.Get()
					bb.MustWrite([]byte{byte(id)})
					p.Put(bb)
				}
			}(i)
		}
		wg.Wait()
	})
}
