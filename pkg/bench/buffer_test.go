package bench

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	buf := NewBuffer(1000, 7)
	require.Len(t, buf, 1000)
	for _, v := range buf {
		require.Equal(t, int32(7), v)
	}
}

func TestNewBufferZeroFill(t *testing.T) {
	buf := NewBuffer(16, 0)
	require.Len(t, buf, 16)
	for _, v := range buf {
		require.Zero(t, v)
	}
}

func TestNewBufferEmpty(t *testing.T) {
	require.Empty(t, NewBuffer(0, 1))
}
