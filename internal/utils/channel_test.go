package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplaceLatest(t *testing.T) {
	ch := make(chan int, 1)

	ReplaceLatest(ch, 1)
	ReplaceLatest(ch, 2)
	ReplaceLatest(ch, 3)

	require.Equal(t, 3, <-ch)
	select {
	case v := <-ch:
		t.Fatalf("unexpected value %d", v)
	default:
	}
}

func TestMapLatest(t *testing.T) {
	in := make(chan int)
	out := MapLatest(in, func(v int) string {
		return string(rune('a' + v))
	})

	in <- 0
	require.Equal(t, "a", <-out)
	in <- 2
	require.Equal(t, "c", <-out)

	close(in)
	_, ok := <-out
	require.False(t, ok)
}
