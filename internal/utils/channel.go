package utils

// ReplaceLatest puts v on ch, discarding any value still waiting there.
// ch must be buffered and the caller must be its only writer.
func ReplaceLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}

		select {
		case <-ch:
		default:
		}
	}
}

// MapLatest applies fn to every value read from in and forwards the result
// with ReplaceLatest semantics. The returned channel closes when in closes.
func MapLatest[T, U any](in <-chan T, fn func(T) U) <-chan U {
	out := make(chan U, 1)
	go func() {
		defer close(out)
		for v := range in {
			ReplaceLatest(out, fn(v))
		}
	}()
	return out
}
