package mirror

import "sync"

// keyedQueue runs the jobs queued under one key one after another, in the
// order they were queued. Jobs under different keys run concurrently.
type keyedQueue struct {
	mu    sync.Mutex
	tails map[string]chan struct{}
}

func newKeyedQueue() *keyedQueue {
	return &keyedQueue{tails: make(map[string]chan struct{})}
}

// enqueue schedules job behind every job already queued for key and returns
// a channel that is closed once job has returned.
func (q *keyedQueue) enqueue(key string, job func()) <-chan struct{} {
	done := make(chan struct{})

	q.mu.Lock()
	prev := q.tails[key]
	q.tails[key] = done
	q.mu.Unlock()

	go func() {
		if prev != nil {
			<-prev
		}
		job()

		q.mu.Lock()
		if q.tails[key] == done {
			delete(q.tails, key)
		}
		q.mu.Unlock()
		close(done)
	}()

	return done
}

func (q *keyedQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tails)
}
