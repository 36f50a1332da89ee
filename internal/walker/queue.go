package walker

import "sync"

// workQueue is a LIFO of directories waiting to be listed. It tracks how many
// workers are busy so that pop can tell "empty for now" from "walk finished":
// the walk is over once the queue is empty and no worker can push more work.
type workQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []string
	active int
}

func newWorkQueue() *workQueue {
	q := &workQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push adds all dirs under a single lock acquisition.
func (q *workQueue) push(dirs ...string) {
	if len(dirs) == 0 {
		return
	}

	q.mu.Lock()
	q.items = append(q.items, dirs...)
	q.mu.Unlock()

	if len(dirs) == 1 {
		q.cond.Signal()
	} else {
		q.cond.Broadcast()
	}
}

// pop blocks until a directory is available or the walk is finished.
// A successful pop must be paired with a call to done.
func (q *workQueue) pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if q.active == 0 {
			return "", false
		}
		q.cond.Wait()
	}

	last := len(q.items) - 1
	dir := q.items[last]
	q.items[last] = ""
	q.items = q.items[:last]
	q.active++
	return dir, true
}

// done marks the directory returned by the matching pop as fully processed.
func (q *workQueue) done() {
	q.mu.Lock()
	q.active--
	finished := q.active == 0 && len(q.items) == 0
	q.mu.Unlock()

	if finished {
		q.cond.Broadcast()
	}
}
