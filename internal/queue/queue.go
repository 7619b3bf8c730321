package queue

// Queue is an ordered list of pending filenames with a rotating cursor.
// It is not safe for concurrent use; the workflow manager serializes all
// access through its single-flight cycle guard.
type Queue struct {
	items  []string
	cursor int
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Reload replaces the queue contents wholesale and resets the cursor.
// Duplicate names are dropped, keeping the first occurrence so insertion
// order still matches the directory listing.
func (q *Queue) Reload(items []string) {
	seen := make(map[string]struct{}, len(items))
	next := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		next = append(next, item)
	}
	q.items = next
	q.cursor = 0
}

// Next returns the filename at the cursor position, or false when the queue
// is empty.
func (q *Queue) Next() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	return q.items[q.cursor], true
}

// Consume removes the entry at the cursor position. It is called after every
// publish attempt, successful or not.
func (q *Queue) Consume() {
	q.Remove(q.cursor)
}

// Remove deletes the entry at index i. Out-of-range indexes are ignored.
// Afterwards the cursor is 0 when the queue is empty, otherwise it wraps
// modulo the new length.
func (q *Queue) Remove(i int) {
	if i < 0 || i >= len(q.items) {
		return
	}
	q.items = append(q.items[:i], q.items[i+1:]...)
	if len(q.items) == 0 {
		q.cursor = 0
		return
	}
	q.cursor %= len(q.items)
}

// IsEmpty reports whether the queue has no entries.
func (q *Queue) IsEmpty() bool {
	return len(q.items) == 0
}

// Len returns the number of pending entries.
func (q *Queue) Len() int {
	return len(q.items)
}

// Cursor returns the current cursor position.
func (q *Queue) Cursor() int {
	return q.cursor
}

// Items returns a copy of the pending entries in queue order.
func (q *Queue) Items() []string {
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}
