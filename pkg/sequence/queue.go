package sequence

// Queue is an unbounded FIFO queue backed by a growable ring buffer.
type Queue[T any] struct {
	items []T
	head  int
	count int
}

func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue[T]{items: make([]T, capacity)}
}

func (q *Queue[T]) Enqueue(value T) {
	if q.count == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.count)%len(q.items)] = value
	q.count++
}

func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	value := q.items[q.head]
	q.items[q.head] = zero // avoid memory leak
	q.head = (q.head + 1) % len(q.items)
	q.count--
	return value, true
}

func (q *Queue[T]) Peek() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

// Drain dequeues every queued value in order and passes it to fn. Values
// enqueued by fn itself are drained in the same call.
func (q *Queue[T]) Drain(fn func(T)) int {
	n := 0
	for {
		value, ok := q.Dequeue()
		if !ok {
			return n
		}
		fn(value)
		n++
	}
}

// Each visits queued values in order without removing them.
func (q *Queue[T]) Each(fn func(T)) {
	for i := 0; i < q.count; i++ {
		fn(q.items[(q.head+i)%len(q.items)])
	}
}

func (q *Queue[T]) Len() int {
	return q.count
}

func (q *Queue[T]) IsEmpty() bool {
	return q.count == 0
}

func (q *Queue[T]) Clear() {
	var zero T
	for i := range q.items {
		q.items[i] = zero
	}
	q.head = 0
	q.count = 0
}

func (q *Queue[T]) grow() {
	next := make([]T, len(q.items)*2)
	for i := 0; i < q.count; i++ {
		next[i] = q.items[(q.head+i)%len(q.items)]
	}
	q.items = next
	q.head = 0
}
