package generic

import "github.com/rotisserie/eris"

// ErrPoolFull is returned by Put when the pool already holds its full capacity.
var ErrPoolFull = eris.New("pool is full")

// Pool is a fixed-capacity pool of pre-allocated values. Get hands values out
// in the order they were put back (oldest first), so the first free instance
// is always reused first.
type Pool[T any] struct {
	items    []T
	head     int
	count    int
	capacity int
}

// NewPool creates an empty pool able to hold capacity values.
func NewPool[T any](capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool[T]{
		items:    make([]T, capacity),
		capacity: capacity,
	}
}

// NewHotPool creates a pool and fills it with size generated values.
func NewHotPool[T any](generate func(i int) T, size int) *Pool[T] {
	p := NewPool[T](size)
	for i := 0; i < size; i++ {
		_ = p.Put(generate(i))
	}
	return p
}

// Get removes and returns the oldest free value. The second result is false
// when the pool is exhausted.
func (p *Pool[T]) Get() (T, bool) {
	var zero T
	if p.count == 0 {
		return zero, false
	}
	value := p.items[p.head]
	p.items[p.head] = zero
	p.head = (p.head + 1) % p.capacity
	p.count--
	return value, true
}

// Put returns a value to the pool.
func (p *Pool[T]) Put(value T) error {
	if p.count == p.capacity {
		return ErrPoolFull
	}
	p.items[(p.head+p.count)%p.capacity] = value
	p.count++
	return nil
}

// Each calls fn for every free value, oldest first, without removing them.
func (p *Pool[T]) Each(fn func(T)) {
	for i := 0; i < p.count; i++ {
		fn(p.items[(p.head+i)%p.capacity])
	}
}

// Len returns the number of free values.
func (p *Pool[T]) Len() int { return p.count }

// Cap returns the fixed capacity.
func (p *Pool[T]) Cap() int { return p.capacity }

// InUse returns how many values are currently handed out.
func (p *Pool[T]) InUse() int { return p.capacity - p.count }
