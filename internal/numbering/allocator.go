// Package numbering hands out song numbers.
package numbering

// DefaultFirstSongNumber is used when no first song number is configured.
const DefaultFirstSongNumber = 1000

// Allocator is a sequential song number counter. It is owned by a single
// pipeline and is not safe for concurrent use.
type Allocator struct {
	first int
	next  int
}

// NewAllocator creates an Allocator whose first Next call returns first.
func NewAllocator(first int) *Allocator {
	return &Allocator{first: first, next: first}
}

// Next returns the current number and advances the counter by one.
func (a *Allocator) Next() int {
	n := a.next
	a.next++
	return n
}

// Peek returns the number the next call to Next will return.
func (a *Allocator) Peek() int {
	return a.next
}

// First returns the number the allocator started from.
func (a *Allocator) First() int {
	return a.first
}

// Allocated returns how many numbers have been handed out.
func (a *Allocator) Allocated() int {
	return a.next - a.first
}
