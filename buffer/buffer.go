package buffer

import (
	"unsafe"

	"github.com/zeebo/errs/v2"

	"github.com/stdex/stdex/sizeof"
)

const (
	ErrInvalidArgument = errs.Tag("invalid argument")
	ErrOutOfRange      = errs.Tag("out of range")
)

// T owns a contiguous block of V with the live prefix tracked
// separately from the allocated capacity. Growth is exact: every
// operation that needs more room reallocates to precisely the size it
// requires, so capacity never changes behind the caller's back. The
// zero value is an empty buffer owning no storage.
type T[V any] struct {
	_ [0]func() // no equality

	data []V // len(data) is the capacity, every slot allocated
	size int
}

func New[V any](capacity int) (t T[V]) {
	if capacity > 0 {
		t.data = make([]V, capacity)
	}
	return
}

func Of[V any](vs ...V) T[V] { return From(vs) }

func From[V any](vs []V) T[V] { return FromCap(vs, len(vs)) }

// FromCap allocates max(len(vs), capacity) slots and copies
// min(len(vs), capacity) elements: a source longer than the requested
// capacity is truncated even though the full allocation is made.
func FromCap[V any](vs []V, capacity int) (t T[V]) {
	t.AssignCap(vs, capacity)
	return
}

func (t *T[V]) Len() int    { return t.size }
func (t *T[V]) Cap() int    { return len(t.data) }
func (t *T[V]) Empty() bool { return t.size == 0 }

// Prefix is a mutable view of the live elements. It goes stale after
// any operation that reallocates or clears the buffer.
func (t *T[V]) Prefix() []V { return t.data[:t.size] }

func (t *T[V]) Size() uint64 {
	return 0 +
		/* data */ sizeof.Slice(t.data) +
		/* size */ 8 +
		0
}

func (t *T[V]) Assign(vs []V) { t.AssignCap(vs, len(vs)) }

func (t *T[V]) AssignCap(vs []V, capacity int) {
	size := min(len(vs), capacity)
	capacity = max(len(vs), capacity)

	// the replacement block is complete before the old one is dropped,
	// so vs may alias t.data
	var data []V
	if capacity > 0 {
		data = make([]V, capacity)
		copy(data, vs[:size])
	}

	t.data = data
	t.size = size
}

// Set copies o's live elements and capacity into t. Setting a buffer
// to itself does nothing.
func (t *T[V]) Set(o *T[V]) {
	if t != o {
		t.AssignCap(o.data[:o.size], len(o.data))
	}
}

// Clone deep-copies the buffer, capacity included.
func (t *T[V]) Clone() (c T[V]) {
	c.Set(t)
	return
}

// Take moves the owned block out of t, leaving t empty. The returned
// buffer is the sole owner of the block.
func (t *T[V]) Take() (o T[V]) {
	o.data, o.size = t.data, t.size
	t.data, t.size = nil, 0
	return
}

// Realloc resizes the block to exactly capacity, keeping up to
// capacity live elements. Realloc(0) drops the storage entirely.
func (t *T[V]) Realloc(capacity int) {
	if capacity == len(t.data) {
		return
	}

	size := min(t.size, capacity)

	var data []V
	if capacity > 0 {
		data = make([]V, capacity)
		copy(data, t.data[:size])
	}

	t.data = data
	t.size = size
}

func (t *T[V]) Shrink() { t.Realloc(t.size) }

func (t *T[V]) Clear() {
	t.data = nil
	t.size = 0
}

func (t *T[V]) Swap(o *T[V]) {
	t.data, o.data = o.data, t.data
	t.size, o.size = o.size, t.size
}

func (t *T[V]) Append(vs ...V) { t.insert(vs, t.size) }

// AppendBuffer appends o's live elements. o is left as is, and may be
// t itself.
func (t *T[V]) AppendBuffer(o *T[V]) { t.insert(o.data[:o.size], t.size) }

// Insert places vs at position pos, shifting the elements at
// [pos, len) right to make room. pos outside [0, len] is an
// ErrInvalidArgument and leaves the buffer untouched.
func (t *T[V]) Insert(vs []V, pos int) error {
	if pos < 0 || pos > t.size {
		return ErrInvalidArgument.Errorf("insert position %d with size %d", pos, t.size)
	}
	t.insert(vs, pos)
	return nil
}

func (t *T[V]) insert(vs []V, pos int) {
	if len(vs) == 0 {
		return
	}

	if capacity := t.size + len(vs); capacity > len(t.data) {
		// reallocating: the old block stays intact until the new one
		// holds everything, so vs reading from t.data is fine
		data := make([]V, capacity)
		copy(data, t.data[:pos])
		copy(data[pos:], vs)
		copy(data[pos+len(vs):], t.data[pos:t.size])
		t.data = data
		t.size = capacity
		return
	}

	// in place: the shift below relocates [pos, size), so a source
	// aliasing the block past pos must be staged first
	if pos < t.size && overlaps(vs, t.data) {
		vs = append([]V(nil), vs...)
	}

	copy(t.data[pos+len(vs):t.size+len(vs)], t.data[pos:t.size])
	copy(t.data[pos:], vs)
	t.size += len(vs)
}

func overlaps[V any](a, b []V) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	w := unsafe.Sizeof(a[0])
	ap := uintptr(unsafe.Pointer(&a[0]))
	bp := uintptr(unsafe.Pointer(&b[0]))
	return ap < bp+uintptr(len(b))*w && bp < ap+uintptr(len(a))*w
}

// Acquire adopts block as the owned storage: len(block) becomes the
// live count and cap(block) the capacity. A nil or zero-length block
// is an ErrInvalidArgument. Whatever t owned before is dropped. The
// caller must not use block after a successful Acquire.
func (t *T[V]) Acquire(block []V) error {
	if len(block) == 0 {
		return ErrInvalidArgument.Errorf("acquire of an empty block")
	}
	t.data = block[:cap(block)]
	t.size = len(block)
	return nil
}

// Release hands the owned block to the caller and leaves t empty. The
// returned slice holds the live elements with the full allocation as
// its capacity, so Acquire on the result restores the exact state.
func (t *T[V]) Release() []V {
	data := t.data[:t.size]
	t.data = nil
	t.size = 0
	return data
}

// At is bounds-checked element access against the live count.
func (t *T[V]) At(i int) (*V, error) {
	if uint(i) >= uint(t.size) {
		return nil, ErrOutOfRange.Errorf("index %d with size %d", i, t.size)
	}
	return &t.data[i], nil
}

// Idx is At without the live-count check. Indexing past Len but under
// Cap reads an allocated but dead slot; the caller keeps the pieces.
func (t *T[V]) Idx(i int) *V { return &t.data[i] }

func (t *T[V]) First() (*V, error) { return t.At(0) }
func (t *T[V]) Last() (*V, error)  { return t.At(t.size - 1) }

// Equal reports element-wise equality of the live prefixes. Capacity
// does not participate.
func Equal[V comparable](a, b *T[V]) bool {
	if a.size != b.size {
		return false
	}
	for i, v := range a.data[:a.size] {
		if b.data[i] != v {
			return false
		}
	}
	return true
}
