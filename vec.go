package lazyvec

import "math"

// MaxVecLen is the maximum number of elements a Vec can hold.
const MaxVecLen = math.MaxUint32

// Vec is a vector of values stored element-per-key: the length lives in a
// Cell at the root key, and element N lives in a Mapping slot under the key
// derived from (root, N). Reading or writing a single element therefore costs
// O(1) regardless of how many elements the vector holds, unlike a vector
// msgpacked wholesale under one key, whose every access decodes everything
// and whose capacity is capped by the value size limit.
//
// The price is that iteration is not provided; a Vec is meant for collections
// too large to walk anyway.
//
// A Vec handle owns no data. Constructing one is free, and two handles with
// the same root key (in this process or a later one) alias the same persisted
// vector. The length is cached per handle; see Invalidate.
type Vec[V any] struct {
	root  Key
	len   *Cell[uint32]
	items *Mapping[V]
}

// NewVec returns a handle for the vector at root. The backend is not touched;
// any previously written length is discovered lazily on first use.
func NewVec[V any](root Key) *Vec[V] {
	return &Vec[V]{
		root:  root,
		len:   NewCell[uint32](root),
		items: NewMapping[V](root),
	}
}

func (v *Vec[V]) Key() Key { return v.root }

// Len returns the number of elements in the vector. The length is cached;
// subsequent calls (without writing through this handle) won't trigger
// additional storage reads. Len never writes to the backend.
func (v *Vec[V]) Len(txish Txish) uint32 {
	n, ok := v.len.Get(txish)
	if !ok {
		return 0
	}
	return n
}

// IsEmpty returns true if the vector contains no elements.
func (v *Vec[V]) IsEmpty(txish Txish) bool {
	return v.Len(txish) == 0
}

// setLen is the single choke point for length mutation: every change goes
// through the cell's write-through Set, keeping the cache and the backend in
// agreement after every mutating call.
func (v *Vec[V]) setLen(txish Txish, newLen uint32) {
	v.len.Set(txish, newLen)
}

// Push appends an element to the back of the vector.
//
// Panics with ErrCapacity if the vector already holds MaxVecLen elements,
// with ErrValueTooLarge if the encoded value exceeds the size limit, and with
// ErrCorrupted if a value was already present at the new slot (the persisted
// state violated the length invariant before this call).
func (v *Vec[V]) Push(txish Txish, value V) {
	slot := v.Len(txish)
	if slot == MaxVecLen {
		panic(rootErrf(v.root, ErrCapacity, "push"))
	}
	v.setLen(txish, slot+1)

	if _, existed := v.items.Insert(txish, slot, value); existed {
		panic(slotErrf(v.root, slot, ErrCorrupted, "push: slot already occupied"))
	}
}

// Pop removes and returns the last element. ok is false when the vector is
// empty; that is an ordinary outcome, not an error.
//
// Panics with ErrCorrupted if the recorded length is nonzero but the last
// slot holds no value: unlike popping an empty vector, that means the
// persisted state is broken.
func (v *Vec[V]) Pop(txish Txish) (value V, ok bool) {
	n := v.Len(txish)
	if n == 0 {
		return value, false
	}
	slot := n - 1
	v.setLen(txish, slot)

	value, ok = v.items.Take(txish, slot)
	if !ok {
		panic(slotErrf(v.root, slot, ErrCorrupted, "pop: no value below length %d", n))
	}
	return value, true
}

// Get returns the element at index. A missing value reads the same whether
// index is beyond the length or the slot is abnormally empty.
func (v *Vec[V]) Get(txish Txish, index uint32) (V, bool) {
	return v.items.Get(txish, index)
}

// Set overwrites the element at index; the length does not change. Only Push
// grows the vector: Set panics with ErrOutOfRange if index >= Len, before
// touching any state.
func (v *Vec[V]) Set(txish Txish, index uint32, value V) {
	if n := v.Len(txish); index >= n {
		panic(slotErrf(v.root, index, ErrOutOfRange, "set: len %d", n))
	}
	v.items.Insert(txish, index, value)
}

// Invalidate drops the cached length, forcing the next Len to re-read the
// backend. Call it after abandoning a write transaction that mutated this
// handle, or when another process may have written the same root key.
func (v *Vec[V]) Invalidate() {
	v.len.Invalidate()
}
