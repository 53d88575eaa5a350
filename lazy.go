package lazyvec

// Cell holds at most one value of type T under one fixed root key, with a
// handle-local cache so repeated reads after the first avoid touching the
// backend. Cache consistency holds for operations going through the same
// handle; writes made behind a handle's back (another process, or raw bucket
// access) require Invalidate.
type Cell[T any] struct {
	root   Key
	cached bool
	absent bool
	value  T
}

// NewCell returns a handle for the cell at root. The backend is not touched
// until the first Get or Set.
func NewCell[T any](root Key) *Cell[T] {
	return &Cell[T]{root: root}
}

func (c *Cell[T]) Key() Key { return c.root }

// Get returns the stored value, or ok == false if the cell was never written.
// Get never writes to the backend; the first read through this handle
// populates the cache.
func (c *Cell[T]) Get(txish Txish) (value T, ok bool) {
	if c.cached {
		return c.value, !c.absent
	}
	tx := txish.DBTx()
	var kb [cellKeyLen]byte
	raw := tx.dataBucket().Get(appendCellKey(kb[:0], c.root))
	if raw == nil {
		var zero T
		c.value, c.cached, c.absent = zero, true, true
		return zero, false
	}
	var v T
	if err := decodeValue(raw, &v); err != nil {
		panic(rootErrf(c.root, errCorruptedWrap(err), "cell decode"))
	}
	c.value, c.cached, c.absent = v, true, false
	return v, true
}

// Set durably overwrites the value and unconditionally updates the cache.
func (c *Cell[T]) Set(txish Txish, value T) {
	tx := txish.DBTx()
	err := tx.dataBucket().Put(tx.cellKey(c.root), tx.encodeValue(value))
	if err != nil {
		panic(rootErrf(c.root, err, "cell put"))
	}
	c.value, c.cached, c.absent = value, true, false
}

// Invalidate drops the cache, forcing the next Get to re-read the backend.
// Call it after abandoning a write transaction that went through this handle,
// or when another process may have written the same key.
func (c *Cell[T]) Invalidate() {
	var zero T
	c.value, c.cached, c.absent = zero, false, false
}
