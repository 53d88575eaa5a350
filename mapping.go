package lazyvec

// Mapping associates a uint32 index with a value of type V, each under its
// own derived key (see enckey.go for the layout). Values are never cached
// handle-side, and iteration is deliberately not provided: a mapping is meant
// for collections too large or too numerous to walk.
type Mapping[V any] struct {
	root Key
}

func NewMapping[V any](root Key) *Mapping[V] {
	return &Mapping[V]{root: root}
}

func (m *Mapping[V]) Key() Key { return m.root }

// Get returns the value at index, or ok == false if the slot is empty.
func (m *Mapping[V]) Get(txish Txish, index uint32) (value V, ok bool) {
	tx := txish.DBTx()
	var kb [slotKeyLen]byte
	raw := tx.dataBucket().Get(appendSlotKey(kb[:0], m.root, index))
	if raw == nil {
		var zero V
		return zero, false
	}
	var v V
	if err := decodeValue(raw, &v); err != nil {
		panic(slotErrf(m.root, index, errCorruptedWrap(err), "slot decode"))
	}
	return v, true
}

// Contains reports whether a value is present at index, without decoding it.
func (m *Mapping[V]) Contains(txish Txish, index uint32) bool {
	tx := txish.DBTx()
	var kb [slotKeyLen]byte
	return tx.dataBucket().Get(appendSlotKey(kb[:0], m.root, index)) != nil
}

// Insert stores value at index and returns the previous value, if any.
func (m *Mapping[V]) Insert(txish Txish, index uint32, value V) (prev V, existed bool) {
	tx := txish.DBTx()
	b := tx.dataBucket()
	key := tx.slotKey(m.root, index)
	if raw := b.Get(key); raw != nil {
		if err := decodeValue(raw, &prev); err != nil {
			panic(slotErrf(m.root, index, errCorruptedWrap(err), "slot decode"))
		}
		existed = true
	}
	err := b.Put(key, tx.encodeValue(value))
	if err != nil {
		panic(slotErrf(m.root, index, err, "slot put"))
	}
	return
}

// Take removes and returns the value at index.
func (m *Mapping[V]) Take(txish Txish, index uint32) (value V, ok bool) {
	tx := txish.DBTx()
	b := tx.dataBucket()
	key := tx.slotKey(m.root, index)
	raw := b.Get(key)
	if raw == nil {
		var zero V
		return zero, false
	}
	var v V
	if err := decodeValue(raw, &v); err != nil {
		panic(slotErrf(m.root, index, errCorruptedWrap(err), "slot decode"))
	}
	if err := b.Delete(key); err != nil {
		panic(slotErrf(m.root, index, err, "slot delete"))
	}
	return v, true
}
