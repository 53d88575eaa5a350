package lazyvec

import "testing"

func TestCell_DefaultAbsent(t *testing.T) {
	db := setupMem(t)
	cell := NewCell[string](KeyOf("config"))

	db.Read(func(tx *Tx) {
		_, ok := cell.Get(tx)
		deepEqual(t, ok, false)
	})
}

func TestCell_SetAndGetWork(t *testing.T) {
	db := setupMem(t)
	cell := NewCell[string](KeyOf("config"))

	db.Write(func(tx *Tx) {
		cell.Set(tx, "v1")
		v, ok := cell.Get(tx)
		deepEqual(t, ok, true)
		deepEqual(t, v, "v1")

		cell.Set(tx, "v2")
		v, _ = cell.Get(tx)
		deepEqual(t, v, "v2")
	})

	fresh := NewCell[string](KeyOf("config"))
	db.Read(func(tx *Tx) {
		v, ok := fresh.Get(tx)
		deepEqual(t, ok, true)
		deepEqual(t, v, "v2")
	})
}

func TestCell_GetNeverWrites(t *testing.T) {
	db := setupMem(t)
	cell := NewCell[int](KeyOf("counter"))

	db.Read(func(tx *Tx) {
		_, _ = cell.Get(tx)
	})
	db.Read(func(tx *Tx) {
		deepEqual(t, tx.dataBucket().KeyCount(), 0)
	})
}

func TestCell_CachesReads(t *testing.T) {
	db := setupMem(t)
	root := KeyOf("counter")

	writer := NewCell[int](root)
	db.Write(func(tx *Tx) { writer.Set(tx, 1) })

	reader := NewCell[int](root)
	db.Read(func(tx *Tx) {
		v, _ := reader.Get(tx)
		deepEqual(t, v, 1)
	})

	// A write behind the reader's back is invisible until Invalidate.
	db.Write(func(tx *Tx) { writer.Set(tx, 2) })
	db.Read(func(tx *Tx) {
		v, _ := reader.Get(tx)
		deepEqual(t, v, 1)
	})

	reader.Invalidate()
	db.Read(func(tx *Tx) {
		v, _ := reader.Get(tx)
		deepEqual(t, v, 2)
	})
}

func TestCell_CachesAbsence(t *testing.T) {
	db := setupMem(t)
	root := KeyOf("counter")

	reader := NewCell[int](root)
	db.Read(func(tx *Tx) {
		_, ok := reader.Get(tx)
		deepEqual(t, ok, false)
	})

	other := NewCell[int](root)
	db.Write(func(tx *Tx) { other.Set(tx, 5) })

	db.Read(func(tx *Tx) {
		_, ok := reader.Get(tx)
		deepEqual(t, ok, false)
	})
	reader.Invalidate()
	db.Read(func(tx *Tx) {
		v, ok := reader.Get(tx)
		deepEqual(t, ok, true)
		deepEqual(t, v, 5)
	})
}
