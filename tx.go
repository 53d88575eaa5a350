package lazyvec

import (
	"fmt"
	"runtime/debug"
)

type Txish interface {
	DBTx() *Tx
}

type Tx struct {
	db      *DB
	stx     storageTx
	managed bool

	keyBufs   [][]byte
	valueBufs [][]byte
}

func (db *DB) newTx(stx storageTx, managed bool) *Tx {
	return &Tx{
		db:      db,
		stx:     stx,
		managed: managed,
	}
}

// DBTx implements Txish
func (tx *Tx) DBTx() *Tx {
	return tx
}

func (tx *Tx) DB() *DB {
	return tx.db
}

func (tx *Tx) IsWritable() bool {
	return tx.stx.Writable()
}

// Tx runs f in a transaction, committing writable transactions when f
// succeeds. Panics inside f are captured and returned as errors (with the
// panic value reachable via errors.Is / errors.As), and roll the transaction
// back, so a failing multi-step mutation leaves no partial state behind.
func (db *DB) Tx(writable bool, f func(tx *Tx) error) error {
	stx, err := db.store.BeginTx(writable)
	if err != nil {
		return err
	}
	tx := db.newTx(stx, false)
	defer tx.Close()

	if writable {
		db.WriteCount.Add(1)
	} else {
		db.ReadCount.Add(1)
	}

	err = safelyCall(f, tx)
	if err != nil {
		return err
	}
	db.lastSize.Store(stx.Size())
	if writable {
		err = tx.Commit()
		if err != nil {
			return err
		}
		db.logff("lazyvec: tx committed")
	}
	return nil
}

type panicked struct {
	reason interface{}
	stack  string
}

func (p panicked) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", p.reason, p.stack)
}

func (p panicked) Unwrap() error {
	if err, ok := p.reason.(error); ok {
		return err
	}
	return nil
}

func safelyCall(fn func(*Tx) error, tx *Tx) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicked{p, string(debug.Stack())}
		}
	}()
	return fn(tx)
}

func (db *DB) BeginRead() *Tx {
	stx, err := db.store.BeginTx(false)
	if err != nil {
		panic(fmt.Errorf("failed to start reading: %w", err))
	}
	db.ReadCount.Add(1)
	return db.newTx(stx, false)
}

func (db *DB) Read(f func(tx *Tx)) {
	tx := db.BeginRead()
	defer tx.Close()
	f(tx)
}

func (db *DB) ReadErr(f func(tx *Tx) error) error {
	tx := db.BeginRead()
	defer tx.Close()
	return f(tx)
}

func (db *DB) Write(f func(tx *Tx)) {
	tx := db.BeginUpdate()
	defer tx.Close()
	f(tx)
	err := tx.Commit()
	if err != nil {
		panic(fmt.Errorf("commit: %w", err))
	}
}

func (db *DB) BeginUpdate() *Tx {
	stx, err := db.store.BeginTx(true)
	if err != nil {
		panic(fmt.Errorf("db.BeginTx(true) failed: %w", err))
	}
	db.WriteCount.Add(1)
	return db.newTx(stx, false)
}

func (tx *Tx) dataBucket() storageBucket {
	b := tx.stx.Bucket(dataBucketName)
	if b == nil {
		panic("data bucket missing")
	}
	return b
}

// Key and value buffers handed to the backend must stay valid until the
// transaction ends (a Bolt requirement), so they are pooled per transaction
// and released in Close.

func (tx *Tx) cellKey(root Key) []byte {
	key := appendCellKey(keyBytesPool.Get().([]byte)[:0], root)
	tx.addKeyBuf(key)
	return key
}

func (tx *Tx) slotKey(root Key, index uint32) []byte {
	key := appendSlotKey(keyBytesPool.Get().([]byte)[:0], root, index)
	tx.addKeyBuf(key)
	return key
}

func (tx *Tx) encodeValue(v any) []byte {
	buf := encodeValue(valueBytesPool.Get().([]byte)[:0], v, tx.db.maxValueSize)
	tx.addValueBuf(buf)
	return buf
}

func (tx *Tx) addKeyBuf(buf []byte) {
	if tx.keyBufs == nil {
		tx.keyBufs = arrayOfBytesPool.Get().([][]byte)
	}
	tx.keyBufs = append(tx.keyBufs, buf)
}

func (tx *Tx) addValueBuf(buf []byte) {
	if tx.valueBufs == nil {
		tx.valueBufs = arrayOfBytesPool.Get().([][]byte)
	}
	tx.valueBufs = append(tx.valueBufs, buf)
}

func (tx *Tx) Close() {
	if !tx.managed {
		// The only expected error from Rollback signals that Commit already ran,
		// which is the normal flow.
		err := tx.stx.Rollback()
		if err != nil {
			panic(err)
		}
	}
	tx.release()
}

func (tx *Tx) release() {
	if tx.keyBufs != nil {
		for i, buf := range tx.keyBufs {
			keyBytesPool.Put(buf[:0])
			tx.keyBufs[i] = nil
		}
		arrayOfBytesPool.Put(tx.keyBufs[:0])
		tx.keyBufs = nil
	}
	if tx.valueBufs != nil {
		for i, buf := range tx.valueBufs {
			valueBytesPool.Put(buf[:0])
			tx.valueBufs[i] = nil
		}
		arrayOfBytesPool.Put(tx.valueBufs[:0])
		tx.valueBufs = nil
	}
}

func (tx *Tx) Commit() error {
	return tx.stx.Commit()
}
