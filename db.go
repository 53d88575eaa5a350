package lazyvec

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.etcd.io/bbolt"
)

const dataBucketName = "data"

type DB struct {
	store        storage
	logf         func(format string, args ...any)
	verbose      bool
	maxValueSize int

	lastSize   atomic.Int64
	ReadCount  atomic.Uint64
	WriteCount atomic.Uint64
}

type Options struct {
	Logf      func(format string, args ...any)
	Verbose   bool
	IsTesting bool
	MmapSize  int

	// MaxValueSize bounds a single encoded value (envelope included).
	// Zero means DefaultMaxValueSize; negative means unbounded.
	MaxValueSize int
}

// Open opens a Bolt-backed database at path.
func Open(path string, opt Options) (*DB, error) {
	bopt := &bbolt.Options{
		Timeout: 10 * time.Second,
	}
	*bopt = *bbolt.DefaultOptions
	if opt.IsTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
		bopt.InitialMmapSize = 1024 * 1024 * 5
	} else {
		bopt.InitialMmapSize = 1024 * 1024 * 1024
		bopt.FreelistType = bbolt.FreelistMapType
	}
	if opt.MmapSize != 0 {
		bopt.InitialMmapSize = opt.MmapSize
	}

	bdb, err := bbolt.Open(path, 0666, bopt)
	if err != nil {
		return nil, fmt.Errorf("lazyvec: %w", err)
	}
	return newDB(newBoltStorage(bdb), opt)
}

// OpenMemory opens a transient in-memory database, mainly for tests.
func OpenMemory(opt Options) *DB {
	db, err := newDB(newMemStorage(), opt)
	if err != nil {
		panic(fmt.Errorf("lazyvec: %w", err))
	}
	return db
}

func newDB(store storage, opt Options) (*DB, error) {
	maxValueSize := opt.MaxValueSize
	if maxValueSize == 0 {
		maxValueSize = DefaultMaxValueSize
	} else if maxValueSize < 0 {
		maxValueSize = 0
	}

	db := &DB{
		store:        store,
		logf:         opt.Logf,
		verbose:      opt.Verbose,
		maxValueSize: maxValueSize,
	}

	err := db.Tx(true, func(tx *Tx) error {
		_, err := tx.stx.CreateBucket(dataBucketName)
		return err
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("lazyvec: %w", err)
	}
	return db, nil
}

// Bolt returns the underlying Bolt handle, or nil for non-Bolt backends.
func (db *DB) Bolt() *bbolt.DB {
	if bs, ok := db.store.(*boltStorage); ok {
		return bs.bdb
	}
	return nil
}

func (db *DB) Size() int64 {
	return db.lastSize.Load()
}

func (db *DB) Close() {
	err := db.store.Close()
	if err != nil {
		panic(fmt.Errorf("lazyvec: closing: %w", err))
	}
}

func (db *DB) logff(format string, args ...any) {
	if db.verbose && db.logf != nil {
		db.logf(format, args...)
	}
}
