package lazyvec

import (
	"errors"
	"fmt"
)

// Sentinel errors for contract violations. All of these are raised via panic
// (see package doc, “Failure model”); match them with errors.Is against the
// recovered value, or against the error returned by DB.Tx.
var (
	// ErrCapacity means a vector already holds 2^32-1 elements and cannot grow.
	ErrCapacity = errors.New("vector at capacity")

	// ErrOutOfRange means Set was called with an index at or beyond the length.
	ErrOutOfRange = errors.New("index out of range")

	// ErrValueTooLarge means the encoded value exceeds Options.MaxValueSize.
	ErrValueTooLarge = errors.New("encoded value too large")

	// ErrCorrupted means the persisted state contradicts the vector invariants,
	// e.g. a missing slot below the recorded length. This indicates the data
	// was written by something bypassing this package, or by a handle with an
	// incompatible element type sharing the same root key.
	ErrCorrupted = errors.New("storage corrupted")
)

func errCorruptedWrap(err error) error {
	return fmt.Errorf("%w: %w", ErrCorrupted, err)
}

type DataError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func dataErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DataError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x", e.Msg, e.Err, n, e.Data)
		} else {
			return fmt.Sprintf("%s: (%d) %x", e.Msg, n, e.Data)
		}
	} else {
		p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x...%x", e.Msg, e.Err, n, p, s)
		} else {
			return fmt.Sprintf("%s: (%d) %x...%x", e.Msg, n, p, s)
		}
	}
}

// VecError carries the root key (and slot index, when applicable) of a failed
// cell, mapping or vector operation.
type VecError struct {
	Root     Key
	Index    uint32
	HasIndex bool
	Msg      string
	Err      error
}

func rootErrf(root Key, err error, format string, args ...any) error {
	return &VecError{Root: root, Msg: fmt.Sprintf(format, args...), Err: err}
}

func slotErrf(root Key, index uint32, err error, format string, args ...any) error {
	return &VecError{Root: root, Index: index, HasIndex: true, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (e *VecError) Unwrap() error {
	return e.Err
}

func (e *VecError) Error() string {
	var loc string
	if e.HasIndex {
		loc = fmt.Sprintf("root %08x slot %d", uint32(e.Root), e.Index)
	} else {
		loc = fmt.Sprintf("root %08x", uint32(e.Root))
	}
	if e.Msg != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", loc, e.Msg, e.Err)
		}
		return fmt.Sprintf("%s: %s", loc, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", loc, e.Err)
	}
	return loc
}
