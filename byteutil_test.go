package lazyvec

import (
	"encoding/binary"
	"reflect"
	"testing"
)

func TestBytesBuilder_Basics(t *testing.T) {
	var bb bytesBuilder

	off := bb.Grow(3)
	copy(bb.Buf[off:], []byte{1, 2, 3})

	_, _ = bb.Write([]byte{9, 8})
	if !reflect.DeepEqual(bb.Buf, []byte{1, 2, 3, 9, 8}) {
		t.Fatalf("after Write: bb.Buf = %x, wanted 0102030908", bb.Buf)
	}

	_ = bb.WriteByte(7)
	if !reflect.DeepEqual(bb.Buf, []byte{1, 2, 3, 9, 8, 7}) {
		t.Fatalf("after WriteByte: bb.Buf = %x, wanted 010203090807", bb.Buf)
	}

	bb.Trim(2)
	if !reflect.DeepEqual(bb.Buf, []byte{1, 2}) {
		t.Fatalf("after Trim: bb.Buf = %x, wanted 0102", bb.Buf)
	}
}

func TestByteUtil_AppendHelpers(t *testing.T) {
	src := []byte{0xAA, 0xBB, 0xCC}
	buf := appendRaw(nil, src)
	if !reflect.DeepEqual(buf, src) {
		t.Fatalf("appendRaw = %x, wanted %x", buf, src)
	}

	buf = appendFixedUint32(nil, 0x01020304)
	if !reflect.DeepEqual(buf, []byte{1, 2, 3, 4}) {
		t.Fatalf("appendFixedUint32 = %x, wanted 01020304", buf)
	}

	buf = appendUvarint(nil, 0x42)
	v, n := binary.Uvarint(buf)
	if v != 0x42 || n != len(buf) {
		t.Fatalf("appendUvarint round-trip = (%x, %d), wanted (42, %d)", v, n, len(buf))
	}
}

func TestEnsureCapacity(t *testing.T) {
	buf := make([]byte, 3, 4)
	grown := ensureCapacity(buf, 100)
	if cap(grown) < 100 || len(grown) != 3 {
		t.Fatalf("ensureCapacity = (len=%d, cap=%d), wanted (3, >=100)", len(grown), cap(grown))
	}

	same := ensureCapacity(buf, 4)
	if cap(same) != 4 {
		t.Fatalf("ensureCapacity reallocated a sufficient buffer")
	}
}
