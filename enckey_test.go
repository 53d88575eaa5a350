package lazyvec

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestKeyEncoding_Concrete(t *testing.T) {
	if got := hex.EncodeToString(appendCellKey(nil, 123)); got != "0000007b" {
		t.Errorf("** cell key for root 123 = %s, wanted 0000007b", got)
	}
	if got := hex.EncodeToString(appendSlotKey(nil, 123, 0)); got != "0000007b00000000" {
		t.Errorf("** slot key for (123, 0) = %s, wanted 0000007b00000000", got)
	}
	if got := hex.EncodeToString(appendSlotKey(nil, 123, 0xFFFFFFFF)); got != "0000007bffffffff" {
		t.Errorf("** slot key for (123, max) = %s, wanted 0000007bffffffff", got)
	}
}

func TestKeyEncoding_Deterministic(t *testing.T) {
	a := appendSlotKey(nil, 42, 17)
	b := appendSlotKey(nil, 42, 17)
	if !bytes.Equal(a, b) {
		t.Fatalf("slot key not deterministic: %x vs %x", a, b)
	}
}

func TestKeyEncoding_InjectiveAndOrdered(t *testing.T) {
	const root = Key(9)
	indices := []uint32{0, 1, 2, 255, 256, 65535, 65536, 1 << 24, 1<<31 - 1, 1 << 31, 0xFFFFFFFE, 0xFFFFFFFF}

	seen := make(map[string]uint32)
	var prev []byte
	for _, idx := range indices {
		key := appendSlotKey(nil, root, idx)
		if len(key) != slotKeyLen {
			t.Fatalf("slot key for %d is %d bytes, wanted %d", idx, len(key), slotKeyLen)
		}
		if dup, found := seen[string(key)]; found {
			t.Fatalf("slot keys collide: index %d and %d both map to %x", dup, idx, key)
		}
		seen[string(key)] = idx

		if prev != nil && bytes.Compare(prev, key) >= 0 {
			t.Fatalf("slot keys not ordered at index %d: %x >= %x", idx, prev, key)
		}
		prev = key

		r, i, ok := decodeSlotKey(key)
		if !ok || r != root || i != idx {
			t.Fatalf("decodeSlotKey(%x) = (%v, %d, %v), wanted (%v, %d, true)", key, r, i, ok, root, idx)
		}
	}
}

func TestKeyEncoding_RootsDoNotCollide(t *testing.T) {
	a := appendSlotKey(nil, 1, 5)
	b := appendSlotKey(nil, 2, 5)
	if bytes.Equal(a, b) {
		t.Fatalf("distinct roots produced the same slot key %x", a)
	}
}

func TestKeyEncoding_CellAndSlotKeysDisjoint(t *testing.T) {
	// Same root: the length cell must never alias any element slot.
	cell := appendCellKey(nil, 123)
	for _, idx := range []uint32{0, 1, 0xFFFFFFFF} {
		if bytes.Equal(cell, appendSlotKey(nil, 123, idx)) {
			t.Fatalf("cell key aliases slot %d", idx)
		}
	}
	if len(cell) == slotKeyLen {
		t.Fatalf("cell key length %d equals slot key length", len(cell))
	}
}

func TestDecodeSlotKey_RejectsWrongLength(t *testing.T) {
	for _, raw := range [][]byte{nil, {1}, {1, 2, 3, 4}, make([]byte, 9)} {
		if _, _, ok := decodeSlotKey(raw); ok {
			t.Errorf("** decodeSlotKey accepted %d bytes", len(raw))
		}
	}
}

func TestKeyOf(t *testing.T) {
	if KeyOf("posts") != KeyOf("posts") {
		t.Fatalf("KeyOf is not stable")
	}
	if KeyOf("posts") == KeyOf("users") {
		t.Fatalf("KeyOf(\"posts\") == KeyOf(\"users\")")
	}
}
