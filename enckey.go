package lazyvec

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Key identifies the storage region of one cell, mapping or vector. Two
// handles with different keys never collide; two handles sharing a key alias
// the same persisted state (which is how previously written data is
// reattached to).
type Key uint32

// KeyOf derives a stable root key from a name. The xxhash digest is truncated
// to 32 bits, so independently named regions within one database should be
// few enough for birthday collisions not to matter; use explicit Key values
// otherwise.
func KeyOf(name string) Key {
	return Key(xxhash.Sum64String(name))
}

func (k Key) String() string {
	return fmt.Sprintf("%08x", uint32(k))
}

// Physical key layout. A cell under root K lives at the 4-byte big-endian
// encoding of K. Slot N under root K lives at BE32(K) || BE32(N). The two
// forms have different lengths, so cell keys and slot keys never collide,
// and for a fixed root the slot keys are injective and ordered by index
// across the entire u32 domain.
const (
	cellKeyLen = 4
	slotKeyLen = 8
)

func appendCellKey(buf []byte, root Key) []byte {
	return appendFixedUint32(buf, uint32(root))
}

func appendSlotKey(buf []byte, root Key, index uint32) []byte {
	buf = appendFixedUint32(buf, uint32(root))
	return appendFixedUint32(buf, index)
}

func decodeSlotKey(key []byte) (root Key, index uint32, ok bool) {
	if len(key) != slotKeyLen {
		return 0, 0, false
	}
	return Key(binary.BigEndian.Uint32(key)), binary.BigEndian.Uint32(key[4:]), true
}
