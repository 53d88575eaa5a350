/*
Package lazyvec implements lazily loaded collections on top of a key-value
store (in this case, on top of Bolt), where every element occupies its own
storage slot.

We implement:

1. Cells, holding a single typed value under a fixed root key, with a
handle-local read cache.

2. Mappings, associating uint32 indices with typed values under keys derived
from a root key.

3. Vecs, composing a cell (the length) and a mapping (the elements) into a
persistent vector with push/pop/get/set semantics and O(1) single-element
cost.

The point of the per-element layout is cost: a collection msgpacked wholesale
under one key makes every read and write touch the entire collection, so the
cost of accessing a single element grows linearly with the length, and the
whole collection is capped by the value size limit. A Vec reads and writes one
slot plus the length cell, no matter how many elements it holds. The flip side
is that iteration is not provided.

# Technical Details

**Root keys.**
Every collection is namespaced by a uint32 root key, either chosen explicitly
or derived from a name via KeyOf. Two handles with different root keys never
collide; two handles sharing a root key alias the same persisted state, which
is how a fresh process reattaches to previously written data.

**Execution model.**
Operations run inside DB transactions and assume one logical operation
completes before the next begins. Handle caches are not synchronized; a
handle must not be shared between goroutines without external locking.
Mutations commit atomically with their length update: a panic inside DB.Tx or
DB.Write rolls the whole transaction back, so no partially applied push or
pop is ever observed by a later reader.

## Binary encoding

**Key encoding.**
The cell for root key K lives at BE32(K). Slot N of the mapping for root key
K lives at BE32(K) || BE32(N). The two forms differ in length, so cell and
slot keys never collide; for a fixed root the slot keys are injective over
the full uint32 domain and sorted in index order.

**Value**: flags (uvarint), then the msgpack encoding of the value,
s2-compressed when the payload is large enough for that to pay off. The
total encoded size is bounded by Options.MaxValueSize.
*/
package lazyvec
