package lazyvec

import (
	"encoding/binary"

	"github.com/klauspost/compress/s2"
)

const (
	valueFormatVer1 = 1

	// DefaultMaxValueSize bounds a single encoded value (envelope included).
	DefaultMaxValueSize = 16 << 10

	compressThreshold = 1 << 10
	minValueSize      = 1
)

type valueFlags uint64

const (
	vfVerBit0 = valueFlags(1 << iota)
	vfVerBit1
	vfVerBit2
	vfVerBit3
	vfCompressionBit0

	vfVerMask       = (vfVerBit0 | vfVerBit1 | vfVerBit2 | vfVerBit3)
	vfVer1          = vfVerBit0
	vfS2            = vfCompressionBit0
	vfSupportedMask = (vfVer1 | vfS2)
	vfDefault       = vfVer1
)

func (vf valueFlags) ver() valueFlags {
	return vf & vfVerMask
}

// encodeValue appends the stored representation of v to buf: a flags uvarint,
// then the msgpack payload, s2-compressed when that pays off. Panics with
// ErrValueTooLarge if the result exceeds maxSize (maxSize <= 0 means
// unbounded).
func encodeValue(buf []byte, v any, maxSize int) []byte {
	start := len(buf)
	scratch := valueBytesPool.Get().([]byte)
	raw := msgpackEncode(scratch[:0], v)
	payload := raw

	flags := vfDefault
	if len(payload) >= compressThreshold {
		comp := s2.Encode(nil, payload)
		if len(comp) < len(payload) {
			flags |= vfS2
			payload = comp
		}
	}

	buf = appendUvarint(buf, uint64(flags))
	buf = appendRaw(buf, payload)
	valueBytesPool.Put(raw[:0])

	if maxSize > 0 && len(buf)-start > maxSize {
		panic(dataErrf(buf[start:], 0, ErrValueTooLarge, "%d bytes with a %d byte limit", len(buf)-start, maxSize))
	}
	return buf
}

// decodeValue decodes bytes produced by encodeValue into ptr.
func decodeValue(raw []byte, ptr any) error {
	if len(raw) < minValueSize {
		return dataErrf(raw, 0, nil, "invalid value: at least %d bytes required", minValueSize)
	}

	v, n := binary.Uvarint(raw)
	if n <= 0 {
		return dataErrf(raw, 0, nil, "invalid value: bad flags")
	}
	flags := valueFlags(v)
	if (flags &^ vfSupportedMask) != 0 {
		return dataErrf(raw, 0, nil, "invalid value: unsupported flags %x", v)
	}
	if flags.ver() != vfVer1 {
		return dataErrf(raw, 0, nil, "invalid value: unsupported format version %x", uint64(flags.ver()))
	}

	payload := raw[n:]
	if flags&vfS2 != 0 {
		dec, err := s2.Decode(nil, payload)
		if err != nil {
			return dataErrf(raw, n, err, "invalid value: bad s2 payload")
		}
		payload = dec
	}
	return msgpackDecode(payload, ptr)
}
