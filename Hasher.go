package Probe_Maps

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// Hasher is the hash capability a container needs from its key type. It must be deterministic: equal keys always produce equal hashes for the lifetime of the container.
type Hasher[K any] func(K) uint64

// Seed selects a member of the xxhash family. The zero Seed is plain xxhash64, identical to xxhash.Sum64.
type Seed uint64

// HashBytes hashes the given byte slice.
func (u Seed) HashBytes(b []byte) uint64 {
	if u == 0 {
		return xxhash.Sum64(b)
	}
	var d xxhash.Digest
	d.ResetWithSeed(uint64(u))
	d.Write(b)
	return d.Sum64()
}

// HashString directly hashes a string without converting it to bytes.
func (u Seed) HashString(s string) uint64 {
	if u == 0 {
		return xxhash.Sum64String(s)
	}
	var d xxhash.Digest
	d.ResetWithSeed(uint64(u))
	d.WriteString(s)
	return d.Sum64()
}

// HashUint64 hashes the little endian encoding of v.
func (u Seed) HashUint64(v uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return u.HashBytes(b[:])
}

// StringHasher returns a Hasher for any string-like key.
func StringHasher[K ~string](seed Seed) Hasher[K] {
	return func(k K) uint64 {
		return seed.HashString(string(k))
	}
}

// IntHasher returns a Hasher for any integer key. Signed values are hashed through their two's complement bits.
func IntHasher[K constraints.Integer](seed Seed) Hasher[K] {
	return func(k K) uint64 {
		return seed.HashUint64(uint64(k))
	}
}

var comparableSeed = maphash.MakeSeed()

// ComparableHasher hashes any comparable key, including structs and arrays. The result is stable within a process but not across processes.
func ComparableHasher[K comparable]() Hasher[K] {
	return func(k K) uint64 {
		return maphash.Comparable(comparableSeed, k)
	}
}

// DefaultHasher picks the fastest hasher available for K: xxhash for strings and the builtin integer kinds, ComparableHasher for everything else.
func DefaultHasher[K comparable]() Hasher[K] {
	var h any
	switch any(*new(K)).(type) {
	case string:
		h = StringHasher[string](0)
	case int:
		h = IntHasher[int](0)
	case int8:
		h = IntHasher[int8](0)
	case int16:
		h = IntHasher[int16](0)
	case int32:
		h = IntHasher[int32](0)
	case int64:
		h = IntHasher[int64](0)
	case uint:
		h = IntHasher[uint](0)
	case uint8:
		h = IntHasher[uint8](0)
	case uint16:
		h = IntHasher[uint16](0)
	case uint32:
		h = IntHasher[uint32](0)
	case uint64:
		h = IntHasher[uint64](0)
	case uintptr:
		h = IntHasher[uintptr](0)
	default:
		return ComparableHasher[K]()
	}
	return h.(Hasher[K])
}
