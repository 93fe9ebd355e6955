// Package ProbeMap is an open addressed hash map with linear probing and tombstone deletion.
//
// All entries live in one contiguous slot array. A lookup starts at hash mod capacity and walks forward, wrapping around, until it meets the key or an empty slot.
// Removal leaves a tombstone so that probe chains running through the removed slot stay intact; tombstones are reused by later inserts and dropped when the array grows.
// The array doubles before an insert would push (size+tombstones) to 3/4 of the capacity, which bounds the expected probe length.
//
// A ProbeMap is not safe for concurrent use.
package ProbeMap

import (
	"fmt"
	"strings"

	Probe_Maps "github.com/g-m-twostay/probe-maps"
)

const (
	// DefaultCap is the smallest backing array a ProbeMap will allocate.
	DefaultCap = 16
	// load factor limit is maxLoadNum/maxLoadDen, kept as integers to avoid float rounding at the boundary.
	maxLoadNum = 3
	maxLoadDen = 4
)

// ProbeMap maps keys of type K to values of type V. Create it with New or NewWithHasher.
// The zero value is an empty map hashing with Probe_Maps.DefaultHasher; its DefaultCap slots are allocated by the first Insert.
type ProbeMap[K comparable, V any] struct {
	slots  []slot[K, V]
	hash   Probe_Maps.Hasher[K]
	count  int //occupied slots
	graves int //tombstone slots
}

// New returns a ProbeMap whose backing array holds at least minCap slots and never fewer than DefaultCap. Keys are hashed with Probe_Maps.DefaultHasher.
func New[K comparable, V any](minCap int) *ProbeMap[K, V] {
	return NewWithHasher[K, V](minCap, nil)
}

// NewWithHasher is New with a caller supplied hash function. A nil h selects Probe_Maps.DefaultHasher.
func NewWithHasher[K comparable, V any](minCap int, h Probe_Maps.Hasher[K]) *ProbeMap[K, V] {
	if h == nil {
		h = Probe_Maps.DefaultHasher[K]()
	}
	return &ProbeMap[K, V]{slots: make([]slot[K, V], max(minCap, DefaultCap)), hash: h}
}

// Size is the number of keys stored.
func (u *ProbeMap[K, V]) Size() int {
	return u.count
}

func (u *ProbeMap[K, V]) IsEmpty() bool {
	return u.count == 0
}

// Cap is the length of the backing array.
func (u *ProbeMap[K, V]) Cap() int {
	return len(u.slots)
}

// overLoaded reports whether storing extra more slots would reach the load factor limit.
func (u *ProbeMap[K, V]) overLoaded(extra int) bool {
	return maxLoadDen*(u.count+u.graves+extra) >= maxLoadNum*len(u.slots)
}

// find walks the probe sequence of key. If key is present it returns its index and true.
// Otherwise it returns the slot an insert of key should use, which is the first tombstone on the path or else the empty slot that ended the walk, and false.
// The walk visits each slot at most once; if it runs through the whole array without seeing an empty slot, the returned index is the first tombstone, or -1 if there was none.
func (u *ProbeMap[K, V]) find(key K) (int, bool) {
	n := len(u.slots)
	if n == 0 {
		return -1, false
	}
	i, grave := int(u.hash(key)%uint64(n)), -1
	for range n {
		switch s := &u.slots[i]; s.state {
		case empty:
			if grave >= 0 {
				return grave, false
			}
			return i, false
		case tombstone:
			if grave < 0 {
				grave = i
			}
		default:
			if s.key == key {
				return i, true
			}
		}
		if i++; i == n {
			i = 0
		}
	}
	return grave, false
}

// place writes a new entry into slot i, which must be empty or a tombstone.
func (u *ProbeMap[K, V]) place(i int, key K, val V) {
	if i < 0 {
		panic(&ProbeExhaustedError{Cap: len(u.slots), Size: u.count, Tombstones: u.graves})
	}
	if u.slots[i].state == tombstone {
		u.graves--
	}
	u.slots[i].use(key, val)
	u.count++
}

// init sets up a zero value ProbeMap the way New(0) would.
func (u *ProbeMap[K, V]) init() {
	if u.hash == nil {
		u.hash = Probe_Maps.DefaultHasher[K]()
	}
	u.slots = make([]slot[K, V], DefaultCap)
}

// resize doubles the backing array and reinserts every occupied slot in array order. Tombstones are not carried over.
// The new array is allocated before any field changes, so a failed allocation leaves the map as it was.
func (u *ProbeMap[K, V]) resize() {
	old, next := u.slots, make([]slot[K, V], len(u.slots)<<1)
	u.slots, u.count, u.graves = next, 0, 0
	for i := range old {
		if e := &old[i]; e.state == occupied {
			j, _ := u.find(e.key)
			u.place(j, e.key, e.val)
		}
	}
}

// Insert stores val under key. If key was already present its value is replaced and the old value is returned with true.
func (u *ProbeMap[K, V]) Insert(key K, val V) (old V, ok bool) {
	if u.slots == nil {
		u.init()
	}
	if u.overLoaded(1) {
		u.resize()
	}
	i, found := u.find(key)
	if found {
		s := &u.slots[i]
		old, s.val = s.val, val
		return old, true
	}
	u.place(i, key, val)
	return
}

// Get returns the value stored under key.
func (u *ProbeMap[K, V]) Get(key K) (V, bool) {
	if i, found := u.find(key); found {
		return u.slots[i].val, true
	}
	return *new(V), false
}

// Update calls f with a pointer to the value stored under key and reports whether key was present.
// The pointer is only valid during the call: f must not keep it and must not modify u.
func (u *ProbeMap[K, V]) Update(key K, f func(*V)) bool {
	i, found := u.find(key)
	if found {
		f(&u.slots[i].val)
	}
	return found
}

// Remove deletes key, leaving a tombstone in its slot, and returns the removed value.
func (u *ProbeMap[K, V]) Remove(key K) (old V, ok bool) {
	i, found := u.find(key)
	if !found {
		return
	}
	s := &u.slots[i]
	old = s.val
	s.bury()
	u.count--
	u.graves++
	return old, true
}

func (u *ProbeMap[K, V]) HasKey(key K) bool {
	_, found := u.find(key)
	return found
}

// Clear empties every slot in place. The capacity is kept.
func (u *ProbeMap[K, V]) Clear() {
	clear(u.slots)
	u.count, u.graves = 0, 0
}

// Range calls f on every entry in backing array order until f returns false. f must not modify u.
func (u *ProbeMap[K, V]) Range(f func(K, V) bool) {
	for i := range u.slots {
		if s := &u.slots[i]; s.state == occupied && !f(s.key, s.val) {
			return
		}
	}
}

func (u *ProbeMap[K, V]) Keys() []K {
	keys := make([]K, 0, u.count)
	u.Range(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func (u *ProbeMap[K, V]) Values() []V {
	vals := make([]V, 0, u.count)
	u.Range(func(_ K, v V) bool {
		vals = append(vals, v)
		return true
	})
	return vals
}

func (u *ProbeMap[K, V]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "size: %d; tombstones: %d; cap: %d [", u.count, u.graves, len(u.slots))
	for i := range u.slots {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "{%d: %s}", i, u.slots[i].String())
	}
	sb.WriteString("]")
	return sb.String()
}

// ProbeExhaustedError is the panic value raised when an insert walks the whole backing array without finding a usable slot.
// The load factor limit makes this unreachable, so seeing it means the map's counters are corrupt.
type ProbeExhaustedError struct {
	Cap, Size, Tombstones int
}

func (e *ProbeExhaustedError) Error() string {
	return fmt.Sprintf("ProbeMap: probe exhausted %d slots (size %d, tombstones %d) without a free slot", e.Cap, e.Size, e.Tombstones)
}
