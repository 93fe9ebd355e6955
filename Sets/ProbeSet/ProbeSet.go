package ProbeSet

import (
	Probe_Maps "github.com/g-m-twostay/probe-maps"
	"github.com/g-m-twostay/probe-maps/Maps/ProbeMap"
)

// New ProbeSet of type E whose backing array starts with at least minCap slots.
func New[E comparable](minCap int) *ProbeSet[E] {
	return &ProbeSet[E]{m: ProbeMap.New[E, struct{}](minCap)}
}

// NewWithHasher is New with a caller supplied hash function.
func NewWithHasher[E comparable](minCap int, h Probe_Maps.Hasher[E]) *ProbeSet[E] {
	return &ProbeSet[E]{m: ProbeMap.NewWithHasher[E, struct{}](minCap, h)}
}

// ProbeSet is a hash set stored in a ProbeMap with empty values. It shares the map's tombstone and growth behavior.
type ProbeSet[E comparable] struct {
	m *ProbeMap.ProbeMap[E, struct{}]
}

// Size of the set.
func (u *ProbeSet[E]) Size() uint {
	return uint(u.m.Size())
}

// Put e into the set. Returns true if e wasn't there before.
func (u *ProbeSet[E]) Put(e E) bool {
	_, had := u.m.Insert(e, struct{}{})
	return !had
}

// Has e in the set.
func (u *ProbeSet[E]) Has(e E) bool {
	return u.m.HasKey(e)
}

// Remove e from the set. Returns true if the removal is successful.
func (u *ProbeSet[E]) Remove(e E) bool {
	_, had := u.m.Remove(e)
	return had
}

// Take an arbitrary element from the set without removing it. Returns zero value if the set is empty.
func (u *ProbeSet[E]) Take() (e E) {
	u.m.Range(func(k E, _ struct{}) bool {
		e = k
		return false
	})
	return
}

// Range calls f on the elements until it returns false. f must not modify the set.
func (u *ProbeSet[E]) Range(f func(E) bool) {
	u.m.Range(func(k E, _ struct{}) bool {
		return f(k)
	})
}

func (u *ProbeSet[E]) Clear() {
	u.m.Clear()
}
