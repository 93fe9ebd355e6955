package ProbeMap

import "fmt"

type slotState byte

const (
	empty slotState = iota //zero value, so a freshly made or cleared array is all empty
	tombstone
	occupied
)

func (s slotState) String() string {
	switch s {
	case empty:
		return "empty"
	case tombstone:
		return "tombstone"
	case occupied:
		return "occupied"
	}
	return fmt.Sprintf("slotState(%d)", byte(s))
}

// slot is one cell of the backing array. key and val are only meaningful while state is occupied.
type slot[K comparable, V any] struct {
	key   K
	val   V
	state slotState
}

func (s *slot[K, V]) use(key K, val V) {
	s.key, s.val, s.state = key, val, occupied
}

// bury turns an occupied slot into a tombstone and drops its payload.
func (s *slot[K, V]) bury() {
	*s = slot[K, V]{state: tombstone}
}

func (s *slot[K, V]) String() string {
	if s.state != occupied {
		return s.state.String()
	}
	return fmt.Sprintf("key: %v; val: %v", s.key, s.val)
}
