package ProbeMap

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

var rg = rand.New(rand.NewSource(42))

// constHash sends every key to slot 0 so probe chains are as long as possible.
func constHash[K any](K) uint64 {
	return 0
}

// identityHash puts key k in slot k%cap.
func identityHash(k int) uint64 {
	return uint64(k)
}

// check verifies the counters against the slot array and the load factor bound.
func (u *ProbeMap[K, V]) check(t *testing.T) {
	t.Helper()
	var occ, dead int
	seen := make(map[K]int, u.count)
	for i := range u.slots {
		switch s := &u.slots[i]; s.state {
		case occupied:
			occ++
			if j, in := seen[s.key]; in {
				t.Errorf("key %v is in slots %d and %d", s.key, j, i)
			}
			seen[s.key] = i
		case tombstone:
			dead++
		}
	}
	if occ != u.count {
		t.Errorf("count is %d, slots have %d occupied", u.count, occ)
	}
	if dead != u.graves {
		t.Errorf("tombstones is %d, slots have %d", u.graves, dead)
	}
	if maxLoadDen*(u.count+u.graves) >= maxLoadNum*len(u.slots) {
		t.Errorf("load factor (%d+%d)/%d is not below 3/4", u.count, u.graves, len(u.slots))
	}
}

func TestProbeMap_New(t *testing.T) {
	m := New[string, string](0)
	if !m.IsEmpty() || m.Size() != 0 {
		t.Error("new map should be empty")
	}
	if m.Cap() != DefaultCap {
		t.Errorf("cap is %d, want %d", m.Cap(), DefaultCap)
	}
	if c := New[string, string](4).Cap(); c != DefaultCap {
		t.Errorf("cap is %d, want floor %d", c, DefaultCap)
	}
	if c := New[string, string](100).Cap(); c != 100 {
		t.Errorf("cap is %d, want 100", c)
	}
}

func TestProbeMap_Scenario(t *testing.T) {
	m := New[string, string](0)
	if _, ok := m.Insert("k1", "v1"); ok {
		t.Error("first insert returned a previous value")
	}
	if m.Size() != 1 {
		t.Errorf("size is %d, want 1", m.Size())
	}
	if old, ok := m.Insert("k1", "v2"); !ok || old != "v1" {
		t.Errorf("overwrite returned %q %t, want v1 true", old, ok)
	}
	if m.Size() != 1 {
		t.Errorf("size is %d, want 1", m.Size())
	}
	if v, _ := m.Get("k1"); v != "v2" {
		t.Errorf("get returned %q, want v2", v)
	}
	if v, ok := m.Remove("k1"); !ok || v != "v2" {
		t.Errorf("remove returned %q %t, want v2 true", v, ok)
	}
	if m.Size() != 0 {
		t.Errorf("size is %d, want 0", m.Size())
	}
	if _, ok := m.Get("k1"); ok {
		t.Error("removed key still found")
	}
	if m.HasKey("k1") {
		t.Error("removed key still contained")
	}
	m.check(t)
}

func TestProbeMap_RemoveAbsent(t *testing.T) {
	m := New[string, int](0)
	m.Insert("a", 1)
	if v, ok := m.Remove("b"); ok || v != 0 {
		t.Errorf("remove of absent key returned %d %t", v, ok)
	}
	if m.Size() != 1 || m.graves != 0 {
		t.Errorf("remove of absent key changed state: size %d tombstones %d", m.Size(), m.graves)
	}
}

func TestProbeMap_TombstoneReuse(t *testing.T) {
	m := NewWithHasher[int, string](0, constHash[int])
	m.Insert(1, "a")
	m.Insert(2, "b")
	m.Remove(1)
	if m.slots[0].state != tombstone {
		t.Fatalf("slot 0 is %v, want tombstone", m.slots[0].state)
	}
	capBefore := m.Cap()
	m.Insert(3, "c")
	if m.Size() != 2 {
		t.Errorf("size is %d, want 2", m.Size())
	}
	if !m.HasKey(2) || !m.HasKey(3) || m.HasKey(1) {
		t.Error("wrong membership after tombstone reuse")
	}
	if m.slots[0].state != occupied || m.slots[0].key != 3 {
		t.Errorf("key 3 did not take the tombstone: %s", m.String())
	}
	if m.graves != 0 || m.Cap() != capBefore {
		t.Errorf("tombstones %d cap %d after reuse", m.graves, m.Cap())
	}
	m.check(t)
}

func TestProbeMap_TombstoneKeepsChain(t *testing.T) {
	m := NewWithHasher[int, int](0, constHash[int])
	for i := range 5 {
		m.Insert(i, i)
	}
	m.Remove(0)
	m.Remove(2)
	for _, k := range []int{1, 3, 4} {
		if v, ok := m.Get(k); !ok || v != k {
			t.Errorf("key %d lost behind tombstones", k)
		}
	}
	// an existing key behind a tombstone must be overwritten in place, not duplicated into the tombstone
	if old, ok := m.Insert(4, 40); !ok || old != 4 {
		t.Errorf("overwrite behind tombstone returned %d %t", old, ok)
	}
	if m.Size() != 3 || m.graves != 2 {
		t.Errorf("size %d tombstones %d, want 3 2", m.Size(), m.graves)
	}
	m.check(t)
}

func TestProbeMap_WrapAround(t *testing.T) {
	m := NewWithHasher[int, int](0, identityHash)
	last := m.Cap() - 1
	m.Insert(last, 1)
	m.Insert(2*m.Cap()-1, 2) // same home slot, has to wrap to slot 0
	if m.slots[0].state != occupied {
		t.Fatalf("probe did not wrap: %s", m.String())
	}
	if v, ok := m.Get(2*m.Cap() - 1); !ok || v != 2 {
		t.Error("wrapped key not found")
	}
	m.check(t)
}

func TestProbeMap_Resize(t *testing.T) {
	m := New[string, string](4)
	for i := range 100 {
		m.Insert(fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i))
		m.check(t)
	}
	if m.Size() != 100 {
		t.Errorf("size is %d, want 100", m.Size())
	}
	for i := range 100 {
		k := fmt.Sprintf("key%d", i)
		if v, ok := m.Get(k); !ok || v != fmt.Sprintf("value%d", i) {
			t.Errorf("key %s lost after resize, got %q %t", k, v, ok)
		}
	}
}

func TestProbeMap_ResizeTrigger(t *testing.T) {
	m := New[int, int](0)
	// 4*(11+1) = 48 >= 3*16: the 12th insert grows the array first
	for i := range 11 {
		m.Insert(i, i)
	}
	if m.Cap() != DefaultCap {
		t.Fatalf("grew early, cap %d after 11 inserts", m.Cap())
	}
	m.Insert(11, 11)
	if m.Cap() != 2*DefaultCap {
		t.Errorf("cap is %d after 12 inserts, want %d", m.Cap(), 2*DefaultCap)
	}
	m.check(t)
}

func TestProbeMap_ResizeDropsTombstones(t *testing.T) {
	m := New[int, int](0)
	for i := range 11 {
		m.Insert(i, i)
	}
	for i := range 6 {
		m.Remove(i)
	}
	if m.graves != 6 {
		t.Fatalf("tombstones is %d, want 6", m.graves)
	}
	m.Insert(100, 100) // 5 live + 6 dead + 1 reaches the limit
	if m.Cap() != 2*DefaultCap || m.graves != 0 {
		t.Errorf("cap %d tombstones %d, want %d 0", m.Cap(), m.graves, 2*DefaultCap)
	}
	if m.Size() != 6 {
		t.Errorf("size is %d, want 6", m.Size())
	}
	for i := 6; i < 11; i++ {
		if !m.HasKey(i) {
			t.Errorf("key %d lost in resize", i)
		}
	}
	m.check(t)
}

func TestProbeMap_OverwriteAtLimitGrows(t *testing.T) {
	m := New[int, int](0)
	for i := range 11 {
		m.Insert(i, i)
	}
	m.Insert(0, -1) // the check runs before the lookup, even for a key that exists
	if m.Cap() != 2*DefaultCap || m.Size() != 11 {
		t.Errorf("cap %d size %d, want %d 11", m.Cap(), m.Size(), 2*DefaultCap)
	}
	if v, _ := m.Get(0); v != -1 {
		t.Errorf("value is %d, want -1", v)
	}
}

func TestProbeMap_Clear(t *testing.T) {
	m := New[string, string](0)
	for i := range 40 {
		m.Insert(fmt.Sprint(i), "v")
	}
	m.Remove("3")
	c := m.Cap()
	m.Clear()
	if !m.IsEmpty() || m.graves != 0 {
		t.Errorf("size %d tombstones %d after clear", m.Size(), m.graves)
	}
	if m.Cap() != c {
		t.Errorf("cap changed from %d to %d", c, m.Cap())
	}
	for i := range 40 {
		if _, ok := m.Get(fmt.Sprint(i)); ok {
			t.Errorf("key %d survived clear", i)
		}
	}
	for i := range m.slots {
		if m.slots[i].state != empty {
			t.Fatalf("slot %d is %v after clear", i, m.slots[i].state)
		}
	}
}

func TestProbeMap_Update(t *testing.T) {
	m := New[string, []int](0)
	m.Insert("a", nil)
	if !m.Update("a", func(v *[]int) { *v = append(*v, 1, 2) }) {
		t.Error("update missed a present key")
	}
	if v, _ := m.Get("a"); len(v) != 2 {
		t.Errorf("update not visible, got %v", v)
	}
	called := false
	if m.Update("b", func(*[]int) { called = true }) || called {
		t.Error("update ran for an absent key")
	}
	if m.Size() != 1 {
		t.Errorf("size is %d, want 1", m.Size())
	}
}

func TestProbeMap_RangeKeysValues(t *testing.T) {
	m := New[int, int](0)
	for i := range 30 {
		m.Insert(i, i*i)
	}
	keys, vals := m.Keys(), m.Values()
	if len(keys) != 30 || len(vals) != 30 {
		t.Fatalf("got %d keys %d values, want 30", len(keys), len(vals))
	}
	sum := 0
	m.Range(func(k, v int) bool {
		if v != k*k {
			t.Errorf("range gave %d for key %d", v, k)
		}
		sum += k
		return true
	})
	if sum != 29*30/2 {
		t.Errorf("range visited keys summing to %d", sum)
	}
	n := 0
	m.Range(func(int, int) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("range should stop after 2 calls, made %d", n)
	}
}

func TestProbeMap_ProbeExhausted(t *testing.T) {
	m := NewWithHasher[int, int](0, constHash[int])
	// forge a full array; the load factor check never allows this through Insert
	for i := range m.slots {
		m.slots[i].use(i, i)
	}
	m.count = len(m.slots)
	if m.HasKey(-1) {
		t.Error("found a key that was never stored")
	}
	defer func() {
		err, _ := recover().(error)
		var pe *ProbeExhaustedError
		if !errors.As(err, &pe) {
			t.Fatalf("recovered %v, want *ProbeExhaustedError", err)
		}
		if pe.Cap != DefaultCap {
			t.Errorf("error reports cap %d", pe.Cap)
		}
	}()
	i, _ := m.find(-1)
	m.place(i, -1, -1)
}

// A walk over an array with no empty slot left must still hand out the tombstone it passed.
func TestProbeMap_FullArrayReusesTombstone(t *testing.T) {
	m := NewWithHasher[int, int](0, constHash[int])
	// forged like above; Insert itself would grow the array first
	for i := range m.slots {
		m.slots[i].use(i, i)
	}
	m.count = len(m.slots)
	if _, ok := m.Remove(5); !ok {
		t.Fatal("remove of a stored key failed")
	}
	i, found := m.find(-1)
	if found || i != 5 {
		t.Fatalf("find returned %d %t, want 5 false", i, found)
	}
	m.place(i, -1, -10)
	if m.graves != 0 || m.count != len(m.slots) {
		t.Errorf("count %d tombstones %d after reuse", m.count, m.graves)
	}
	if v, ok := m.Get(-1); !ok || v != -10 {
		t.Errorf("got %d %t, want -10 true", v, ok)
	}
	if m.HasKey(5) {
		t.Error("removed key came back")
	}
}

func TestProbeMap_ZeroValue(t *testing.T) {
	var m ProbeMap[string, int]
	if _, ok := m.Get("a"); ok {
		t.Error("empty map found a key")
	}
	if m.HasKey("a") || m.Update("a", func(*int) {}) {
		t.Error("empty map reports a key")
	}
	if _, ok := m.Remove("a"); ok {
		t.Error("empty map removed a key")
	}
	if m.Size() != 0 || m.Cap() != 0 {
		t.Errorf("size %d cap %d", m.Size(), m.Cap())
	}
	m.Clear()
	if _, ok := m.Insert("a", 1); ok {
		t.Error("first insert reported an old value")
	}
	if m.Cap() != DefaultCap {
		t.Errorf("cap is %d after the first insert", m.Cap())
	}
	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Errorf("got %d %t, want 1 true", v, ok)
	}
	m.check(t)
}

func TestProbeMap_Oracle(t *testing.T) {
	m := New[int, int](0)
	ref := make(map[int]int)
	for step := range 20000 {
		k := rg.Intn(300)
		switch rg.Intn(3) {
		case 0:
			v := rg.Int()
			old, ok := m.Insert(k, v)
			rold, rok := ref[k]
			if ok != rok || old != rold {
				t.Fatalf("step %d: insert %d returned %d %t, want %d %t", step, k, old, ok, rold, rok)
			}
			ref[k] = v
			m.check(t)
		case 1:
			v, ok := m.Get(k)
			if rv, rok := ref[k]; ok != rok || v != rv {
				t.Fatalf("step %d: get %d returned %d %t, want %d %t", step, k, v, ok, rv, rok)
			}
		default:
			v, ok := m.Remove(k)
			if rv, rok := ref[k]; ok != rok || v != rv {
				t.Fatalf("step %d: remove %d returned %d %t, want %d %t", step, k, v, ok, rv, rok)
			}
			delete(ref, k)
		}
		if m.Size() != len(ref) {
			t.Fatalf("step %d: size is %d, want %d", step, m.Size(), len(ref))
		}
	}
	for k := range 300 {
		v, ok := m.Get(k)
		if rv, rok := ref[k]; ok != rok || v != rv {
			t.Errorf("key %d: got %d %t, want %d %t", k, v, ok, rv, rok)
		}
	}
}

func BenchmarkProbeMap_Insert(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		keys := make([]string, size)
		for i := range keys {
			keys[i] = fmt.Sprintf("key_%d", i)
		}
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for range b.N {
				m := New[string, string](0)
				for _, k := range keys {
					m.Insert(k, k)
				}
			}
		})
	}
}

var sideEff bool

func BenchmarkProbeMap_Get(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		keys := make([]string, size)
		m := New[string, string](0)
		for i := range keys {
			keys[i] = fmt.Sprintf("key_%d", i)
			m.Insert(keys[i], keys[i])
		}
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for range b.N {
				for _, k := range keys {
					_, sideEff = m.Get(k)
				}
			}
		})
	}
}
