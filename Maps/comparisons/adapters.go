// Package comparisons puts third-party maps behind Maps.Map so ProbeMap can be checked and measured against them on identical operation streams.
//
// haxmap and cornelk/hashmap restrict keys to their own unexported "hashable" constraint, so their adapters are fixed to string keys, the key type of every workload.
package comparisons

import (
	"cmp"

	"github.com/alphadose/haxmap"
	"github.com/cornelk/hashmap"
	godsmap "github.com/emirpasic/gods/maps/hashmap"
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/g-m-twostay/probe-maps/Maps"
	"github.com/g-m-twostay/probe-maps/Maps/ProbeMap"
)

var (
	_ Maps.Map[string, string] = (*ProbeMap.ProbeMap[string, string])(nil)
	_ Maps.Map[string, string] = StdMap[string, string]{}
	_ Maps.Map[string, string] = (*HaxMap)(nil)
	_ Maps.Map[string, string] = (*CornelkMap)(nil)
	_ Maps.Map[string, string] = (*XSyncMap[string, string])(nil)
	_ Maps.Map[string, string] = (*GodsMap[string, string])(nil)
	_ Maps.Map[string, string] = (*BTreeMap[string, string])(nil)
	_ Maps.Map[string, string] = (*LLRBMap[string, string])(nil)
)

// Factory names an implementation and builds empty instances of it.
// Exact is false for maps that are known to lose or resurrect entries once deletes are involved; they are only good for timing.
type Factory struct {
	Name  string
	New   func() Maps.Map[string, string]
	Exact bool
}

// All lists every implementation in this package, ProbeMap first.
func All() []Factory {
	return []Factory{
		{"ProbeMap", func() Maps.Map[string, string] { return ProbeMap.New[string, string](0) }, true},
		{"StdMap", func() Maps.Map[string, string] { return NewStdMap[string, string]() }, true},
		{"HaxMap", func() Maps.Map[string, string] { return NewHaxMap() }, false}, //https://github.com/alphadose/haxmap/issues/32
		{"CornelkMap", func() Maps.Map[string, string] { return NewCornelkMap() }, true},
		{"XSyncMap", func() Maps.Map[string, string] { return NewXSyncMap[string, string]() }, true},
		{"GodsMap", func() Maps.Map[string, string] { return NewGodsMap[string, string]() }, true},
		{"BTreeMap", func() Maps.Map[string, string] { return NewBTreeMap[string, string]() }, true},
		{"LLRBMap", func() Maps.Map[string, string] { return NewLLRBMap[string, string]() }, true},
	}
}

// StdMap is the builtin map, the reference every other implementation is checked against.
type StdMap[K comparable, V any] map[K]V

func NewStdMap[K comparable, V any]() StdMap[K, V] {
	return make(StdMap[K, V])
}

func (u StdMap[K, V]) Insert(key K, val V) (old V, ok bool) {
	old, ok = u[key]
	u[key] = val
	return
}

func (u StdMap[K, V]) Get(key K) (v V, ok bool) {
	v, ok = u[key]
	return
}

func (u StdMap[K, V]) Remove(key K) (old V, ok bool) {
	if old, ok = u[key]; ok {
		delete(u, key)
	}
	return
}

func (u StdMap[K, V]) HasKey(key K) bool {
	_, ok := u[key]
	return ok
}

func (u StdMap[K, V]) Size() int {
	return len(u)
}

func (u StdMap[K, V]) Clear() {
	clear(u)
}

// HaxMap wraps https://github.com/alphadose/haxmap.
type HaxMap struct {
	m *haxmap.Map[string, string]
}

func NewHaxMap() *HaxMap {
	return &HaxMap{haxmap.New[string, string]()}
}

// HaxMap's Get can hand back the stale value of a deleted element together with false, so every miss is zeroed here.
func (u *HaxMap) Get(key string) (string, bool) {
	if v, ok := u.m.Get(key); ok {
		return v, true
	}
	return "", false
}

func (u *HaxMap) Insert(key, val string) (old string, ok bool) {
	old, ok = u.Get(key)
	u.m.Set(key, val)
	return
}

func (u *HaxMap) Remove(key string) (old string, ok bool) {
	if old, ok = u.Get(key); ok {
		u.m.Del(key)
	}
	return
}

func (u *HaxMap) HasKey(key string) bool {
	_, ok := u.m.Get(key)
	return ok
}

func (u *HaxMap) Size() int {
	return int(u.m.Len())
}

func (u *HaxMap) Clear() {
	u.m = haxmap.New[string, string]()
}

// CornelkMap wraps https://github.com/cornelk/hashmap.
type CornelkMap struct {
	m *hashmap.Map[string, string]
}

func NewCornelkMap() *CornelkMap {
	return &CornelkMap{hashmap.New[string, string]()}
}

func (u *CornelkMap) Insert(key, val string) (old string, ok bool) {
	old, ok = u.m.Get(key)
	u.m.Set(key, val)
	return
}

func (u *CornelkMap) Get(key string) (string, bool) {
	return u.m.Get(key)
}

func (u *CornelkMap) Remove(key string) (old string, ok bool) {
	if old, ok = u.m.Get(key); ok {
		u.m.Del(key)
	}
	return
}

func (u *CornelkMap) HasKey(key string) bool {
	_, ok := u.m.Get(key)
	return ok
}

func (u *CornelkMap) Size() int {
	return u.m.Len()
}

func (u *CornelkMap) Clear() {
	u.m = hashmap.New[string, string]()
}

// XSyncMap wraps MapOf from https://github.com/puzpuzpuz/xsync.
type XSyncMap[K comparable, V any] struct {
	m *xsync.MapOf[K, V]
}

func NewXSyncMap[K comparable, V any]() *XSyncMap[K, V] {
	return &XSyncMap[K, V]{xsync.NewMapOf[K, V]()}
}

// Insert maps LoadAndStore onto the Maps.Map contract: on a miss LoadAndStore returns the value it just stored, not a previous one.
func (u *XSyncMap[K, V]) Insert(key K, val V) (V, bool) {
	if old, loaded := u.m.LoadAndStore(key, val); loaded {
		return old, true
	}
	return *new(V), false
}

func (u *XSyncMap[K, V]) Get(key K) (V, bool) {
	return u.m.Load(key)
}

func (u *XSyncMap[K, V]) Remove(key K) (V, bool) {
	return u.m.LoadAndDelete(key)
}

func (u *XSyncMap[K, V]) HasKey(key K) bool {
	_, ok := u.m.Load(key)
	return ok
}

func (u *XSyncMap[K, V]) Size() int {
	return u.m.Size()
}

func (u *XSyncMap[K, V]) Clear() {
	u.m.Clear()
}

// GodsMap wraps the untyped hashmap from https://github.com/emirpasic/gods.
type GodsMap[K comparable, V any] struct {
	m *godsmap.Map
}

func NewGodsMap[K comparable, V any]() *GodsMap[K, V] {
	return &GodsMap[K, V]{godsmap.New()}
}

func (u *GodsMap[K, V]) Insert(key K, val V) (old V, ok bool) {
	old, ok = u.Get(key)
	u.m.Put(key, val)
	return
}

func (u *GodsMap[K, V]) Get(key K) (V, bool) {
	if v, found := u.m.Get(key); found {
		return v.(V), true
	}
	return *new(V), false
}

func (u *GodsMap[K, V]) Remove(key K) (old V, ok bool) {
	if old, ok = u.Get(key); ok {
		u.m.Remove(key)
	}
	return
}

func (u *GodsMap[K, V]) HasKey(key K) bool {
	_, found := u.m.Get(key)
	return found
}

func (u *GodsMap[K, V]) Size() int {
	return u.m.Size()
}

func (u *GodsMap[K, V]) Clear() {
	u.m.Clear()
}

type pair[K cmp.Ordered, V any] struct {
	key K
	val V
}

func lessPair[K cmp.Ordered, V any](a, b pair[K, V]) bool {
	return a.key < b.key
}

// BTreeMap is an ordered map on https://github.com/google/btree.
type BTreeMap[K cmp.Ordered, V any] struct {
	t *btree.BTreeG[pair[K, V]]
}

const btreeDegree = 32

func NewBTreeMap[K cmp.Ordered, V any]() *BTreeMap[K, V] {
	return &BTreeMap[K, V]{btree.NewG(btreeDegree, lessPair[K, V])}
}

func (u *BTreeMap[K, V]) Insert(key K, val V) (V, bool) {
	old, ok := u.t.ReplaceOrInsert(pair[K, V]{key, val})
	return old.val, ok
}

func (u *BTreeMap[K, V]) Get(key K) (V, bool) {
	p, ok := u.t.Get(pair[K, V]{key: key})
	return p.val, ok
}

func (u *BTreeMap[K, V]) Remove(key K) (V, bool) {
	p, ok := u.t.Delete(pair[K, V]{key: key})
	return p.val, ok
}

func (u *BTreeMap[K, V]) HasKey(key K) bool {
	return u.t.Has(pair[K, V]{key: key})
}

func (u *BTreeMap[K, V]) Size() int {
	return u.t.Len()
}

func (u *BTreeMap[K, V]) Clear() {
	u.t.Clear(false)
}

// Keys returns the keys in ascending order.
func (u *BTreeMap[K, V]) Keys() []K {
	keys := make([]K, 0, u.t.Len())
	u.t.Ascend(func(p pair[K, V]) bool {
		keys = append(keys, p.key)
		return true
	})
	return keys
}

type llrbItem[K cmp.Ordered, V any] pair[K, V]

func (i llrbItem[K, V]) Less(than llrb.Item) bool {
	return i.key < than.(llrbItem[K, V]).key
}

// LLRBMap is an ordered map on the left-leaning red-black tree from https://github.com/petar/GoLLRB.
type LLRBMap[K cmp.Ordered, V any] struct {
	t *llrb.LLRB
}

func NewLLRBMap[K cmp.Ordered, V any]() *LLRBMap[K, V] {
	return &LLRBMap[K, V]{llrb.New()}
}

func (u *LLRBMap[K, V]) Insert(key K, val V) (V, bool) {
	if old := u.t.ReplaceOrInsert(llrbItem[K, V]{key, val}); old != nil {
		return old.(llrbItem[K, V]).val, true
	}
	return *new(V), false
}

func (u *LLRBMap[K, V]) Get(key K) (V, bool) {
	if it := u.t.Get(llrbItem[K, V]{key: key}); it != nil {
		return it.(llrbItem[K, V]).val, true
	}
	return *new(V), false
}

func (u *LLRBMap[K, V]) Remove(key K) (V, bool) {
	if it := u.t.Delete(llrbItem[K, V]{key: key}); it != nil {
		return it.(llrbItem[K, V]).val, true
	}
	return *new(V), false
}

func (u *LLRBMap[K, V]) HasKey(key K) bool {
	return u.t.Has(llrbItem[K, V]{key: key})
}

func (u *LLRBMap[K, V]) Size() int {
	return u.t.Len()
}

func (u *LLRBMap[K, V]) Clear() {
	u.t = llrb.New()
}
