/*
Package Maps defines the associative container contract shared by the maps in this module and by the third-party maps they are measured against.

# Absence
A missing key is never an error. Lookups return the zero value together with false, the same way the builtin map's comma-ok form does.

# Concurrency
Nothing here is safe for concurrent mutation. Callers that need it should wrap a Map in their own lock or shard it.
*/
package Maps

// Map is a unique-key associative container.
type Map[K comparable, V any] interface {
	// Insert stores val under key. It returns the value it replaced and true, or the zero value and false when key was new.
	Insert(key K, val V) (V, bool)
	Get(key K) (V, bool)
	// Remove deletes key and returns the removed value and true, or the zero value and false when key was absent.
	Remove(key K) (V, bool)
	HasKey(key K) bool
	Size() int
	Clear()
}
