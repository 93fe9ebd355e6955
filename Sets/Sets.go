package Sets

// Set is a collection of unique elements.
type Set[E any] interface {
	// Put adds e and reports whether it was absent before.
	Put(E) bool
	Has(E) bool
	// Remove deletes e and reports whether it was present.
	Remove(E) bool
	Size() uint
	// Take returns an arbitrary element, or the zero value if the set is empty.
	Take() E
	Range(func(E) bool)
}
