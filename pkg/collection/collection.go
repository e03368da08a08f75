// Package collection reconciles confirmed server responses into the locally
// held order and product lists. All functions are pure: inputs are never
// mutated and callers always receive a fresh slice, so a concurrent render
// pass never observes a half-applied change.
package collection

// Keyed is any entity with a server-assigned integer identifier.
type Keyed interface {
	Key() int64
}

// ApplyCreated appends the confirmed entity, preserving insertion order.
func ApplyCreated[E Keyed](list []E, created E) []E {
	out := make([]E, 0, len(list)+1)
	out = append(out, list...)
	return append(out, created)
}

// ApplyUpdated replaces the element whose key matches, keeping its position.
// When no element matches, the list is returned unchanged; callers that need
// to distinguish a stale id should check ContainsKey first.
func ApplyUpdated[E Keyed](list []E, updated E) []E {
	if !ContainsKey(list, updated.Key()) {
		return list
	}
	out := make([]E, len(list))
	for i, e := range list {
		if e.Key() == updated.Key() {
			out[i] = updated
		} else {
			out[i] = e
		}
	}
	return out
}

// ApplyRemoved filters out the element with the given key. An absent key is
// a no-op.
func ApplyRemoved[E Keyed](list []E, key int64) []E {
	out := make([]E, 0, len(list))
	for _, e := range list {
		if e.Key() != key {
			out = append(out, e)
		}
	}
	return out
}

// ContainsKey reports whether any element of list has the given key.
func ContainsKey[E Keyed](list []E, key int64) bool {
	for _, e := range list {
		if e.Key() == key {
			return true
		}
	}
	return false
}

// Find returns the element with the given key, if present.
func Find[E Keyed](list []E, key int64) (E, bool) {
	for _, e := range list {
		if e.Key() == key {
			return e, true
		}
	}
	var zero E
	return zero, false
}

// Filter returns the elements for which keep is true, in order.
func Filter[E Keyed](list []E, keep func(E) bool) []E {
	out := make([]E, 0, len(list))
	for _, e := range list {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
