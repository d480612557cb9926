// SPDX-License-Identifier: MPL-2.0

package romap

import (
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"
	"strings"
)

type (
	// Copier is the capability interface for values that know how to produce
	// a shallow copy of themselves. ROMap stores and returns copies of Copier
	// values instead of the caller's live reference; everything else (except
	// plain maps and slices, which get a one-level clone) is kept by reference.
	Copier interface {
		Copy() any
	}

	// ROMap is a string-keyed map with per-entry read-only protection.
	//
	// Every access parses its raw key for the underscore prefix protocol:
	// "key" is a normal-mode access, "_key" and "__key" are under-mode
	// accesses targeting the base key with the prefix stripped. Only the
	// first two characters are inspected; further underscores belong to the
	// base key. Under-mode writes create or replace the entry and set its
	// protection from the prefix (double sets, single clears); under-mode
	// deletes always succeed for existing entries. Normal-mode writes only
	// update existing unprotected entries, and normal-mode deletes are
	// always rejected.
	ROMap struct {
		keys      []string // base keys in first-insertion order
		entries   map[string]any
		protected map[string]struct{}
	}

	// parsedKey is the result of applying the underscore prefix protocol to
	// a raw key.
	parsedKey struct {
		base  string
		under bool
		dbl   bool
	}
)

// New builds an ROMap by merging the given sources left to right with
// dictionary-merge semantics: a raw key seen again keeps its first-insertion
// position but takes the later value, so the last source acts as overrides.
//
// A source may be another *ROMap (its protected entries are re-inserted with
// a "__" prefix so protection is re-derived by the prefix protocol, and its
// unprotected entries as-is), a map[string]any (keys taken literally,
// including any underscores they already carry), or any other Go map whose
// keys are strings. Keys of non-string map sources are visited in sorted
// order since Go maps carry no insertion order of their own. A source with
// non-string keys fails with WrongKeyTypeError; a non-map source fails with
// NotMappingError. Construction is all-or-nothing.
func New(sources ...any) (*ROMap, error) {
	init := newWorkDict()
	for _, src := range sources {
		if err := init.merge(src); err != nil {
			return nil, err
		}
	}

	m := &ROMap{
		entries:   make(map[string]any, len(init.keys)),
		protected: make(map[string]struct{}),
	}
	for _, raw := range init.keys {
		k := parseKey(raw)
		if k.under {
			m.storeUnder(k.base, init.vals[raw], k.dbl)
		} else {
			m.store(k.base, init.vals[raw])
		}
	}
	return m, nil
}

// Get returns the value stored for the raw key's base key.
//
// Under-mode reads return the live stored value with no copy applied (the
// owner's escape hatch); normal-mode reads return a defensive copy per the
// copy policy. A missing base key fails with KeyNotFoundError in both modes.
func (m *ROMap) Get(raw string) (any, error) {
	k := parseKey(raw)
	val, ok := m.entries[k.base]
	if !ok {
		return nil, &KeyNotFoundError{Key: k.base}
	}
	if k.under {
		return val, nil
	}
	return copyValue(val), nil
}

// Set stores a value for the raw key's base key.
//
// Under-mode writes always succeed: they create the entry if needed, store a
// copy of the value, and set the protection flag from the prefix (this is
// the only way to toggle protection). Normal-mode writes update existing
// unprotected entries only: a protected entry fails with ReadOnlyEntryError
// and a missing one with AdditionNotAllowedError, both leaving the map
// unchanged.
func (m *ROMap) Set(raw string, val any) error {
	k := parseKey(raw)
	if k.under {
		m.storeUnder(k.base, val, k.dbl)
		return nil
	}
	if _, ok := m.entries[k.base]; !ok {
		return &AdditionNotAllowedError{Key: k.base}
	}
	if _, ro := m.protected[k.base]; ro {
		return &ReadOnlyEntryError{Key: k.base}
	}
	m.entries[k.base] = copyValue(val)
	return nil
}

// Delete removes the entry for the raw key's base key.
//
// Under-mode deletes bypass protection and always succeed for existing
// entries. Normal-mode deletes are never permitted: an existing entry fails
// with DeletionNotAllowedError. A missing base key fails with
// KeyNotFoundError in both modes.
func (m *ROMap) Delete(raw string) error {
	k := parseKey(raw)
	if _, ok := m.entries[k.base]; !ok {
		return &KeyNotFoundError{Key: k.base}
	}
	if !k.under {
		return &DeletionNotAllowedError{Key: k.base}
	}
	delete(m.protected, k.base)
	delete(m.entries, k.base)
	if i := slices.Index(m.keys, k.base); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
	return nil
}

// Len returns the number of entries.
func (m *ROMap) Len() int { return len(m.entries) }

// Keys returns an iterator over all base keys in insertion order. The
// iterator is finite and restartable; it reflects the live map, not a
// snapshot.
func (m *ROMap) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, k := range m.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// ProtectedKeys returns an iterator over the currently protected base keys.
// Order is unspecified; the iterator reflects the live protected set and is
// restartable.
func (m *ROMap) ProtectedKeys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range m.protected {
			if !yield(k) {
				return
			}
		}
	}
}

// Map returns a plain map snapshot equivalent to a normal-mode Get of every
// key, i.e. with the read copy policy applied to each value.
func (m *ROMap) Map() map[string]any {
	out := make(map[string]any, len(m.entries))
	for _, k := range m.keys {
		out[k] = copyValue(m.entries[k])
	}
	return out
}

// Clone returns a structural duplicate built by reconstructing from m as the
// sole source, so protection is re-derived through the prefix protocol and
// the copy policy applies to every value.
func (m *ROMap) Clone() *ROMap {
	c, err := New(m)
	if err != nil {
		// New never fails for an *ROMap source.
		panic(err)
	}
	return c
}

// String renders the map as "ROMap {k1*: v1, k2: v2}": protected keys first,
// each suffixed with "*", then unprotected keys, insertion order within each
// group.
func (m *ROMap) String() string {
	parts := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		if _, ro := m.protected[k]; ro {
			parts = append(parts, fmt.Sprintf("%s*: %v", k, m.entries[k]))
		}
	}
	for _, k := range m.keys {
		if _, ro := m.protected[k]; !ro {
			parts = append(parts, fmt.Sprintf("%s: %v", k, m.entries[k]))
		}
	}
	return "ROMap {" + strings.Join(parts, ", ") + "}"
}

// store writes a value under base, registering the key on first insertion.
func (m *ROMap) store(base string, val any) {
	if _, ok := m.entries[base]; !ok {
		m.keys = append(m.keys, base)
	}
	m.entries[base] = copyValue(val)
}

// storeUnder writes a value under base and sets the protection flag from dbl.
func (m *ROMap) storeUnder(base string, val any, dbl bool) {
	m.store(base, val)
	if dbl {
		m.protected[base] = struct{}{}
	} else {
		delete(m.protected, base)
	}
}

// parseKey applies the underscore prefix protocol to a raw key.
func parseKey(raw string) parsedKey {
	if !strings.HasPrefix(raw, "_") {
		return parsedKey{base: raw}
	}
	base := raw[1:]
	if strings.HasPrefix(base, "_") {
		return parsedKey{base: base[1:], under: true, dbl: true}
	}
	return parsedKey{base: base, under: true}
}

// copyValue applies the copy policy: Copier values yield their own Copy(),
// plain maps and slices get a one-level clone, everything else is returned
// unchanged. Nested mutable contents are not further isolated.
func copyValue(val any) any {
	if c, ok := val.(Copier); ok {
		return c.Copy()
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return val
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		it := rv.MapRange()
		for it.Next() {
			out.SetMapIndex(it.Key(), it.Value())
		}
		return out.Interface()
	case reflect.Slice:
		if rv.IsNil() {
			return val
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface()
	default:
		return val
	}
}

// workDict is the ordered working dictionary construction merges sources into.
// Raw keys (underscores included) stay distinct until the final insertion pass.
type workDict struct {
	keys []string
	vals map[string]any
}

func newWorkDict() *workDict {
	return &workDict{vals: make(map[string]any)}
}

// set inserts or overrides a raw key, preserving its first-insertion position.
func (w *workDict) set(raw string, val any) {
	if _, ok := w.vals[raw]; !ok {
		w.keys = append(w.keys, raw)
	}
	w.vals[raw] = val
}

// merge expands a single construction source into the working dictionary.
func (w *workDict) merge(src any) error {
	switch s := src.(type) {
	case *ROMap:
		for _, k := range s.keys {
			if _, ro := s.protected[k]; ro {
				w.set("__"+k, s.entries[k])
			}
		}
		for _, k := range s.keys {
			if _, ro := s.protected[k]; !ro {
				w.set(k, s.entries[k])
			}
		}
		return nil
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(s)) {
			w.set(k, s[k])
		}
		return nil
	}

	rv := reflect.ValueOf(src)
	if rv.Kind() != reflect.Map {
		return &NotMappingError{Value: src}
	}
	raws := make([]string, 0, rv.Len())
	vals := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		kv := it.Key()
		if kv.Kind() == reflect.Interface {
			kv = kv.Elem()
		}
		if !kv.IsValid() || kv.Kind() != reflect.String {
			return &WrongKeyTypeError{Key: it.Key().Interface()}
		}
		k := kv.String()
		raws = append(raws, k)
		vals[k] = it.Value().Interface()
	}
	slices.Sort(raws)
	for _, k := range raws {
		w.set(k, vals[k])
	}
	return nil
}
