// Package routeindex implements the two-tier candidate index described
// by the matching engine's route index component: literal paths are
// served by an immutable, xxhash-keyed, open-addressed hash table,
// while parameterized and prefix-wildcard paths are indexed by their
// static prefix in a radix tree. Both tiers are rebuilt wholesale on
// every mutation and published as a single immutable snapshot, so that
// concurrent lookups never observe a partially updated index.
package routeindex

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/routeforge/matchrouter/pathpattern"
	"github.com/routeforge/matchrouter/radix"
)

// Entry is one route's presence in the index: its compiled path
// pattern plus enough bookkeeping to order candidates and recover the
// owning route.
type Entry struct {
	Pattern  *pathpattern.Pattern
	Priority int
	Seq      uint64
	RouteID  string
	Payload  any
}

// Index is an immutable snapshot of every indexed route. Lookups never
// lock; a new Index is built and published atomically by the caller
// (the Router) on every mutation.
type Index struct {
	exactGroups  map[string][]*Entry
	prefixGroups map[string][]*Entry

	exact *exactTable
	tree  *radix.Tree
}

// Empty returns a usable, empty Index.
func Empty() *Index {
	return build(nil, nil)
}

// Candidates returns every entry whose pattern could plausibly match
// path, ready for the matcher to walk in order: exact-literal matches
// first, then parameterized/wildcard candidates from the deepest
// (most specific) matching static prefix down to the shallowest.
// Within each of those groups entries are already ordered by
// descending Priority, then ascending insertion sequence (insertSorted
// maintains that order on every write), so the concatenation alone
// gives the full ordering: exact beats any patterned route, a deeper
// prefix beats a shallower one, and only within one group does
// Priority (then insertion order) break the tie.
func (idx *Index) Candidates(path string) []*Entry {
	var out []*Entry

	if hits, ok := idx.exact.get(path); ok {
		out = append(out, hits...)
	}

	for _, hit := range idx.tree.LongestPrefixWalk(path) {
		out = append(out, hit.Value.([]*Entry)...)
	}

	return out
}

// WithAdded returns a new Index containing e in addition to every
// entry already present.
func (idx *Index) WithAdded(e *Entry) *Index {
	exact, prefix := idx.cloneGroups()
	key, isExact := groupKey(e.Pattern)

	if isExact {
		exact[key] = insertSorted(exact[key], e)
	} else {
		prefix[key] = insertSorted(prefix[key], e)
	}

	return build(exact, prefix)
}

// WithRemoved returns a new Index with every entry matching routeID
// removed. ok reports whether anything was actually removed.
func (idx *Index) WithRemoved(routeID string) (next *Index, ok bool) {
	exact, prefix := idx.cloneGroups()
	removed := false

	for k, entries := range exact {
		filtered, n := removeByRouteID(entries, routeID)
		if n > 0 {
			removed = true
			if len(filtered) == 0 {
				delete(exact, k)
			} else {
				exact[k] = filtered
			}
		}
	}
	for k, entries := range prefix {
		filtered, n := removeByRouteID(entries, routeID)
		if n > 0 {
			removed = true
			if len(filtered) == 0 {
				delete(prefix, k)
			} else {
				prefix[k] = filtered
			}
		}
	}

	if !removed {
		return idx, false
	}
	return build(exact, prefix), true
}

// All returns every entry currently indexed, in no particular order.
func (idx *Index) All() []*Entry {
	var out []*Entry
	for _, entries := range idx.exactGroups {
		out = append(out, entries...)
	}
	for _, entries := range idx.prefixGroups {
		out = append(out, entries...)
	}
	return out
}

func (idx *Index) cloneGroups() (map[string][]*Entry, map[string][]*Entry) {
	exact := make(map[string][]*Entry, len(idx.exactGroups))
	for k, v := range idx.exactGroups {
		exact[k] = append([]*Entry(nil), v...)
	}
	prefix := make(map[string][]*Entry, len(idx.prefixGroups))
	for k, v := range idx.prefixGroups {
		prefix[k] = append([]*Entry(nil), v...)
	}
	return exact, prefix
}

func build(exact, prefix map[string][]*Entry) *Index {
	if exact == nil {
		exact = map[string][]*Entry{}
	}
	if prefix == nil {
		prefix = map[string][]*Entry{}
	}

	idx := &Index{
		exactGroups:  exact,
		prefixGroups: prefix,
		exact:        newExactTable(exact),
		tree:         &radix.Tree{},
	}
	for prefixKey, entries := range prefix {
		idx.tree.Insert(prefixKey, entries)
	}
	return idx
}

// groupKey returns the index key for p and whether it belongs in the
// exact tier (true) or the prefix tier (false).
//
// A trailing slash is trimmed off a prefix-tier key: the static prefix
// of "/prefix/*name" is "/prefix/", which is one character too long to
// be a prefix of the equally-valid request path "/prefix" (the
// terminal catch-all's empty-remainder case). Indexing the
// slash-trimmed form makes the radix tree a superset filter; the
// authoritative check is still the pattern's own token match.
func groupKey(p *pathpattern.Pattern) (string, bool) {
	if p.Kind == pathpattern.Literal {
		return p.Literal, true
	}
	return strings.TrimSuffix(p.StaticPrefix, "/"), false
}

// insertSorted inserts e into entries, maintaining descending-priority,
// ascending-sequence order.
func insertSorted(entries []*Entry, e *Entry) []*Entry {
	entries = append(entries, e)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Seq < entries[j].Seq
	})
	return entries
}

func removeByRouteID(entries []*Entry, routeID string) ([]*Entry, int) {
	out := entries[:0:0]
	removed := 0
	for _, e := range entries {
		if e.RouteID == routeID {
			removed++
			continue
		}
		out = append(out, e)
	}
	return out, removed
}

// exactTable is a fixed-size, open-addressed hash table keyed by the
// xxhash of a literal path. It is built once from a snapshot of
// entries and never mutated; a new table is built wholesale whenever
// the index changes.
type exactTable struct {
	keys   []string
	vals   [][]*Entry
	filled []bool
	mask   uint64
}

func newExactTable(groups map[string][]*Entry) *exactTable {
	size := nextPowerOfTwo(len(groups)*2 + 8)
	t := &exactTable{
		keys:   make([]string, size),
		vals:   make([][]*Entry, size),
		filled: make([]bool, size),
		mask:   uint64(size - 1),
	}
	for k, v := range groups {
		t.insert(k, v)
	}
	return t
}

func (t *exactTable) insert(key string, entries []*Entry) {
	h := xxhash.Sum64String(key)
	i := h & t.mask
	for t.filled[i] {
		i = (i + 1) & t.mask
	}
	t.keys[i] = key
	t.vals[i] = entries
	t.filled[i] = true
}

func (t *exactTable) get(key string) ([]*Entry, bool) {
	if len(t.keys) == 0 {
		return nil, false
	}
	h := xxhash.Sum64String(key)
	i := h & t.mask
	for t.filled[i] {
		if t.keys[i] == key {
			return t.vals[i], true
		}
		i = (i + 1) & t.mask
	}
	return nil, false
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
