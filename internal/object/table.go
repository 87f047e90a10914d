package object

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
)

// ErrFrozenTable is returned by raw slot operations on tables that do not
// permit direct rewriting (the meta kind's table).
var ErrFrozenTable = errors.New("dispatch table is frozen")

// Attribute is a named entry of a kind's dispatch table. Get mediates a
// read: instance is the receiver, or TheNone when the attribute is read
// off the kind object itself; owner is the kind whose table held the entry.
type Attribute interface {
	Get(site AccessSite, instance Object, owner *Kind) (Object, error)
}

// DataAttribute is an Attribute that also accepts writes. Data attributes
// installed on the meta kind take precedence over kind-table entries during
// kind-object lookup, which is what the none-kind ambiguity fix relies on.
type DataAttribute interface {
	Attribute
	Set(instance Object, value Object) error
}

// AccessSite describes the call site of an attribute read for strict-mode
// classification. A nil AccessSite means the read did not come from
// executing bytecode.
type AccessSite interface {
	// LastInstruction reports the most recently completed instruction in
	// the frame performing the read along with the chunk format it was
	// encoded under. ok is false when there is no preceding instruction.
	LastInstruction() (op byte, format uint16, ok bool)
}

// DispatchTable is the per-kind attribute table. Reads are lock-free;
// mutation happens by copy-and-swap, so concurrent readers always see a
// consistent snapshot. Guarded mutators bump the table version, which the
// VM's attribute cache validates against. Raw slot writes deliberately skip
// the bump and rely on the caller issuing Invalidate afterwards.
type DispatchTable struct {
	writeMu sync.Mutex
	entries atomic.Value // map[string]Attribute
	hooks   atomic.Value // map[string]Attribute
	version atomic.Uint64
	frozen  bool
}

func NewDispatchTable(frozen bool) *DispatchTable {
	t := &DispatchTable{frozen: frozen}
	t.entries.Store(map[string]Attribute{})
	t.hooks.Store(map[string]Attribute{})
	return t
}

// Frozen reports whether raw slot rewriting is forbidden on this table.
func (t *DispatchTable) Frozen() bool { return t.frozen }

// Version returns the current invalidation counter.
func (t *DispatchTable) Version() uint64 { return t.version.Load() }

// Invalidate bumps the invalidation counter, forcing cached lookups against
// this table to re-resolve. Required after every raw slot write.
func (t *DispatchTable) Invalidate() { t.version.Add(1) }

func (t *DispatchTable) entriesMap() map[string]Attribute {
	return t.entries.Load().(map[string]Attribute)
}

func (t *DispatchTable) hooksMap() map[string]Attribute {
	return t.hooks.Load().(map[string]Attribute)
}

// Entry returns the table entry for name, not consulting miss hooks.
func (t *DispatchTable) Entry(name string) (Attribute, bool) {
	attr, ok := t.entriesMap()[name]
	return attr, ok
}

// MissHook returns the miss hook for name, if any.
func (t *DispatchTable) MissHook(name string) (Attribute, bool) {
	attr, ok := t.hooksMap()[name]
	return attr, ok
}

// Swap installs attr under name through the guarded path, returning the
// previous entry. The version is bumped.
func (t *DispatchTable) Swap(name string, attr Attribute) (prev Attribute, existed bool) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	old := t.entriesMap()
	prev, existed = old[name]
	next := make(map[string]Attribute, len(old)+1)
	for k, v := range old {
		next[k] = v
	}
	next[name] = attr
	t.entries.Store(next)
	t.version.Add(1)
	return prev, existed
}

// Delete removes name through the guarded path. The version is bumped.
func (t *DispatchTable) Delete(name string) (prev Attribute, existed bool) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	old := t.entriesMap()
	prev, existed = old[name]
	if !existed {
		return nil, false
	}
	next := make(map[string]Attribute, len(old)-1)
	for k, v := range old {
		if k != name {
			next[k] = v
		}
	}
	t.entries.Store(next)
	t.version.Add(1)
	return prev, existed
}

// RawPut writes the slot for name directly, without touching the version.
// The caller owns the follow-up Invalidate; skipping it leaves stale
// cached lookups live.
func (t *DispatchTable) RawPut(name string, attr Attribute) error {
	if t.frozen {
		return ErrFrozenTable
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	old := t.entriesMap()
	next := make(map[string]Attribute, len(old)+1)
	for k, v := range old {
		next[k] = v
	}
	next[name] = attr
	t.entries.Store(next)
	return nil
}

// RawDelete removes the slot for name directly, without touching the
// version. Same Invalidate contract as RawPut.
func (t *DispatchTable) RawDelete(name string) error {
	if t.frozen {
		return ErrFrozenTable
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	old := t.entriesMap()
	if _, ok := old[name]; !ok {
		return nil
	}
	next := make(map[string]Attribute, len(old)-1)
	for k, v := range old {
		if k != name {
			next[k] = v
		}
	}
	t.entries.Store(next)
	return nil
}

// AddMissHook registers a fallback consulted only when the entry lookup
// misses. One hook per name.
func (t *DispatchTable) AddMissHook(name string, attr Attribute) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	old := t.hooksMap()
	if _, ok := old[name]; ok {
		return errors.New("miss hook already installed for " + name)
	}
	next := make(map[string]Attribute, len(old)+1)
	for k, v := range old {
		next[k] = v
	}
	next[name] = attr
	t.hooks.Store(next)
	t.version.Add(1)
	return nil
}

// RemoveMissHook removes the fallback for name.
func (t *DispatchTable) RemoveMissHook(name string) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	old := t.hooksMap()
	if _, ok := old[name]; !ok {
		return errors.New("no miss hook installed for " + name)
	}
	next := make(map[string]Attribute, len(old)-1)
	for k, v := range old {
		if k != name {
			next[k] = v
		}
	}
	t.hooks.Store(next)
	t.version.Add(1)
	return nil
}

// Names returns all entry names, sorted.
func (t *DispatchTable) Names() []string {
	m := t.entriesMap()
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
