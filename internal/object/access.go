package object

import (
	"errors"
	"fmt"
)

// ErrNoAttribute is wrapped by every failed attribute lookup.
var ErrNoAttribute = errors.New("no such attribute")

func noAttribute(what, name string) error {
	return fmt.Errorf("%s has no attribute %q: %w", what, name, ErrNoAttribute)
}

type tableDep struct {
	table   *DispatchTable
	version uint64
}

// Resolution is the outcome of an attribute walk: the matched entry, the
// kind whose table held it, and the versions of every table inspected on
// the way. It stays valid while none of those tables change, which makes
// it safe to cache.
type Resolution struct {
	Attr  Attribute
	Owner *Kind
	deps  []tableDep
}

// Valid reports whether every table inspected during resolution still has
// the version it had then.
func (r Resolution) Valid() bool {
	if r.Attr == nil {
		return false
	}
	for _, d := range r.deps {
		if d.table.Version() != d.version {
			return false
		}
	}
	return true
}

// ResolveInstanceAttr walks value's kind hierarchy most-specialized-first:
// table entries on the whole chain, then miss hooks on the whole chain.
// A child entry shadows a parent entry; any entry beats any hook.
func ResolveInstanceAttr(value Object, name string) (Resolution, error) {
	k := KindOf(value)
	if k == nil {
		return Resolution{}, noAttribute("value", name)
	}

	var deps []tableDep
	for t := k; t != nil; t = t.parent {
		deps = append(deps, tableDep{t.table, t.table.Version()})
		if attr, ok := t.table.Entry(name); ok {
			return Resolution{Attr: attr, Owner: t, deps: deps}, nil
		}
	}
	for t := k; t != nil; t = t.parent {
		if hook, ok := t.table.MissHook(name); ok {
			return Resolution{Attr: hook, Owner: t, deps: deps}, nil
		}
	}
	return Resolution{}, noAttribute(k.Name+" value", name)
}

// GetAttribute resolves and invokes name on value. Kind objects answer
// through the meta-kind protocol; everything else through the instance walk.
func GetAttribute(site AccessSite, value Object, name string) (Object, error) {
	if k, ok := value.(*Kind); ok {
		return getKindAttribute(site, k, name)
	}
	res, err := ResolveInstanceAttr(value, name)
	if err != nil {
		return nil, err
	}
	return res.Attr.Get(site, value, res.Owner)
}

// getKindAttribute implements kind-object lookup: set-capable entries of the
// meta kind first, then the kind's own chain with TheNone standing in for
// the absent instance, then the remaining meta entries, then miss hooks.
// The precedence of meta data attributes is what lets the none-kind helper
// shield the ambiguous kind-access path.
func getKindAttribute(site AccessSite, k *Kind, name string) (Object, error) {
	meta := TypeKind.table
	if attr, ok := meta.Entry(name); ok {
		if _, isData := attr.(DataAttribute); isData {
			return attr.Get(site, k, TypeKind)
		}
	}

	for t := k; t != nil; t = t.parent {
		if attr, ok := t.table.Entry(name); ok {
			return attr.Get(site, TheNone, t)
		}
	}

	if attr, ok := meta.Entry(name); ok {
		return attr.Get(site, k, TypeKind)
	}

	for t := k; t != nil; t = t.parent {
		if hook, ok := t.table.MissHook(name); ok {
			return hook.Get(site, TheNone, t)
		}
	}
	if hook, ok := meta.MissHook(name); ok {
		return hook.Get(site, k, TypeKind)
	}

	return nil, noAttribute("kind "+k.Name, name)
}
