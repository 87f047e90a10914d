package suffix

import (
	"fmt"

	"github.com/funvibe/sufx/internal/object"
)

// noneShield disambiguates none-kind registrations. The attribute protocol
// passes the none singleton as the instance when an attribute is read off a
// kind object, so a none-kind accessor cannot tell `none.s` from `None.s`
// by its arguments alone. The shield is a set-capable attribute installed
// one level up, on the meta kind, where it takes precedence for every
// kind-object read of the suffix name. At that level the receiver IS the
// kind object, so the ambiguity is gone: none-kind reads get the
// placeholder, every other kind is delegated back to its own chain.
type noneShield struct {
	name string
}

func (s *noneShield) Get(site object.AccessSite, instance object.Object, owner *object.Kind) (object.Object, error) {
	k, ok := instance.(*object.Kind)
	if !ok {
		return object.TheNone, nil
	}
	if k == object.NoneKind {
		return object.TheNone, nil
	}
	for t := k; t != nil; t = t.Parent() {
		if attr, ok := t.Table().Entry(s.name); ok {
			return attr.Get(site, object.TheNone, t)
		}
	}
	for t := k; t != nil; t = t.Parent() {
		if hook, ok := t.Table().MissHook(s.name); ok {
			return hook.Get(site, object.TheNone, t)
		}
	}
	return nil, fmt.Errorf("kind %s has no attribute %q: %w", k.Name, s.name, object.ErrNoAttribute)
}

func (s *noneShield) Set(instance, value object.Object) error {
	return fmt.Errorf("attribute %q of kind objects is read-only", s.name)
}

// installShield places the shield for name on the meta kind through the
// guarded path, which works on the frozen table. The displaced entry is
// returned for restoration at unregister time.
func installShield(name string) State {
	prev, existed := object.TypeKind.Table().Swap(name, &noneShield{name: name})
	return State{Prev: prev, Existed: existed}
}

func removeShield(name string, st State) {
	if st.Existed {
		object.TypeKind.Table().Swap(name, st.Prev)
		return
	}
	object.TypeKind.Table().Delete(name)
}
