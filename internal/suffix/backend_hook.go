package suffix

import "github.com/funvibe/sufx/internal/object"

// hookBackend leaves table entries alone and registers a miss hook instead.
// Hooks only fire after the whole entry chain missed, so built-ins and
// table-patched accessors keep priority. The none kind needs the meta shield
// to behave, and the shield path consults entries before hooks, so hook
// registrations there would be unreachable from kind objects; both the none
// kind and the meta kind are refused.
type hookBackend struct{}

func (hookBackend) Name() string { return BackendHook }

func (hookBackend) Install(k *object.Kind, name string, attr object.Attribute) (State, error) {
	if k == object.NoneKind {
		return State{}, backendUnavailable(BackendHook, k, "none kind requires a table entry")
	}
	if k == object.TypeKind {
		return State{}, backendUnavailable(BackendHook, k, "meta kind does not take miss hooks")
	}
	if err := k.Table().AddMissHook(name, attr); err != nil {
		return State{}, backendUnavailable(BackendHook, k, err.Error())
	}
	return State{}, nil
}

func (hookBackend) Remove(k *object.Kind, name string, st State) error {
	if err := k.Table().RemoveMissHook(name); err != nil {
		return backendUnavailable(BackendHook, k, err.Error())
	}
	return nil
}
