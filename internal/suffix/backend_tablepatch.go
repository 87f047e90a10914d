package suffix

import "github.com/funvibe/sufx/internal/object"

// tablePatchBackend installs through the guarded table mutators. The swap
// bumps the table version itself, so cached lookups re-resolve without any
// extra step. Works on every kind, the frozen meta kind included.
type tablePatchBackend struct{}

func (tablePatchBackend) Name() string { return BackendTablePatch }

func (tablePatchBackend) Install(k *object.Kind, name string, attr object.Attribute) (State, error) {
	prev, existed := k.Table().Swap(name, attr)
	return State{Prev: prev, Existed: existed}, nil
}

func (tablePatchBackend) Remove(k *object.Kind, name string, st State) error {
	if st.Existed {
		k.Table().Swap(name, st.Prev)
		return nil
	}
	k.Table().Delete(name)
	return nil
}
