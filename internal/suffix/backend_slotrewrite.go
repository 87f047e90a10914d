package suffix

import "github.com/funvibe/sufx/internal/object"

// slotRewriteBackend writes table slots directly and notifies the runtime
// by bumping the version afterwards. Skipping the Invalidate would leave
// stale cached resolutions live, which is exactly what the raw write path
// permits; this backend always pairs them. Frozen tables refuse raw writes,
// so the meta kind is out of reach here.
type slotRewriteBackend struct{}

func (slotRewriteBackend) Name() string { return BackendSlotRewrite }

func (slotRewriteBackend) Install(k *object.Kind, name string, attr object.Attribute) (State, error) {
	table := k.Table()
	if table.Frozen() {
		return State{}, backendUnavailable(BackendSlotRewrite, k, "table is frozen")
	}
	prev, existed := table.Entry(name)
	if err := table.RawPut(name, attr); err != nil {
		return State{}, backendUnavailable(BackendSlotRewrite, k, err.Error())
	}
	table.Invalidate()
	return State{Prev: prev, Existed: existed}, nil
}

func (slotRewriteBackend) Remove(k *object.Kind, name string, st State) error {
	table := k.Table()
	var err error
	if st.Existed {
		err = table.RawPut(name, st.Prev)
	} else {
		err = table.RawDelete(name)
	}
	if err != nil {
		return backendUnavailable(BackendSlotRewrite, k, err.Error())
	}
	table.Invalidate()
	return nil
}
