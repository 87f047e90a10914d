package suffix

import (
	"fmt"

	"github.com/funvibe/sufx/internal/object"
)

// State captures what a backend displaced when installing an accessor, so
// removal can restore the table to exactly its prior shape.
type State struct {
	Prev    object.Attribute
	Existed bool
}

// Backend is the patching strategy for a kind's dispatch table. Install
// must either fully take effect or leave the table untouched; Remove must
// restore the displaced state.
type Backend interface {
	Name() string
	Install(k *object.Kind, name string, attr object.Attribute) (State, error)
	Remove(k *object.Kind, name string, st State) error
}

const (
	BackendTablePatch  = "table-patch"
	BackendSlotRewrite = "slot-rewrite"
	BackendHook        = "hook"
)

// ForName returns the backend registered under name.
func ForName(name string) (Backend, error) {
	switch name {
	case BackendTablePatch:
		return tablePatchBackend{}, nil
	case BackendSlotRewrite:
		return slotRewriteBackend{}, nil
	case BackendHook:
		return hookBackend{}, nil
	}
	return nil, fmt.Errorf("unknown backend %q: %w", name, ErrBackendUnavailable)
}

// DefaultBackend is the backend used when none is configured.
func DefaultBackend() Backend { return tablePatchBackend{} }
