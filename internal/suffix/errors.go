package suffix

import (
	"errors"
	"fmt"

	"github.com/funvibe/sufx/internal/object"
)

var (
	// ErrAlreadyRegistered reports a duplicate (kind, name) registration.
	ErrAlreadyRegistered = errors.New("suffix already registered")

	// ErrReservedName reports a clash with a built-in attribute.
	ErrReservedName = errors.New("suffix name is reserved")

	// ErrNotRegistered reports an unregister of an unknown (kind, name).
	ErrNotRegistered = errors.New("suffix not registered")

	// ErrBackendUnavailable reports that the selected backend cannot patch
	// the target kind.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrNonLiteral reports a strict-mode access whose receiver was not
	// produced by a literal instruction.
	ErrNonLiteral = errors.New("receiver is not a literal")
)

func alreadyRegistered(k *object.Kind, name string) error {
	return fmt.Errorf("custom literal %q is already defined for %s values: %w",
		name, k.Name, ErrAlreadyRegistered)
}

func reservedName(k *object.Kind, name string) error {
	return fmt.Errorf("custom literal %q would shadow a built-in attribute of %s: %w",
		name, k.Name, ErrReservedName)
}

func notRegistered(k *object.Kind, name string) error {
	return fmt.Errorf("no custom literal %q is defined for %s values: %w",
		name, k.Name, ErrNotRegistered)
}

func backendUnavailable(backend string, k *object.Kind, reason string) error {
	return fmt.Errorf("backend %q cannot patch kind %s: %s: %w",
		backend, k.Name, reason, ErrBackendUnavailable)
}

func nonLiteral(k *object.Kind, name, reason string) error {
	return fmt.Errorf("the strict custom literal %q of %s values can only be invoked on literal values (%s): %w",
		name, k.Name, reason, ErrNonLiteral)
}
