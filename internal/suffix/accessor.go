package suffix

import (
	"fmt"

	"github.com/funvibe/sufx/internal/object"
)

// Handler transforms the receiver of a suffix access into its result.
type Handler func(instance object.Object) (object.Object, error)

// accessor is the table entry a registration installs. It guards the
// handler: receivers of the wrong kind get the placeholder none (the same
// behavior built-ins have for reads off a kind object), strict receivers
// get the literal check first.
type accessor struct {
	kind    *object.Kind
	name    string
	handler Handler
	strict  bool
}

func (a *accessor) Get(site object.AccessSite, instance object.Object, owner *object.Kind) (object.Object, error) {
	if !object.IsInstance(instance, a.kind) {
		// Read off a kind object, or through a subtree the registration
		// does not cover.
		return object.TheNone, nil
	}
	if a.strict {
		if err := verifyLiteral(a.kind, a.name, site); err != nil {
			return nil, err
		}
	}
	out, err := a.handler(instance)
	if err != nil {
		return nil, fmt.Errorf("custom literal %q: %w", a.name, err)
	}
	return out, nil
}
