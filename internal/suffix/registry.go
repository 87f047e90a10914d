package suffix

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/funvibe/sufx/internal/object"
)

// Key identifies a registration: the owner kind and the suffix name.
type Key struct {
	Kind *object.Kind
	Name string
}

// Definition is the input to Register. A nil Backend means the registry
// default.
type Definition struct {
	Kind    *object.Kind
	Name    string
	Handler Handler
	Strict  bool
	Backend Backend
}

// Registration is a live suffix. It remembers the backend that installed
// it and the state that backend displaced, so unregistration restores the
// table exactly.
type Registration struct {
	ID     uuid.UUID
	Key    Key
	Strict bool

	backend     Backend
	state       State
	shielded    bool
	shieldState State
}

// BackendName reports which backend installed this registration.
func (r *Registration) BackendName() string { return r.backend.Name() }

// Registry owns the live registrations. All operations are safe for
// concurrent use; table patching itself is mediated by the backends.
type Registry struct {
	mu      sync.Mutex
	backend Backend
	entries map[Key]*Registration
}

func NewRegistry(backend Backend) *Registry {
	if backend == nil {
		backend = DefaultBackend()
	}
	return &Registry{
		backend: backend,
		entries: make(map[Key]*Registration),
	}
}

// Backend returns the registry's default backend.
func (r *Registry) Backend() Backend { return r.backend }

// Register installs a suffix. It fails without side effects on a duplicate
// key, a reserved name, or a backend refusal. Registrations on the none
// kind also install the meta-kind shield.
func (r *Registry) Register(def Definition) (*Registration, error) {
	if def.Kind == nil {
		return nil, errors.New("registration needs a kind")
	}
	if def.Name == "" {
		return nil, errors.New("registration needs a suffix name")
	}
	if def.Handler == nil {
		return nil, errors.New("registration needs a handler")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := Key{Kind: def.Kind, Name: def.Name}
	if _, dup := r.entries[key]; dup {
		return nil, alreadyRegistered(def.Kind, def.Name)
	}
	for t := def.Kind; t != nil; t = t.Parent() {
		if entry, ok := t.Table().Entry(def.Name); ok {
			if _, builtin := entry.(*object.BuiltinAttribute); builtin {
				return nil, reservedName(t, def.Name)
			}
		}
	}
	// The kind tables are process-wide, registries are not. A non-builtin
	// entry or miss hook for the name means another registry holds a live
	// registration for this key.
	if entry, ok := def.Kind.Table().Entry(def.Name); ok {
		if _, builtin := entry.(*object.BuiltinAttribute); !builtin {
			return nil, alreadyRegistered(def.Kind, def.Name)
		}
	}
	if _, ok := def.Kind.Table().MissHook(def.Name); ok {
		return nil, alreadyRegistered(def.Kind, def.Name)
	}

	backend := def.Backend
	if backend == nil {
		backend = r.backend
	}

	acc := &accessor{
		kind:    def.Kind,
		name:    def.Name,
		handler: def.Handler,
		strict:  def.Strict,
	}
	state, err := backend.Install(def.Kind, def.Name, acc)
	if err != nil {
		return nil, err
	}

	reg := &Registration{
		ID:      uuid.New(),
		Key:     key,
		Strict:  def.Strict,
		backend: backend,
		state:   state,
	}
	if def.Kind == object.NoneKind {
		reg.shielded = true
		reg.shieldState = installShield(def.Name)
	}

	r.entries[key] = reg
	return reg, nil
}

// Unregister removes the suffix registered for exactly (kind, name),
// restoring whatever the installation displaced.
func (r *Registry) Unregister(kind *object.Kind, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unregisterLocked(Key{Kind: kind, Name: name})
}

func (r *Registry) unregisterLocked(key Key) error {
	reg, ok := r.entries[key]
	if !ok {
		return notRegistered(key.Kind, key.Name)
	}
	if err := reg.backend.Remove(key.Kind, key.Name, reg.state); err != nil {
		return err
	}
	if reg.shielded {
		removeShield(key.Name, reg.shieldState)
	}
	delete(r.entries, key)
	return nil
}

// IsRegistered reports whether exactly (kind, name) is registered, without
// consulting the kind hierarchy.
func (r *Registry) IsRegistered(kind *object.Kind, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[Key{Kind: kind, Name: name}]
	return ok
}

// Lookup walks kind and its ancestors for a registration of name. An exact
// match shadows a parent match.
func (r *Registry) Lookup(kind *object.Kind, name string) (*Registration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for t := kind; t != nil; t = t.Parent() {
		if reg, ok := r.entries[Key{Kind: t, Name: name}]; ok {
			return reg, true
		}
	}
	return nil, false
}

// Names returns the distinct registered suffix names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{}, len(r.entries))
	for key := range r.entries {
		seen[key.Name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterAll installs every definition or none of them: the first failure
// unwinds the registrations made so far.
func (r *Registry) RegisterAll(defs []Definition) ([]*Registration, error) {
	regs := make([]*Registration, 0, len(defs))
	for _, def := range defs {
		reg, err := r.Register(def)
		if err != nil {
			for i := len(regs) - 1; i >= 0; i-- {
				_ = r.Unregister(regs[i].Key.Kind, regs[i].Key.Name)
			}
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, nil
}

// With installs defs, runs fn, and unregisters them again in reverse order
// whatever fn returns.
func (r *Registry) With(defs []Definition, fn func() error) error {
	regs, err := r.RegisterAll(defs)
	if err != nil {
		return err
	}
	defer func() {
		for i := len(regs) - 1; i >= 0; i-- {
			_ = r.Unregister(regs[i].Key.Kind, regs[i].Key.Name)
		}
	}()
	return fn()
}

// Clear unregisters everything, keeping going past individual failures and
// returning the first error seen.
func (r *Registry) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]Key, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	var first error
	for _, key := range keys {
		if err := r.unregisterLocked(key); err != nil && first == nil {
			first = err
		}
	}
	return first
}
