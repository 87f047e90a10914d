package sufx

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/sufx/internal/lexer"
	"github.com/funvibe/sufx/internal/object"
	"github.com/funvibe/sufx/internal/parser"
	"github.com/funvibe/sufx/internal/suffix"
	"github.com/funvibe/sufx/internal/vm"
)

// Runtime is the embedding API: a suffix registry bound to a persistent
// virtual machine. Globals survive across Eval calls, so a Runtime behaves
// like one long session.
type Runtime struct {
	registry *suffix.Registry
	machine  *vm.VM
}

type options struct {
	backend suffix.Backend
	out     io.Writer
}

// Option configures a Runtime at construction time.
type Option func(*options) error

// WithBackend selects the registration backend by name.
func WithBackend(name string) Option {
	return func(o *options) error {
		b, err := suffix.ForName(name)
		if err != nil {
			return err
		}
		o.backend = b
		return nil
	}
}

// WithOutput redirects evaluation output.
func WithOutput(w io.Writer) Option {
	return func(o *options) error {
		o.out = w
		return nil
	}
}

func New(opts ...Option) (*Runtime, error) {
	o := options{out: os.Stdout}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	machine := vm.New()
	machine.SetOutput(o.out)
	return &Runtime{
		registry: suffix.NewRegistry(o.backend),
		machine:  machine,
	}, nil
}

// Registry exposes the underlying registry for direct use.
func (r *Runtime) Registry() *suffix.Registry { return r.registry }

// Output returns the writer configured with WithOutput (os.Stdout by
// default). Callers printing evaluation results should write here.
func (r *Runtime) Output() io.Writer { return r.machine.Output() }

// Register installs a suffix handler.
func (r *Runtime) Register(def suffix.Definition) (*suffix.Registration, error) {
	return r.registry.Register(def)
}

// Unregister removes the suffix registered for exactly (kind, name).
func (r *Runtime) Unregister(kind *object.Kind, name string) error {
	return r.registry.Unregister(kind, name)
}

// Lookup finds the registration serving name for kind, honoring the kind
// hierarchy.
func (r *Runtime) Lookup(kind *object.Kind, name string) (*suffix.Registration, bool) {
	return r.registry.Lookup(kind, name)
}

// With installs defs for the duration of fn only.
func (r *Runtime) With(defs []suffix.Definition, fn func() error) error {
	return r.registry.With(defs, fn)
}

// Eval lexes, parses, compiles and runs src, returning the value of its
// last expression statement.
func (r *Runtime) Eval(ctx context.Context, src string) (object.Object, error) {
	return r.evalNamed(ctx, "<eval>", src)
}

// EvalFile evaluates the source file at path.
func (r *Runtime) EvalFile(ctx context.Context, path string) (object.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return r.evalNamed(ctx, path, string(data))
}

func (r *Runtime) evalNamed(ctx context.Context, name, src string) (object.Object, error) {
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("%s: parse failed:\n  %s", name, strings.Join(errs, "\n  "))
	}
	program.File = name

	chunk, err := vm.NewCompiler().Compile(program)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return r.machine.Run(ctx, chunk)
}

// Global returns the value bound to name in the runtime's global scope.
func (r *Runtime) Global(name string) (object.Object, bool) {
	return r.machine.Global(name)
}
