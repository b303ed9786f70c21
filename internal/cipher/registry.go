package cipher

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrDuplicateOperation is returned when a name is registered twice.
var ErrDuplicateOperation = errors.New("operation already registered")

// Registry maps operation names to implementations. The zero value is not
// usable; call NewRegistry.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Operation)}
}

// Register adds op under op.Name().
func (r *Registry) Register(op Operation) error {
	if op == nil {
		return errors.New("cannot register nil operation")
	}
	name := op.Name()
	if name == "" {
		return errors.New("operation name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ops[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateOperation, name)
	}
	r.ops[name] = op
	return nil
}

func (r *Registry) Get(name string) (Operation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	return op, ok
}

// List returns the operations accepted by keep, sorted by name. A nil keep
// accepts everything.
func (r *Registry) List(keep func(Operation) bool) []Operation {
	r.mu.RLock()
	ops := make([]Operation, 0, len(r.ops))
	for _, op := range r.ops {
		if keep == nil || keep(op) {
			ops = append(ops, op)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(ops, func(a, b Operation) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return ops
}

func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ops, name)
}

// builtins holds every operation registered by this package plus anything
// added through RegisterOperation.
var builtins = NewRegistry()

// RegisterOperation adds an operation to the global registry
func RegisterOperation(op Operation) error {
	return builtins.Register(op)
}

func mustRegister(ops ...Operation) {
	for _, op := range ops {
		if err := builtins.Register(op); err != nil {
			panic(err)
		}
	}
}

// GetOperation looks up a registered operation by name
func GetOperation(name string) (Operation, bool) {
	return builtins.Get(name)
}

// ListOperations returns all registered operations sorted by name
func ListOperations() []Operation {
	return builtins.List(nil)
}

// ListOperationsByType returns operations of the given type sorted by name
func ListOperationsByType(opType OperationType) []Operation {
	return builtins.List(func(op Operation) bool { return op.Type() == opType })
}

// UnregisterOperation removes an operation from the global registry. Tests
// use it to clean up.
func UnregisterOperation(name string) {
	builtins.Unregister(name)
}
