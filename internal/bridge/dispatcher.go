package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"component-inventory-backend/internal/logger"
	"component-inventory-backend/internal/service"
)

// Dispatcher routes named operations to the category and component services.
// It serves nothing until Register is called; until then every call fails fast
// with ErrNotReady.
type Dispatcher struct {
	timeout time.Duration

	mu         sync.RWMutex
	operations map[string]operation
}

// NewDispatcher creates a dispatcher applying timeout to every invocation (0 disables it)
func NewDispatcher(timeout time.Duration) *Dispatcher {
	return &Dispatcher{timeout: timeout}
}

// Register installs the operation registry. It must be called once, after the
// database gateway is connected; later calls are rejected.
func (d *Dispatcher) Register(categories service.CategoryServiceInterface, components service.ComponentServiceInterface) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.operations != nil {
		return fmt.Errorf("bridge operations already registered")
	}
	ops := make(map[string]operation)
	for _, op := range buildOperations(categories, components) {
		ops[op.name] = op
	}
	d.operations = ops
	return nil
}

// Ready reports whether operations have been registered
func (d *Dispatcher) Ready() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.operations != nil
}

// Registered returns the registered operation names, sorted
func (d *Dispatcher) Registered() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.operations))
	for name := range d.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Verify checks that every operation the UI relies on is registered and
// returns the names that are missing
func (d *Dispatcher) Verify() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var missing []string
	for _, name := range Operations() {
		if _, ok := d.operations[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Describe returns the description and parameter summary of an operation
func (d *Dispatcher) Describe(name string) (description, params string, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	op, found := d.operations[name]
	if !found {
		return "", "", false
	}
	return op.description, op.params, true
}

// Invoke runs one operation with its positional arguments. Boundary failures
// (not ready, unknown operation, malformed arguments) are returned as errors;
// everything else, including panics, comes back as a result value.
func (d *Dispatcher) Invoke(ctx context.Context, name string, rawArgs []json.RawMessage) (result interface{}, err error) {
	d.mu.RLock()
	ready := d.operations != nil
	op, found := d.operations[name]
	d.mu.RUnlock()

	if !ready {
		return nil, ErrNotReady
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	log := logger.WithContext(ctx).WithField("operation", name)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			}).Error("operation panicked")
			result, err = op.fallback(), nil
		}
	}()

	result, err = op.handle(ctx, args{op: name, raw: rawArgs})
	log.WithField("duration_ms", time.Since(start).Milliseconds()).Debug("operation invoked")
	return result, err
}
