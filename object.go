package nova

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"
)

// Object is implemented by every reference-counted engine type. Concrete
// types embed ObjectBase and provide ID.
//
// Objects are retained and released through Ref; IncRef and DecRef are the
// raw primitives underneath it. An object whose count drops to zero is
// destroyed: if it implements Destroyer, Destroy runs exactly once.
type Object interface {
	// ID names the concrete type for diagnostics.
	ID() string
	base() *ObjectBase
}

// Destroyer is implemented by objects that release resources when their
// last reference goes away.
type Destroyer interface {
	Destroy()
}

// ObjectBase holds the intrusive reference count. Embed it by value and do
// not copy it after first use.
type ObjectBase struct {
	refs      atomic.Uint32
	destroyed atomic.Bool
	registry  *Registry
}

func (o *ObjectBase) base() *ObjectBase { return o }

// RefCount returns the current reference count.
func (o *ObjectBase) RefCount() uint32 { return o.refs.Load() }

// Destroyed reports whether the object's count reached zero with
// deallocation enabled.
func (o *ObjectBase) Destroyed() bool { return o.destroyed.Load() }

// Track attaches a registry that records the object while it has at least
// one reference. Call before the first reference is taken. A nil registry
// leaves the object untracked.
func (o *ObjectBase) Track(r *Registry) { o.registry = r }

// IncRef adds a reference to obj. The first reference registers it with its
// registry.
func IncRef(obj Object) {
	b := obj.base()
	if b.refs.Add(1) == 1 && b.registry != nil {
		b.registry.track(obj)
	}
}

// DecRef drops a reference to obj. When the count reaches zero the object
// leaves its registry and, if dealloc is true, is destroyed. Releasing an
// object whose count is already zero panics with ErrRefCountUnderflow.
func DecRef(obj Object, dealloc bool) {
	b := obj.base()
	for {
		n := b.refs.Load()
		if n == 0 {
			panic(&AssertionError{
				Msg: fmt.Sprintf("DecRef on %s %p", obj.ID(), b),
				Err: ErrRefCountUnderflow,
			})
		}
		if !b.refs.CompareAndSwap(n, n-1) {
			continue
		}
		if n != 1 {
			return
		}
		if b.registry != nil {
			b.registry.untrack(obj)
		}
		if dealloc && b.destroyed.CompareAndSwap(false, true) {
			if d, ok := obj.(Destroyer); ok {
				d.Destroy()
			}
		}
		return
	}
}

// isNilObject reports whether obj is nil or a typed nil pointer.
func isNilObject(obj Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// TraceRefs logs obj's identity, address and reference count.
func TraceRefs(logger *slog.Logger, obj Object) {
	b := obj.base()
	logger.Info("object",
		"id", obj.ID(),
		"addr", fmt.Sprintf("%p", b),
		"refs", b.RefCount())
}

// Registry records live reference-counted objects for leak auditing.
// Objects enter on their first reference and leave when the count returns
// to zero. A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	objects map[*ObjectBase]Object
	logger  *slog.Logger
}

// NewRegistry creates an empty registry that traces to logger. A nil logger
// uses the package logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = Logger()
	}
	return &Registry{
		objects: make(map[*ObjectBase]Object),
		logger:  logger,
	}
}

func (r *Registry) track(obj Object) {
	r.mu.Lock()
	r.objects[obj.base()] = obj
	r.mu.Unlock()
}

func (r *Registry) untrack(obj Object) {
	r.mu.Lock()
	delete(r.objects, obj.base())
	r.mu.Unlock()
}

// Len returns the number of live tracked objects.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.objects)
}

// Contains reports whether obj is currently tracked.
func (r *Registry) Contains(obj Object) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.objects[obj.base()]
	return ok
}

// Alive returns the tracked objects ordered by ID.
func (r *Registry) Alive() []Object {
	r.mu.Lock()
	out := make([]Object, 0, len(r.objects))
	for _, obj := range r.objects {
		out = append(out, obj)
	}
	r.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// TraceAlive logs the number of live objects followed by one TraceRefs
// line per object, ordered by ID.
func (r *Registry) TraceAlive() {
	alive := r.Alive()
	r.logger.Info("alive objects", "count", len(alive))
	for _, obj := range alive {
		TraceRefs(r.logger, obj)
	}
}
