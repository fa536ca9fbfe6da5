package nova

import (
	"cmp"
	"unsafe"
)

// Ref is an owning handle to a reference-counted object. Each held Ref
// accounts for exactly one reference.
//
// Plain Go assignment copies the handle without retaining the object; use
// Clone to share ownership and Move to hand it over. A Ref must be released
// with Reset when its owner is done with it.
type Ref[T Object] struct {
	obj  T
	held bool
}

// NewRef retains obj and returns a handle to it. A nil obj yields an empty Ref.
func NewRef[T Object](obj T) Ref[T] {
	if isNilObject(obj) {
		return Ref[T]{}
	}
	IncRef(obj)
	return Ref[T]{obj: obj, held: true}
}

// Get returns the referenced object, or the zero T for an empty Ref.
func (r Ref[T]) Get() T { return r.obj }

// Valid reports whether r holds an object.
func (r Ref[T]) Valid() bool { return r.held }

// RefCount returns the referenced object's count, or 0 for an empty Ref.
func (r Ref[T]) RefCount() uint32 {
	if !r.held {
		return 0
	}
	return r.obj.base().RefCount()
}

// Clone returns a second handle sharing ownership of the same object.
func (r Ref[T]) Clone() Ref[T] {
	if r.held {
		IncRef(r.obj)
	}
	return r
}

// Assign makes r refer to src's object. The new object is retained before
// the old one is released, so assigning a Ref to itself is a no-op.
func (r *Ref[T]) Assign(src Ref[T]) {
	if src.held {
		IncRef(src.obj)
	}
	old, oldHeld := r.obj, r.held
	r.obj, r.held = src.obj, src.held
	if oldHeld {
		DecRef(old, true)
	}
}

// Move transfers ownership out of r, leaving r empty. The count is unchanged.
func (r *Ref[T]) Move() Ref[T] {
	out := *r
	*r = Ref[T]{}
	return out
}

// Reset releases r's reference and empties it.
func (r *Ref[T]) Reset() {
	if !r.held {
		return
	}
	old := r.obj
	*r = Ref[T]{}
	DecRef(old, true)
}

// Swap exchanges the objects of r and other without touching counts.
func (r *Ref[T]) Swap(other *Ref[T]) {
	*r, *other = *other, *r
}

// Addr returns the address of the referenced object's base, or 0.
func (r Ref[T]) Addr() uintptr {
	if !r.held {
		return 0
	}
	return uintptr(unsafe.Pointer(r.obj.base()))
}

// Equal reports whether r and other refer to the same object.
func (r Ref[T]) Equal(other Ref[T]) bool { return r.Addr() == other.Addr() }

// Compare orders refs by object address. Empty refs sort first.
func (r Ref[T]) Compare(other Ref[T]) int { return cmp.Compare(r.Addr(), other.Addr()) }

// Cast returns a new handle to r's object viewed as U, retaining it. It
// fails if the object does not implement U. Use it for both upcasts
// (to Object or an interface) and downcasts (to a concrete pointer type).
func Cast[U Object, T Object](r Ref[T]) (Ref[U], bool) {
	if !r.held {
		return Ref[U]{}, true
	}
	u, ok := any(r.obj).(U)
	if !ok {
		return Ref[U]{}, false
	}
	IncRef(u)
	return Ref[U]{obj: u, held: true}, true
}

// AssignCast assigns src to dst through Cast. dst is left untouched when the
// conversion fails.
func AssignCast[U Object, T Object](dst *Ref[U], src Ref[T]) bool {
	c, ok := Cast[U](src)
	if !ok {
		return false
	}
	dst.Assign(c)
	c.Reset()
	return true
}

// WeakRef observes an object without owning it. Lock yields an owning Ref
// while the object is alive and fails once its count has reached zero.
type WeakRef[T Object] struct {
	obj       T
	observing bool
}

// NewWeakRef observes r's object. The count is unchanged.
func NewWeakRef[T Object](r Ref[T]) WeakRef[T] {
	return WeakRef[T]{obj: r.obj, observing: r.held}
}

// Lock returns an owning Ref to the observed object if it is still alive.
func (w WeakRef[T]) Lock() (Ref[T], bool) {
	if !w.observing {
		return Ref[T]{}, false
	}
	b := w.obj.base()
	for {
		n := b.refs.Load()
		if n == 0 || b.destroyed.Load() {
			return Ref[T]{}, false
		}
		if b.refs.CompareAndSwap(n, n+1) {
			return Ref[T]{obj: w.obj, held: true}, true
		}
	}
}

// Expired reports whether the observed object is gone or w was released.
func (w WeakRef[T]) Expired() bool {
	if !w.observing {
		return true
	}
	b := w.obj.base()
	return b.refs.Load() == 0 || b.destroyed.Load()
}

// Release stops observing. Raw still returns the last observed object so it
// can be inspected, but Lock fails from now on.
func (w *WeakRef[T]) Release() { w.observing = false }

// Raw returns the observed object without any liveness guarantee.
func (w WeakRef[T]) Raw() T { return w.obj }
