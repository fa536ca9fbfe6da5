package nova

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// testObject counts how often it was destroyed.
type testObject struct {
	ObjectBase
	name     string
	destroys int
}

func (o *testObject) ID() string { return "test." + o.name }
func (o *testObject) Destroy()   { o.destroys++ }

// plainObject has no Destroy method.
type plainObject struct {
	ObjectBase
}

func (o *plainObject) ID() string { return "test.plain" }

// expectAssertion runs fn and checks it panics with an AssertionError
// wrapping target. A nil target accepts any AssertionError.
func expectAssertion(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %T is not an error", r)
		}
		var ae *AssertionError
		if !errors.As(err, &ae) {
			t.Fatalf("panic %v is not an AssertionError", err)
		}
		if target != nil && !errors.Is(err, target) {
			t.Fatalf("panic %v does not wrap %v", err, target)
		}
	}()
	fn()
}

func TestIncDecRef(t *testing.T) {
	o := &testObject{name: "a"}
	IncRef(o)
	IncRef(o)
	if got := o.RefCount(); got != 2 {
		t.Fatalf("RefCount = %d, want 2", got)
	}
	DecRef(o, true)
	if o.destroys != 0 {
		t.Fatal("destroyed with one reference left")
	}
	DecRef(o, true)
	if o.destroys != 1 {
		t.Fatalf("destroyed = %d, want 1", o.destroys)
	}
	if !o.Destroyed() {
		t.Error("Destroyed() = false after last release")
	}
}

func TestDecRefWithoutDealloc(t *testing.T) {
	o := &testObject{name: "a"}
	IncRef(o)
	DecRef(o, false)
	if o.destroys != 0 || o.Destroyed() {
		t.Error("object destroyed with dealloc=false")
	}
	if o.RefCount() != 0 {
		t.Errorf("RefCount = %d, want 0", o.RefCount())
	}
}

func TestDecRefUnderflow(t *testing.T) {
	o := &testObject{name: "a"}
	expectAssertion(t, ErrRefCountUnderflow, func() { DecRef(o, true) })

	IncRef(o)
	DecRef(o, true)
	expectAssertion(t, ErrRefCountUnderflow, func() { DecRef(o, true) })
	if o.destroys != 1 {
		t.Errorf("destroyed = %d, want 1", o.destroys)
	}
}

func TestDecRefWithoutDestroyer(t *testing.T) {
	o := &plainObject{}
	IncRef(o)
	DecRef(o, true)
	if !o.Destroyed() {
		t.Error("Destroyed() = false")
	}
}

func TestRegistryTracking(t *testing.T) {
	reg := NewRegistry(nil)
	o := &testObject{name: "a"}
	o.Track(reg)

	if reg.Contains(o) {
		t.Fatal("tracked before first reference")
	}
	for range 5 {
		IncRef(o)
	}
	if !reg.Contains(o) || reg.Len() != 1 {
		t.Fatalf("Contains = %v, Len = %d; want true, 1", reg.Contains(o), reg.Len())
	}
	for range 5 {
		DecRef(o, true)
	}
	if reg.Contains(o) || reg.Len() != 0 {
		t.Errorf("Contains = %v, Len = %d after last release; want false, 0", reg.Contains(o), reg.Len())
	}
}

func TestRegistryAliveSorted(t *testing.T) {
	reg := NewRegistry(nil)
	var objs []*testObject
	for _, name := range []string{"c", "a", "b"} {
		o := &testObject{name: name}
		o.Track(reg)
		IncRef(o)
		objs = append(objs, o)
	}
	alive := reg.Alive()
	var ids []string
	for _, o := range alive {
		ids = append(ids, o.ID())
	}
	if got, want := strings.Join(ids, ","), "test.a,test.b,test.c"; got != want {
		t.Errorf("Alive = %s, want %s", got, want)
	}
	for _, o := range objs {
		DecRef(o, true)
	}
}

func TestRegistryTraceAlive(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	reg := NewRegistry(logger)

	o := &testObject{name: "leak"}
	o.Track(reg)
	IncRef(o)
	reg.TraceAlive()

	out := buf.String()
	for _, want := range []string{"alive objects", "count=1", "id=test.leak", "refs=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output missing %q:\n%s", want, out)
		}
	}

	DecRef(o, true)
	buf.Reset()
	reg.TraceAlive()
	if strings.Contains(buf.String(), "test.leak") {
		t.Errorf("released object still traced:\n%s", buf.String())
	}
}

func TestRegistryTraceAliveOrdered(t *testing.T) {
	var buf bytes.Buffer
	reg := NewRegistry(slog.New(slog.NewTextHandler(&buf, nil)))
	names := []string{"delta", "alpha", "echo", "charlie", "bravo"}
	var objs []*testObject
	for _, name := range names {
		o := &testObject{name: name}
		o.Track(reg)
		IncRef(o)
		objs = append(objs, o)
	}
	defer func() {
		for _, o := range objs {
			DecRef(o, true)
		}
	}()

	for range 3 {
		buf.Reset()
		reg.TraceAlive()
		out := buf.String()
		last := -1
		for _, id := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
			i := strings.Index(out, "id=test."+id)
			if i < 0 || i < last {
				t.Fatalf("%s traced out of order:\n%s", id, out)
			}
			last = i
		}
	}
}

func TestUntrackedObject(t *testing.T) {
	reg := NewRegistry(nil)
	o := &testObject{name: "free"}
	IncRef(o)
	if reg.Contains(o) {
		t.Error("object without registry was tracked")
	}
	DecRef(o, true)
}

func TestConcurrentRefCounting(t *testing.T) {
	reg := NewRegistry(nil)
	o := &testObject{name: "shared"}
	o.Track(reg)
	IncRef(o)

	const workers = 8
	const rounds = 1000
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rounds {
				IncRef(o)
				DecRef(o, true)
			}
		}()
	}
	wg.Wait()

	if got := o.RefCount(); got != 1 {
		t.Fatalf("RefCount = %d, want 1", got)
	}
	if o.destroys != 0 {
		t.Fatal("destroyed while a reference was held")
	}
	DecRef(o, true)
	if o.destroys != 1 {
		t.Errorf("destroyed = %d, want 1", o.destroys)
	}
	if reg.Len() != 0 {
		t.Errorf("registry Len = %d, want 0", reg.Len())
	}
}
