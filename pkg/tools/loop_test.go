package tools

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestWatchAutoNames(t *testing.T) {
	loop := NewLoopTool()

	outer := loop.Watch([]int{1, 2})
	if outer.Name() != "loop0" {
		t.Errorf("outer Name() = %q, want %q", outer.Name(), "loop0")
	}
	inner := loop.Watch([]int{3, 4})
	if inner.Name() != "loop1" {
		t.Errorf("inner Name() = %q, want %q", inner.Name(), "loop1")
	}
	if loop.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", loop.Depth())
	}
}

func TestWatchNamed(t *testing.T) {
	loop := NewLoopTool()
	it := loop.Watch([]int{1, 2}, "rows")
	if it == nil {
		t.Fatal("Watch() = nil, want an iterator")
	}
	if it.Name() != "rows" {
		t.Errorf("Name() = %q, want %q", it.Name(), "rows")
	}
}

func TestWatchNil(t *testing.T) {
	loop := NewLoopTool()
	if it := loop.Watch(nil); it != nil {
		t.Errorf("Watch(nil) = %v, want nil", it)
	}
	if loop.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", loop.Depth())
	}
}

func TestWatchLogsResolutionFailure(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)
	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, LogDebug))

	loop := NewLoopTool()
	if it := loop.Watch(nil); it != nil {
		t.Fatalf("Watch(nil) = %v, want nil", it)
	}
	if !strings.Contains(buf.String(), "cannot watch") {
		t.Errorf("expected a debug trace for the failed watch, got: %s", buf.String())
	}
}

func TestWatchEmptyName(t *testing.T) {
	loop := NewLoopTool()
	if it := loop.Watch([]int{1, 2}, ""); it != nil {
		t.Errorf("Watch(obj, \"\") = %v, want nil", it)
	}
	if loop.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", loop.Depth())
	}
}

func TestStopCurrent(t *testing.T) {
	loop := NewLoopTool()
	outer := loop.Watch([]int{1, 2, 3})
	inner := loop.Watch([]int{4, 5, 6})

	inner.Next()
	loop.Stop()

	if inner.HasNext() {
		t.Error("inner HasNext() after Stop = true, want false")
	}
	if !outer.HasNext() {
		t.Error("outer HasNext() = false, want true")
	}
}

func TestStopOnEmptyStack(t *testing.T) {
	loop := NewLoopTool()
	loop.Stop() // must not panic
	loop.StopAll()
	loop.StopTo("nothing")
	loop.Skip(3)
}

func TestStopNamed(t *testing.T) {
	loop := NewLoopTool()
	outer := loop.Watch([]int{1, 2, 3}, "outer")
	inner := loop.Watch([]int{4, 5, 6}, "inner")

	loop.Stop("outer")

	if !inner.HasNext() {
		t.Error("inner HasNext() = false, want true")
	}
	if outer.HasNext() {
		t.Error("outer HasNext() after Stop(outer) = true, want false")
	}
}

func TestStopUnknownName(t *testing.T) {
	loop := NewLoopTool()
	it := loop.Watch([]int{1, 2}, "known")

	loop.Stop("unknown")
	if !it.HasNext() {
		t.Error("HasNext() = false, want true; Stop with an unknown name must not touch other loops")
	}
}

func TestStopAll(t *testing.T) {
	loop := NewLoopTool()
	a := loop.Watch([]int{1, 2})
	b := loop.Watch([]int{3, 4})
	c := loop.Watch([]int{5, 6})

	loop.StopAll()

	for i, it := range []*ManagedIterator{a, b, c} {
		if it.HasNext() {
			t.Errorf("iterator %d still has elements after StopAll", i)
		}
	}
	if loop.Depth() != 0 {
		t.Errorf("Depth() after draining stopped loops = %d, want 0", loop.Depth())
	}
}

func TestStopTo(t *testing.T) {
	loop := NewLoopTool()
	grand := loop.Watch([]int{1, 2}, "grand")
	parent := loop.Watch([]int{3, 4}, "parent")
	child := loop.Watch([]int{5, 6}, "child")

	loop.StopTo("parent")

	if child.HasNext() {
		t.Error("child HasNext() = true, want false; StopTo stops nested loops")
	}
	if parent.HasNext() {
		t.Error("parent HasNext() = true, want false; StopTo stops the named loop")
	}
	if !grand.HasNext() {
		t.Error("grand HasNext() = false, want true; StopTo must leave enclosing loops alone")
	}
}

func TestStopToKeepsStackOrder(t *testing.T) {
	loop := NewLoopTool()
	loop.Watch([]int{1, 2}, "grand")
	loop.Watch([]int{3, 4}, "parent")
	loop.Watch([]int{5, 6}, "child")

	loop.StopTo("parent")

	// no entry may be lost or reordered by the stop itself
	if loop.Depth() != 3 {
		t.Fatalf("Depth() after StopTo = %d, want 3", loop.Depth())
	}
	var names []string
	for _, it := range loop.stack {
		names = append(names, it.Name())
	}
	want := []string{"grand", "parent", "child"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("stack order = %v, want %v", names, want)
	}
}

func TestStopToTop(t *testing.T) {
	loop := NewLoopTool()
	outer := loop.Watch([]int{1, 2}, "outer")
	inner := loop.Watch([]int{3, 4}, "inner")

	loop.StopTo("inner")

	if inner.HasNext() {
		t.Error("inner HasNext() = true, want false")
	}
	if !outer.HasNext() {
		t.Error("outer HasNext() = false, want true")
	}
}

func TestStopToUnknownName(t *testing.T) {
	loop := NewLoopTool()
	a := loop.Watch([]int{1, 2}, "a")
	b := loop.Watch([]int{3, 4}, "b")

	loop.StopTo("missing")

	if !a.HasNext() || !b.HasNext() {
		t.Error("StopTo with an unknown name must not stop anything")
	}
}

func TestSkip(t *testing.T) {
	loop := NewLoopTool()
	it := loop.Watch([]int{1, 2, 3, 4, 5})

	loop.Skip(2)

	elem, err := it.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if elem != 3 {
		t.Errorf("Next() after Skip(2) = %v, want 3", elem)
	}
	// skipped elements count
	if it.Count() != 3 {
		t.Errorf("Count() = %d, want 3", it.Count())
	}
}

func TestSkipPastTheEnd(t *testing.T) {
	loop := NewLoopTool()
	it := loop.Watch([]int{1, 2})

	loop.Skip(10)

	if it.Count() != 2 {
		t.Errorf("Count() = %d, want 2", it.Count())
	}
	if it.HasNext() {
		t.Error("HasNext() = true, want false")
	}
	if loop.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", loop.Depth())
	}
}

func TestSkipNamed(t *testing.T) {
	loop := NewLoopTool()
	outer := loop.Watch([]int{1, 2, 3, 4}, "outer")
	inner := loop.Watch([]int{5, 6, 7, 8}, "inner")

	loop.Skip(2, "outer")

	if outer.Count() != 2 {
		t.Errorf("outer Count() = %d, want 2", outer.Count())
	}
	if inner.Count() != 0 {
		t.Errorf("inner Count() = %d, want 0", inner.Count())
	}

	loop.Skip(1, "gone") // unknown names are quiet no-ops
	if outer.Count() != 2 || inner.Count() != 0 {
		t.Error("Skip with an unknown name must not advance anything")
	}
}

func TestSkipAffectsIsFirst(t *testing.T) {
	loop := NewLoopTool()
	it := loop.Watch([]int{1, 2, 3})

	loop.Skip(2)
	if it.IsFirst() {
		t.Error("IsFirst() after Skip(2) = true, want false")
	}
}

func TestInspectionOnEmptyStack(t *testing.T) {
	loop := NewLoopTool()

	if _, ok := loop.IsFirst(); ok {
		t.Error("IsFirst() on empty stack reported a value")
	}
	if _, ok := loop.IsLast(); ok {
		t.Error("IsLast() on empty stack reported a value")
	}
	if _, ok := loop.Count(); ok {
		t.Error("Count() on empty stack reported a value")
	}
	if _, ok := loop.IsFirst("ghost"); ok {
		t.Error("IsFirst(ghost) reported a value")
	}
}

func TestInspection(t *testing.T) {
	loop := NewLoopTool()
	loop.Watch([]int{1, 2, 3}, "outer")
	inner := loop.Watch([]int{4, 5}, "inner")

	inner.Next()
	inner.Next()

	if first, ok := loop.IsFirst(); !ok || first {
		t.Errorf("IsFirst() = %v, %v, want false, true", first, ok)
	}
	if last, ok := loop.IsLast(); !ok || !last {
		t.Errorf("IsLast() = %v, %v, want true, true", last, ok)
	}
	if count, ok := loop.Count(); !ok || count != 2 {
		t.Errorf("Count() = %v, %v, want 2, true", count, ok)
	}
	if first, ok := loop.IsFirst("outer"); !ok || !first {
		t.Errorf("IsFirst(outer) = %v, %v, want true, true", first, ok)
	}
	if count, ok := loop.Count("outer"); !ok || count != 0 {
		t.Errorf("Count(outer) = %v, %v, want 0, true", count, ok)
	}
}

func TestLoopsPopInNestingOrder(t *testing.T) {
	loop := NewLoopTool()
	var visits []string

	rows := loop.Watch([][]string{{"a", "b"}, {"c"}}, "rows")
	for rows.HasNext() {
		row, err := rows.Next()
		if err != nil {
			t.Fatalf("rows Next() error = %v", err)
		}
		cells := loop.Watch(row)
		if loop.Depth() != 2 {
			t.Fatalf("Depth() inside row = %d, want 2", loop.Depth())
		}
		for cells.HasNext() {
			cell, err := cells.Next()
			if err != nil {
				t.Fatalf("cells Next() error = %v", err)
			}
			visits = append(visits, fmt.Sprintf("%v/%v", rows.Count(), cell))
		}
		if loop.Depth() != 1 {
			t.Fatalf("Depth() after inner loop = %d, want 1", loop.Depth())
		}
	}

	if loop.Depth() != 0 {
		t.Fatalf("Depth() after all loops = %d, want 0", loop.Depth())
	}
	want := []string{"1/a", "1/b", "2/c"}
	if !reflect.DeepEqual(visits, want) {
		t.Errorf("visits = %v, want %v", visits, want)
	}
}

// The documented walkthrough: skip one after each element, stop once an
// element reaches 5.
func TestSkipAndStopWalkthrough(t *testing.T) {
	loop := NewLoopTool()
	var got []interface{}

	items := loop.Watch([]int{1, 2, 3, 4, 5, 6})
	for items.HasNext() {
		item, err := items.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		got = append(got, item)
		if item.(int) >= 1 {
			loop.Skip(1)
		}
		if item.(int) >= 5 {
			loop.Stop()
		}
	}

	want := []interface{}{1, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("yielded %v, want %v", got, want)
	}
}

// Stopping an enclosing loop from inside a nested one must not cut the
// nested loop short, but the enclosing loop may not come around again.
func TestStopOuterFromInner(t *testing.T) {
	loop := NewLoopTool()
	var visits []string

	outer := loop.Watch([]string{"o1", "o2"}, "outer")
	for outer.HasNext() {
		o, err := outer.Next()
		if err != nil {
			t.Fatalf("outer Next() error = %v", err)
		}
		inner := loop.Watch([]string{"i1", "i2"}, "inner")
		for inner.HasNext() {
			i, err := inner.Next()
			if err != nil {
				t.Fatalf("inner Next() error = %v", err)
			}
			visits = append(visits, fmt.Sprintf("%s/%s", o, i))
			loop.Stop("outer")
		}
	}

	want := []string{"o1/i1", "o1/i2"}
	if !reflect.DeepEqual(visits, want) {
		t.Errorf("visits = %v, want %v", visits, want)
	}
	if loop.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", loop.Depth())
	}
}
