package tools

import (
	"fmt"
)

// LoopTool gives templates control over the loops they run. Watch hands
// out a ManagedIterator for each loop entered and keeps the live ones
// on a stack, innermost on top, so commands issued from inside a loop
// body reach the right loop however deeply nested. Loops may be named
// for targeted control; unnamed loops are named "loop" plus their
// nesting depth at Watch time, e.g. "loop0" for an outermost loop.
//
// A loop leaves the stack on its own the moment its source is exhausted
// or it is found stopped, so a well-formed pass starts and ends with an
// empty stack.
//
// A typical driver:
//
//	loop := tools.NewLoopTool()
//	items := loop.Watch([]int{1, 2, 3, 4, 5, 6})
//	for items.HasNext() {
//		item, _ := items.Next()
//		fmt.Println(item)
//		if item.(int) >= 1 {
//			loop.Skip(1)
//		}
//		if item.(int) >= 5 {
//			loop.Stop()
//		}
//	}
//
// which prints 1, 3 and 5.
//
// A LoopTool serves one single-threaded rendering pass; a toolbox
// exposes it per request under the "loop" key and never shares one
// instance between passes.
type LoopTool struct {
	stack []*ManagedIterator
}

// NewLoopTool creates a LoopTool with an empty loop stack.
func NewLoopTool() *LoopTool {
	return &LoopTool{}
}

// Watch wraps the given object in a ManagedIterator, pushes it onto the
// loop stack and returns it for the caller's loop construct to drive.
// The object may be anything ToIterator can adapt; when it cannot be
// adapted, Watch returns nil and the stack is left alone. An optional
// name lets later commands target this loop from inside nested ones.
// Passing an explicit empty name returns nil without even looking at
// the object.
func (lt *LoopTool) Watch(obj interface{}, name ...string) *ManagedIterator {
	loopName := fmt.Sprintf("loop%d", len(lt.stack))
	if len(name) > 0 {
		if name[0] == "" {
			return nil
		}
		loopName = name[0]
	}

	iterator := ToIterator(obj)
	if iterator == nil {
		GetLogger().Debug("cannot watch %T, no iterator for it", obj)
		return nil
	}

	managed := &ManagedIterator{name: loopName, source: iterator}
	managed.release = func() { lt.release(managed) }
	lt.stack = append(lt.stack, managed)
	return managed
}

// Stop tells the current loop that this is its last time around. Given
// a name, the stop goes only to the loop with that name, wherever it
// sits in the stack. An empty stack and unknown names are quiet no-ops.
func (lt *LoopTool) Stop(name ...string) {
	if len(name) > 0 {
		if it := lt.find(name[0]); it != nil {
			it.Stop()
		}
		return
	}
	if top := lt.top(); top != nil {
		top.Stop()
	}
}

// StopTo stops the named loop and every loop nested inside it. Loops
// enclosing the named one keep running, and the stack keeps its order
// and all of its entries. Nothing happens if no loop has that name.
func (lt *LoopTool) StopTo(name string) {
	for i := len(lt.stack) - 1; i >= 0; i-- {
		if lt.stack[i].Name() == name {
			for j := i; j < len(lt.stack); j++ {
				lt.stack[j].Stop()
			}
			return
		}
	}
}

// StopAll stops every loop currently on the stack.
func (lt *LoopTool) StopAll() {
	for _, it := range lt.stack {
		it.Stop()
	}
}

// Skip advances the current loop over up to n elements, fewer if it
// runs out first. Unlike elements dropped by an exclude condition,
// skipped elements still count toward Count and IsFirst. Given a name,
// the named loop is advanced instead; unknown names are quiet no-ops.
func (lt *LoopTool) Skip(n int, name ...string) {
	it := lt.target(name)
	if it == nil {
		return
	}
	for i := 0; i < n; i++ {
		if !it.HasNext() {
			break
		}
		if _, err := it.Next(); err != nil {
			break
		}
	}
}

// IsFirst reports whether the current loop, or the named one, is on its
// first iteration. The second return is false when the stack is empty
// or no loop has the given name.
func (lt *LoopTool) IsFirst(name ...string) (bool, bool) {
	if it := lt.target(name); it != nil {
		return it.IsFirst(), true
	}
	return false, false
}

// IsLast reports whether the current loop, or the named one, is on its
// last iteration. The second return is false when the stack is empty or
// no loop has the given name.
func (lt *LoopTool) IsLast(name ...string) (bool, bool) {
	if it := lt.target(name); it != nil {
		return it.IsLast(), true
	}
	return false, false
}

// Count returns how many elements the current loop, or the named one,
// has yielded so far, including any skipped over. The second return is
// false when the stack is empty or no loop has the given name.
func (lt *LoopTool) Count(name ...string) (int, bool) {
	if it := lt.target(name); it != nil {
		return it.Count(), true
	}
	return 0, false
}

// Depth returns the number of loops currently being watched, which is
// how deeply nested the current loop is.
func (lt *LoopTool) Depth() int {
	return len(lt.stack)
}

// target resolves an optional-name argument list to a stack entry: the
// named loop when a name is given, the top of the stack otherwise.
func (lt *LoopTool) target(name []string) *ManagedIterator {
	if len(name) > 0 {
		return lt.find(name[0])
	}
	return lt.top()
}

func (lt *LoopTool) top() *ManagedIterator {
	if len(lt.stack) == 0 {
		return nil
	}
	return lt.stack[len(lt.stack)-1]
}

func (lt *LoopTool) find(name string) *ManagedIterator {
	for _, it := range lt.stack {
		if it.Name() == name {
			return it
		}
	}
	return nil
}

// release takes a finished iterator off the stack. Iterators call this
// through the hook Watch installs, so removal is by identity and
// tolerates any stack position.
func (lt *LoopTool) release(done *ManagedIterator) {
	for i, it := range lt.stack {
		if it == done {
			lt.stack = append(lt.stack[:i], lt.stack[i+1:]...)
			return
		}
	}
}
