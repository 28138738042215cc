package tools

// ManagedIterator wraps an element source so that an in-progress loop
// can be stopped early, skipped ahead, inspected, and filtered through
// registered ActionConditions. Instances are created by LoopTool.Watch,
// which also hooks them into its loop stack, and are driven by the
// host's loop construct through HasNext and Next.
//
// The iterator keeps a one-element lookahead cache. Pulling an element
// into the cache is when action conditions run: excluded elements are
// silently discarded (they never reach the cache and never count), and
// an element matching a stop condition is discarded along with
// everything after it. A cached element has already passed every
// condition and is never re-checked, even if more conditions are
// registered before it is yielded.
//
// Methods tolerate a nil receiver, because Watch legitimately returns
// nil for sources it cannot adapt and templates chain calls without
// guarding. On a nil iterator, HasNext reports false, Next fails, and
// the chainable methods return nil.
type ManagedIterator struct {
	name       string
	source     Iterator
	stopped    bool
	count      int
	next       interface{}
	cached     bool
	conditions []*ActionCondition

	// installed by the owning LoopTool to take this iterator off the
	// loop stack; runs at most once
	release  func()
	released bool
}

// Name returns the name this iterator was given at Watch time, or the
// generated one if none was given.
func (m *ManagedIterator) Name() string {
	if m == nil {
		return ""
	}
	return m.name
}

// IsFirst reports whether no more than one element has been yielded so
// far.
func (m *ManagedIterator) IsFirst() bool {
	if m == nil {
		return false
	}
	return m.count <= 1
}

// IsLast reports whether the element most recently yielded is the last
// one that satisfies every registered condition. The check peeks ahead
// without consuming anything and without taking this iterator off its
// owner's loop stack.
func (m *ManagedIterator) IsLast() bool {
	if m == nil {
		return false
	}
	return !m.hasNext(false)
}

// Count returns the number of elements yielded by Next so far. Elements
// advanced over by LoopTool.Skip are included; elements dropped by an
// exclude condition are not.
func (m *ManagedIterator) Count() int {
	if m == nil {
		return 0
	}
	return m.count
}

// HasNext reports whether another element satisfying every registered
// condition is available. When the underlying source runs out, the
// iterator removes itself from its owner's loop stack and stops for
// good.
func (m *ManagedIterator) HasNext() bool {
	if m == nil {
		return false
	}
	return m.hasNext(true)
}

// consume controls whether running out may mutate stack state; IsLast
// peeks with consume=false so that checking for the end is not the same
// as reaching it.
func (m *ManagedIterator) hasNext(consume bool) bool {
	if m.stopped {
		if consume {
			m.popSelf()
		}
		return false
	}
	if m.cached {
		return true
	}
	return m.cacheNext(consume)
}

// cacheNext pulls elements from the source until one passes every
// registered condition, caching it. Reports false when the source runs
// out or a stop condition fires first.
func (m *ManagedIterator) cacheNext(consume bool) bool {
	for {
		value, ok := m.source.Next()
		if !ok {
			if consume {
				m.popSelf()
				m.Stop()
			}
			return false
		}

		if condition := m.match(value); condition != nil {
			if condition.Action() == ActionStop {
				m.Stop()
				return false
			}
			// excluded; pull the next one
			continue
		}

		m.next = value
		m.cached = true
		return true
	}
}

// match returns the first registered condition the value meets, in
// registration order.
func (m *ManagedIterator) match(value interface{}) *ActionCondition {
	for _, condition := range m.conditions {
		if condition.Matches(value) {
			return condition
		}
	}
	return nil
}

// Next returns the next element that satisfies every registered
// condition. Calling Next when no such element remains is a caller
// error and returns an ExhaustedError.
func (m *ManagedIterator) Next() (interface{}, error) {
	if m == nil {
		return nil, NewExhaustedError("")
	}
	if m.stopped {
		m.popSelf()
		return nil, NewExhaustedError(m.name)
	}
	if !m.cached && !m.cacheNext(true) {
		return nil, NewExhaustedError(m.name)
	}

	m.count++
	value := m.next
	m.next = nil
	m.cached = false
	return value, nil
}

// Stop keeps this iterator from yielding any further elements. It is
// safe to call repeatedly. The underlying source is left alone.
func (m *ManagedIterator) Stop() {
	if m == nil {
		return
	}
	m.stopped = true
	m.next = nil
	m.cached = false
}

// Exclude directs this iterator to silently drop any element equal to
// the given value, judged by an Equals condition. Returns the iterator
// for chaining, or nil if compare is nil.
func (m *ManagedIterator) Exclude(compare interface{}) *ManagedIterator {
	return m.conditionOn(ActionExclude, compare)
}

// StopOn directs this iterator to stop just before yielding any element
// equal to the given value, judged by an Equals condition. Returns the
// iterator for chaining, or nil if compare is nil.
func (m *ManagedIterator) StopOn(compare interface{}) *ManagedIterator {
	return m.conditionOn(ActionStop, compare)
}

func (m *ManagedIterator) conditionOn(action Action, compare interface{}) *ManagedIterator {
	if m == nil {
		return nil
	}
	equals, err := NewEquals(compare)
	if err != nil {
		return nil
	}
	condition, err := NewActionCondition(action, equals)
	if err != nil {
		return nil
	}
	return m.Condition(condition)
}

// Condition appends an ActionCondition for this iterator to check
// candidate elements against. Returns the iterator for chaining, or nil
// if the condition is nil.
func (m *ManagedIterator) Condition(condition *ActionCondition) *ManagedIterator {
	if m == nil || condition == nil {
		return nil
	}
	m.conditions = append(m.conditions, condition)
	return m
}

// Remove is not supported; iteration is read-only over its source.
func (m *ManagedIterator) Remove() error {
	return NewUnsupportedOperationError("remove")
}

func (m *ManagedIterator) String() string {
	return "ManagedIterator:" + m.Name()
}

// popSelf hands this iterator back to its owner exactly once, the
// moment it is exhausted or found stopped.
func (m *ManagedIterator) popSelf() {
	if m.released {
		return
	}
	m.released = true
	if m.release != nil {
		m.release()
	}
}
