package tools

import (
	"reflect"
	"sort"
)

// Iterator is the uniform pull protocol over the element sources this
// package watches. Next returns the next element and true, or a nil
// value and false once the source has run out.
type Iterator interface {
	Next() (interface{}, bool)
}

// IteratorFunc adapts a plain function to the Iterator interface.
type IteratorFunc func() (interface{}, bool)

func (f IteratorFunc) Next() (interface{}, bool) {
	return f()
}

// ToIterator adapts an arbitrary value to an Iterator. Slices and
// arrays iterate in element order, maps iterate over their values in
// sorted key order, and channels are received from until closed. An
// existing Iterator passes through unchanged and a ManagedIterator is
// re-wrapped. Any other non-nil value, strings included, becomes a
// single-element iterator.
//
// Returns nil if obj is nil or cannot be adapted. Adapter failures
// never escape to the caller; they are logged at debug level and
// surface as a nil return.
func ToIterator(obj interface{}) (it Iterator) {
	defer func() {
		if r := recover(); r != nil {
			GetLogger().Debug("cannot iterate over %T: %v", obj, RecoverError(r))
			it = nil
		}
	}()

	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case Iterator:
		return v
	case *ManagedIterator:
		return managedSource(v)
	}

	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Slice, reflect.Array:
		return &sliceIterator{value: value}
	case reflect.Map:
		return newValuesIterator(value)
	case reflect.Chan:
		if value.IsNil() || value.Type().ChanDir()&reflect.RecvDir == 0 {
			GetLogger().Debug("cannot iterate over %T: nil or send-only channel", obj)
			return nil
		}
		return &chanIterator{value: value}
	default:
		return &singleIterator{value: obj}
	}
}

// managedSource lets one ManagedIterator feed another, e.g. when a
// template watches a loop it is already watching.
func managedSource(m *ManagedIterator) Iterator {
	return IteratorFunc(func() (interface{}, bool) {
		if !m.HasNext() {
			return nil, false
		}
		value, err := m.Next()
		if err != nil {
			return nil, false
		}
		return value, true
	})
}

type sliceIterator struct {
	value reflect.Value
	index int
}

func (s *sliceIterator) Next() (interface{}, bool) {
	if s.index >= s.value.Len() {
		return nil, false
	}
	elem := s.value.Index(s.index).Interface()
	s.index++
	return elem, true
}

type valuesIterator struct {
	values []interface{}
	index  int
}

// newValuesIterator snapshots the map's values ordered by the string
// form of their keys, so iteration order is stable between runs.
func newValuesIterator(value reflect.Value) *valuesIterator {
	keys := value.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return FormatValue(keys[i].Interface()) < FormatValue(keys[j].Interface())
	})
	values := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		values = append(values, value.MapIndex(key).Interface())
	}
	return &valuesIterator{values: values}
}

func (v *valuesIterator) Next() (interface{}, bool) {
	if v.index >= len(v.values) {
		return nil, false
	}
	elem := v.values[v.index]
	v.index++
	return elem, true
}

type chanIterator struct {
	value reflect.Value
}

func (c *chanIterator) Next() (interface{}, bool) {
	elem, ok := c.value.Recv()
	if !ok {
		return nil, false
	}
	return elem.Interface(), true
}

type singleIterator struct {
	value interface{}
	done  bool
}

func (s *singleIterator) Next() (interface{}, bool) {
	if s.done {
		return nil, false
	}
	s.done = true
	return s.value, true
}
