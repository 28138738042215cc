package tools

import (
	"reflect"
)

// Action is an automatic step a ManagedIterator takes when a Condition
// matches the element it is about to yield.
type Action int

const (
	// ActionExclude drops the matching element and moves on to the next one.
	ActionExclude Action = iota
	// ActionStop ends the iteration just before the matching element.
	ActionStop
)

func (a Action) String() string {
	switch a {
	case ActionExclude:
		return "exclude"
	case ActionStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Condition tests a single candidate element, typically to decide
// whether an Action should be taken on it.
type Condition interface {
	// Test reports whether the value meets this condition
	Test(value interface{}) bool
}

// ConditionFunc adapts a plain function to the Condition interface.
type ConditionFunc func(value interface{}) bool

func (f ConditionFunc) Test(value interface{}) bool {
	return f(value)
}

// ActionCondition pairs an Action with the Condition that triggers it.
// A ManagedIterator checks each candidate element against its action
// conditions in the order they were registered and acts on the first
// match.
type ActionCondition struct {
	action    Action
	condition Condition
}

// NewActionCondition creates a new action condition. The condition must
// not be nil and the action must be one of the known Action values.
func NewActionCondition(action Action, condition Condition) (*ActionCondition, error) {
	if condition == nil {
		return nil, NewValidationError("condition", "an action condition requires a condition to check")
	}
	if action != ActionExclude && action != ActionStop {
		return nil, NewValidationError("action", "unknown action")
	}
	return &ActionCondition{
		action:    action,
		condition: condition,
	}, nil
}

// Action returns the action taken when the condition matches.
func (ac *ActionCondition) Action() Action {
	return ac.action
}

// Matches reports whether the given value meets the condition.
func (ac *ActionCondition) Matches(value interface{}) bool {
	return ac.condition.Test(value)
}

// Equals is a Condition that compares candidate elements against a
// fixed value. A nil candidate never matches. Candidates of the same
// concrete type as the comparison value match only when they are
// structurally equal; candidates of a different type fall back to a
// comparison of their FormatValue strings, so a numeric element can
// match a string given by a template.
type Equals struct {
	compare interface{}
}

// NewEquals creates an equality condition against the given value,
// which must not be nil.
func NewEquals(compare interface{}) (*Equals, error) {
	if compare == nil {
		return nil, NewValidationError("compare", "an equality condition requires a value to compare to")
	}
	return &Equals{compare: compare}, nil
}

func (e *Equals) Test(value interface{}) bool {
	if value == nil {
		return false
	}
	if reflect.DeepEqual(e.compare, value) {
		return true
	}
	if reflect.TypeOf(value) == reflect.TypeOf(e.compare) {
		// same type and not equal, so no point in comparing strings
		return false
	}
	return FormatValue(value) == FormatValue(e.compare)
}
