package config

import (
	"fmt"
	"sort"
)

// DefaultType is the coercion applied to data entries that do not name
// a type.
const DefaultType = TypeAuto

// Data is one configuration datum: a key, the name of a target type,
// and a raw value to coerce to it. Values usually arrive as strings
// from a configuration file; Convert turns them into what templates
// should actually see.
type Data struct {
	Key   string      `yaml:"key" toml:"key"`
	Type  string      `yaml:"type,omitempty" toml:"type,omitempty"`
	Value interface{} `yaml:"value" toml:"value"`
}

// Validate checks that the entry has a key, a value, and a value the
// target type can actually be made from.
func (d *Data) Validate() error {
	if d.Key == "" {
		return NewNullKeyError(d)
	}
	if d.Value == nil {
		return NewConfigurationError(d.Key, "no value has been set", nil)
	}
	if _, err := d.Convert(); err != nil {
		return err
	}
	return nil
}

// Convert coerces the raw value to the entry's target type.
func (d *Data) Convert() (interface{}, error) {
	value, err := convertValue(d.targetType(), d.Value)
	if err != nil {
		return nil, NewConfigurationError(d.Key, "cannot convert value", err)
	}
	return value, nil
}

func (d *Data) targetType() string {
	if d.Type == "" {
		return DefaultType
	}
	return d.Type
}

func (d *Data) String() string {
	return fmt.Sprintf("Data '%s' -%s-> %v", d.Key, d.targetType(), d.Value)
}

// SortData orders data entries by key, in place.
func SortData(data []Data) {
	sort.Slice(data, func(i, j int) bool {
		return data[i].Key < data[j].Key
	})
}
