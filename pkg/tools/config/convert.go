package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lyraproj/semver/semver"
)

// Target types for Data entries. A list may carry an element type as a
// suffix, e.g. "list.number".
const (
	TypeAuto    = "auto"
	TypeBoolean = "boolean"
	TypeNumber  = "number"
	TypeString  = "string"
	TypeList    = "list"
	TypeVersion = "version"
)

const listElementPrefix = TypeList + "."

func convertValue(typ string, value interface{}) (interface{}, error) {
	if strings.HasPrefix(typ, listElementPrefix) {
		return convertList(strings.TrimPrefix(typ, listElementPrefix), value)
	}

	switch typ {
	case TypeAuto:
		return convertAuto(value), nil
	case TypeBoolean:
		return convertBoolean(value)
	case TypeNumber:
		return convertNumber(value)
	case TypeString:
		return stringify(value), nil
	case TypeList:
		return convertList("", value)
	case TypeVersion:
		return convertVersion(value)
	default:
		return nil, fmt.Errorf("unknown data type '%s'", typ)
	}
}

// convertAuto recognizes boolean strings and leaves everything else
// alone.
func convertAuto(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}
	if strings.EqualFold(s, "true") {
		return true
	}
	if strings.EqualFold(s, "false") {
		return false
	}
	return s
}

func convertBoolean(value interface{}) (interface{}, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	switch strings.ToLower(strings.TrimSpace(stringify(value))) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return nil, fmt.Errorf("cannot make a boolean of '%v'", value)
}

// convertNumber yields an int unless the value's string form carries a
// decimal point, in which case it yields a float64.
func convertNumber(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	}

	s := strings.TrimSpace(stringify(value))
	if !strings.Contains(s, ".") {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("cannot make a number of '%v'", value)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot make a number of '%v'", value)
	}
	return f, nil
}

// convertList accepts a native list or a comma-separated string; a
// blank string yields nil. With an element type, every element is
// converted to it.
func convertList(elementType string, value interface{}) (interface{}, error) {
	var items []interface{}
	switch v := value.(type) {
	case []interface{}:
		items = v
	case []string:
		items = make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		for _, part := range strings.Split(v, ",") {
			items = append(items, part)
		}
	default:
		return nil, fmt.Errorf("cannot make a list of '%v'", value)
	}

	if elementType == "" {
		return items, nil
	}

	converted := make([]interface{}, 0, len(items))
	for _, item := range items {
		c, err := convertValue(elementType, item)
		if err != nil {
			return nil, err
		}
		converted = append(converted, c)
	}
	return converted, nil
}

func convertVersion(value interface{}) (interface{}, error) {
	if v, ok := value.(*semver.Version); ok {
		return v, nil
	}
	v, err := semver.ParseVersion(strings.TrimSpace(stringify(value)))
	if err != nil {
		return nil, fmt.Errorf("cannot make a version of '%v': %v", value, err)
	}
	return v, nil
}

// stringify is the string form used when a non-string value meets a
// string-shaped conversion.
func stringify(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
