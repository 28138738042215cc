package tools

import (
	"fmt"
	"strconv"
)

// FormatValue converts a value to its canonical string form, the form
// templates see when a value is printed. Cross-type comparisons fall
// back to these strings, so two values format equal exactly when a
// template would display them identically.
func FormatValue(value interface{}) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", v)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', 10, 32)
	case float64:
		// 'g' with precision 15 drops trailing zeros and avoids
		// float64 representation noise
		return strconv.FormatFloat(v, 'g', 15, 64)
	case bool:
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
