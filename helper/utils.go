package helper

import (
	"fmt"
	"strconv"
)

// AddQuotation returns str as a quoted string
func AddQuotation(str string) string {
	return fmt.Sprintf("%q", str)
}

// MyStringIf is a ternary for strings
func MyStringIf(b bool, s1, s2 string) string {
	if b {
		return s1
	} else {
		return s2
	}
}

// ParseID parses a decimal computer id or time
func ParseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
