package league

import (
	"strconv"
	"strings"
)

// JoinCheckouts renders a checkout list as the comma-joined column value.
func JoinCheckouts(values []int) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ", ")
}

// ParseCheckouts splits a comma-joined checkout column back into integers.
// Zero, negative and unparsable tokens are dropped, so
// ParseCheckouts(JoinCheckouts(l)) == l for any list of positive integers.
func ParseCheckouts(s string) []int {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var values []int
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v <= 0 {
			continue
		}
		values = append(values, v)
	}
	return values
}
