package report

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseThreshold reads a threshold form value. Blank or non-numeric input
// falls back to def, the way the upload form always behaved; a negative
// number is rejected.
func ParseThreshold(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return def, nil
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidThreshold, v)
	}
	return v, nil
}
