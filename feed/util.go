package feed

import (
	"strconv"
	"strings"
)

// parseFloatStrict rejects empty strings, which strconv.ParseFloat would
// otherwise reject anyway, but we want a uniform error path for the
// InvalidCoordinate check in parseStops.
func parseFloatStrict(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}
