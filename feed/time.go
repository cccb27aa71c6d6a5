package feed

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// parseServiceTime parses a GTFS HH:MM:SS field into seconds since the
// start of the service day. HH may exceed 23 to denote service
// continuing past midnight, per spec.md §4.2's time encoding rule.
func parseServiceTime(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, errors.Errorf("expected HH:MM:SS, got %q", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, errors.Wrapf(err, "hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, errors.Wrapf(err, "minute in %q", s)
	}
	if m < 0 || m > 59 {
		return 0, errors.Errorf("invalid minute in %q", s)
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, errors.Wrapf(err, "second in %q", s)
	}
	if sec < 0 || sec > 59 {
		return 0, errors.Errorf("invalid second in %q", s)
	}
	if h < 0 {
		return 0, errors.Errorf("invalid hour in %q", s)
	}

	return h*3600 + m*60 + sec, nil
}
