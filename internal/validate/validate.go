package validate

import (
	"regexp"
	"strings"
)

var reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ID validates a simple resource identifier (product/status/attribute ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}
