package concrete

import (
	"fmt"
	"regexp"
	"strings"
)

var classNamePattern = regexp.MustCompile(`^C(\d{1,3})[/\-_ ](\d{1,3})$`)

// NormalizeName canonicalizes user spellings such as "c30-37" or "C30 37" to "C30/37".
func NormalizeName(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	m := classNamePattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("invalid concrete class name %q", raw)
	}
	return "C" + m[1] + "/" + m[2], nil
}
