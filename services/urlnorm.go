package services

import (
	"strings"
)

// NormalizeURL reduces a website URL to the form used for the one-launch-per-
// site invariant: no scheme, no leading www, no trailing slash, no query or
// fragment, lowercased host. "https://WWW.Example.com/path?x=1" and
// "example.com/path" normalize to the same value.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	lower := strings.ToLower(s)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) {
			s = s[len(scheme):]
			lower = lower[len(scheme):]
			break
		}
	}
	if strings.HasPrefix(lower, "www.") {
		s = s[len("www."):]
	}

	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "/")

	// Hosts are case-insensitive; paths technically are not, but the original
	// data never relied on that so the whole value is lowercased.
	return strings.ToLower(s)
}
