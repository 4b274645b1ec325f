package proxyconfig

import "strconv"

// mustAtoi parses s as an integer, falling back to def if s is empty or
// malformed (net/url.Port() already guarantees digits-only when non-empty,
// so this only ever trips on the empty-string default case in practice).
func mustAtoi(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
