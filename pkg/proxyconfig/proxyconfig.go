// Package proxyconfig parses proxy share URLs (VMess, VLESS, Trojan,
// Shadowsocks, SOCKS, HTTP, and bare host:port) into outbound fragments for
// an xray-core style engine, and assembles them into a full engine config
// document with a local SOCKS inbound.
package proxyconfig

import (
	"errors"
	"fmt"
	"strings"
)

// Protocol identifies which dialect a ParsedProxy was parsed from.
type Protocol string

const (
	ProtocolVMess       Protocol = "vmess"
	ProtocolVLESS       Protocol = "vless"
	ProtocolTrojan      Protocol = "trojan"
	ProtocolShadowsocks Protocol = "shadowsocks"
	ProtocolSocks       Protocol = "socks"
	ProtocolHTTP        Protocol = "http"
)

// ErrParse is wrapped by every parse failure returned from this package.
var ErrParse = errors.New("proxyconfig: parse error")

// ParsedProxy is the structured result of parsing a single proxy URL.
type ParsedProxy struct {
	Protocol Protocol
	Tag      string
	Remark   string
	Outbound map[string]any
}

// sniffing is attached to every outbound this package produces.
func sniffing() map[string]any {
	return map[string]any{
		"enabled":     true,
		"destOverride": []string{"http", "tls", "quic"},
		"routeOnly":   true,
	}
}

// Parse dispatches url to the dialect-specific parser selected by its scheme
// (or, for scheme-less host:port input, the bare dialect) and tags the
// resulting outbound with tag.
func Parse(tag, rawURL string) (ParsedProxy, error) {
	trimmed := strings.TrimSpace(rawURL)

	switch {
	case strings.HasPrefix(trimmed, "vmess://"):
		return parseVMess(trimmed, tag)
	case strings.HasPrefix(trimmed, "vless://"):
		return parseVLESS(trimmed, tag)
	case strings.HasPrefix(trimmed, "trojan://"):
		return parseTrojan(trimmed, tag)
	case strings.HasPrefix(trimmed, "ss://"):
		return parseShadowsocks(trimmed, tag)
	case strings.HasPrefix(trimmed, "socks://"), strings.HasPrefix(trimmed, "socks5://"):
		return parseSocks(trimmed, tag)
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		return parseHTTP(trimmed, tag)
	case strings.Contains(trimmed, ":") && !strings.Contains(trimmed, "://"):
		return parseBareHostPort(trimmed, tag)
	default:
		return ParsedProxy{}, fmt.Errorf("%w: unsupported proxy protocol: %s", ErrParse, trimmed)
	}
}

// IsXrayProtocol reports whether rawURL's scheme is one of the dialects that
// must be routed through the xray engine (vmess, vless, trojan, ss) as
// opposed to a plain socks/http upstream the host can dial directly.
func IsXrayProtocol(rawURL string) bool {
	lower := strings.ToLower(strings.TrimSpace(rawURL))
	return strings.HasPrefix(lower, "vmess://") ||
		strings.HasPrefix(lower, "vless://") ||
		strings.HasPrefix(lower, "trojan://") ||
		strings.HasPrefix(lower, "ss://")
}

// Remark returns the human-readable label carried in url, if any, without
// building the full outbound. Useful for display-only lookups.
func Remark(rawURL string) (string, bool) {
	trimmed := strings.TrimSpace(rawURL)
	if strings.HasPrefix(trimmed, "vmess://") {
		p, err := parseVMess(trimmed, "tmp")
		if err != nil || p.Remark == "" {
			return "", false
		}
		return p.Remark, true
	}
	if idx := strings.Index(trimmed, "#"); idx >= 0 {
		remark := urlDecode(trimmed[idx+1:])
		return remark, true
	}
	return "", false
}
