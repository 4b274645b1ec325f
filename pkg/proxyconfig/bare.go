package proxyconfig

import (
	"fmt"
	"strconv"
	"strings"
)

// parseBareHostPort handles the scheme-less "host:port" and
// "host:port:user:pass" dialects, always emitting a socks outbound.
func parseBareHostPort(raw, tag string) (ParsedProxy, error) {
	parts := strings.Split(raw, ":")

	var host, portStr string
	users := []map[string]any{}

	switch len(parts) {
	case 2:
		host, portStr = parts[0], parts[1]
	case 4:
		host, portStr = parts[0], parts[1]
		users = append(users, map[string]any{"user": parts[2], "pass": parts[3]})
	default:
		return ParsedProxy{}, fmt.Errorf("%w: invalid host:port format: %s", ErrParse, raw)
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return ParsedProxy{}, fmt.Errorf("%w: invalid port: %v", ErrParse, err)
	}

	outbound := map[string]any{
		"tag":      tag,
		"protocol": "socks",
		"settings": map[string]any{
			"servers": []map[string]any{
				{
					"address": host,
					"port":    int(port),
					"users":   users,
				},
			},
		},
		"sniffing": sniffing(),
	}

	return ParsedProxy{
		Protocol: ProtocolSocks,
		Tag:      tag,
		Remark:   "",
		Outbound: outbound,
	}, nil
}
