package proxyconfig

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

func parseSocks(rawURL, tag string) (ParsedProxy, error) {
	normalized := strings.Replace(rawURL, "socks5://", "socks://", 1)

	uri, err := url.Parse(normalized)
	if err != nil {
		return ParsedProxy{}, fmt.Errorf("%w: socks url: %v", ErrParse, err)
	}

	host := firstNonEmpty(uri.Hostname(), "127.0.0.1")
	port := firstNonEmpty(uri.Port(), "1080")

	users := []map[string]any{}
	if username := uri.User.Username(); username != "" {
		password, _ := uri.User.Password()

		user, pass := username, password
		if !strings.Contains(username, ":") {
			if decoded, err := base64.StdEncoding.DecodeString(username); err == nil {
				if idx := strings.Index(string(decoded), ":"); idx >= 0 {
					user = string(decoded[:idx])
					pass = string(decoded[idx+1:])
				}
			}
		}
		users = append(users, map[string]any{"user": user, "pass": pass})
	}

	outbound := map[string]any{
		"tag":      tag,
		"protocol": "socks",
		"settings": map[string]any{
			"servers": []map[string]any{
				{
					"address": host,
					"port":    mustAtoi(port, 1080),
					"users":   users,
				},
			},
		},
		"sniffing": sniffing(),
	}

	return ParsedProxy{
		Protocol: ProtocolSocks,
		Tag:      tag,
		Remark:   uri.Fragment,
		Outbound: outbound,
	}, nil
}
