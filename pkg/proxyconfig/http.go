package proxyconfig

import (
	"fmt"
	"net/url"
)

func parseHTTP(rawURL, tag string) (ParsedProxy, error) {
	uri, err := url.Parse(rawURL)
	if err != nil {
		return ParsedProxy{}, fmt.Errorf("%w: http url: %v", ErrParse, err)
	}

	host := firstNonEmpty(uri.Hostname(), "127.0.0.1")
	port := firstNonEmpty(uri.Port(), "8080")

	users := []map[string]any{}
	if username := uri.User.Username(); username != "" {
		password, _ := uri.User.Password()
		users = append(users, map[string]any{"user": username, "pass": password})
	}

	outbound := map[string]any{
		"tag":      tag,
		"protocol": "http",
		"settings": map[string]any{
			"servers": []map[string]any{
				{
					"address": host,
					"port":    mustAtoi(port, 8080),
					"users":   users,
				},
			},
		},
		"sniffing": sniffing(),
	}

	return ParsedProxy{
		Protocol: ProtocolHTTP,
		Tag:      tag,
		Remark:   uri.Fragment,
		Outbound: outbound,
	}, nil
}
