package proxyconfig

import (
	"fmt"
	"net/url"
)

func parseTrojan(rawURL, tag string) (ParsedProxy, error) {
	uri, err := url.Parse(rawURL)
	if err != nil {
		return ParsedProxy{}, fmt.Errorf("%w: trojan url: %v", ErrParse, err)
	}

	host := uri.Hostname()
	port := uri.Port()
	if port == "" {
		port = "443"
	}
	password := uri.User.String()

	q := uri.Query()
	netType := firstNonEmpty(q.Get("type"), "tcp")
	security := firstNonEmpty(q.Get("security"), "tls")

	streamSettings := map[string]any{
		"network":  netType,
		"security": security,
		"tlsSettings": map[string]any{
			"serverName":    firstNonEmpty(q.Get("sni"), host),
			"fingerprint":   "chrome",
			"allowInsecure": true,
		},
	}

	switch netType {
	case "ws":
		streamSettings["wsSettings"] = map[string]any{
			"path":    firstNonEmpty(q.Get("path"), "/"),
			"headers": map[string]any{"Host": firstNonEmpty(q.Get("host"), host)},
		}
	case "grpc":
		streamSettings["grpcSettings"] = map[string]any{
			"serviceName": q.Get("serviceName"),
		}
	}

	outbound := map[string]any{
		"tag":      tag,
		"protocol": "trojan",
		"settings": map[string]any{
			"servers": []map[string]any{
				{
					"address":  host,
					"port":     mustAtoi(port, 443),
					"password": password,
				},
			},
		},
		"streamSettings": streamSettings,
		"sniffing":       sniffing(),
	}

	return ParsedProxy{
		Protocol: ProtocolTrojan,
		Tag:      tag,
		Remark:   uri.Fragment,
		Outbound: outbound,
	}, nil
}
