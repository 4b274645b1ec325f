package proxyconfig

import (
	"fmt"
	"net/url"
	"strings"
)

func parseVLESS(rawURL, tag string) (ParsedProxy, error) {
	uri, err := url.Parse(rawURL)
	if err != nil {
		return ParsedProxy{}, fmt.Errorf("%w: vless url: %v", ErrParse, err)
	}

	host := uri.Hostname()
	port := uri.Port()
	if port == "" {
		port = "443"
	}
	uuid := uri.User.String()

	q := uri.Query()
	security := firstNonEmpty(q.Get("security"), "none")
	netType := firstNonEmpty(q.Get("type"), "tcp")
	if netType == "splithttp" {
		netType = "xhttp"
	}
	encryption := firstNonEmpty(q.Get("encryption"), "none")
	flow := q.Get("flow")

	streamSettings := map[string]any{
		"network":  netType,
		"security": security,
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
	case "xhttp":
		streamSettings["xhttpSettings"] = map[string]any{
			"path": firstNonEmpty(q.Get("path"), "/"),
			"host": q.Get("host"),
			"mode": firstNonEmpty(q.Get("mode"), "stream-up"),
		}
	case "kcp":
		streamSettings["kcpSettings"] = map[string]any{
			"header": map[string]any{"type": firstNonEmpty(q.Get("headerType"), "none")},
			"seed":   q.Get("seed"),
		}
	case "h2":
		var hosts []string
		if h := q.Get("host"); h != "" {
			hosts = strings.Split(h, ",")
		} else {
			hosts = []string{}
		}
		streamSettings["httpSettings"] = map[string]any{
			"path": firstNonEmpty(q.Get("path"), "/"),
			"host": hosts,
		}
	}

	switch security {
	case "tls":
		sni := firstNonEmpty(q.Get("sni"), q.Get("host"), host)
		fp := firstNonEmpty(q.Get("fp"), "chrome")
		tlsSettings := map[string]any{
			"serverName":    sni,
			"fingerprint":   fp,
			"allowInsecure": true,
		}
		if alpn := q.Get("alpn"); alpn != "" {
			tlsSettings["alpn"] = strings.Split(alpn, ",")
		}
		streamSettings["tlsSettings"] = tlsSettings
	case "reality":
		sni := firstNonEmpty(q.Get("sni"), q.Get("host"), "")
		streamSettings["realitySettings"] = map[string]any{
			"show":        false,
			"fingerprint": firstNonEmpty(q.Get("fp"), "chrome"),
			"serverName":  sni,
			"publicKey":   q.Get("pbk"),
			"shortId":     q.Get("sid"),
			"spiderX":     q.Get("spx"),
		}
	}

	outbound := map[string]any{
		"tag":      tag,
		"protocol": "vless",
		"settings": map[string]any{
			"vnext": []map[string]any{
				{
					"address": host,
					"port":    mustAtoi(port, 443),
					"users": []map[string]any{
						{
							"id":         uuid,
							"encryption": encryption,
							"flow":       flow,
						},
					},
				},
			},
		},
		"streamSettings": streamSettings,
		"sniffing":       sniffing(),
	}

	return ParsedProxy{
		Protocol: ProtocolVLESS,
		Tag:      tag,
		Remark:   uri.Fragment,
		Outbound: outbound,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
