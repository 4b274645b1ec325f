package proxyconfig

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// legacyShadowsocksPattern matches the decoded body of a legacy ss:// link:
// method:password@host:port.
var legacyShadowsocksPattern = regexp.MustCompile(`^(.+?):(.+?)@(.+?):(\d+)$`)

func parseShadowsocks(rawURL, tag string) (ParsedProxy, error) {
	raw := strings.TrimPrefix(rawURL, "ss://")

	var remark string
	if idx := strings.Index(raw, "#"); idx >= 0 {
		remark = urlDecode(raw[idx+1:])
		raw = raw[:idx]
	}

	var method, password, host, port string
	var err error

	if strings.Contains(raw, "@") {
		method, password, host, port, err = parseShadowsocksModern(raw)
	} else {
		method, password, host, port, err = parseShadowsocksLegacy(raw)
	}
	if err != nil {
		return ParsedProxy{}, err
	}

	outbound := map[string]any{
		"tag":      tag,
		"protocol": "shadowsocks",
		"settings": map[string]any{
			"servers": []map[string]any{
				{
					"address":  host,
					"port":     mustAtoi(port, 0),
					"method":   method,
					"password": password,
					"ota":      false,
					"level":    1,
				},
			},
		},
		"streamSettings": map[string]any{"network": "tcp"},
		"mux": map[string]any{
			"enabled":     false,
			"concurrency": -1,
		},
		"sniffing": sniffing(),
	}

	return ParsedProxy{
		Protocol: ProtocolShadowsocks,
		Tag:      tag,
		Remark:   remark,
		Outbound: outbound,
	}, nil
}

func parseShadowsocksModern(raw string) (method, password, host, port string, err error) {
	parts := strings.SplitN(raw, "@", 2)
	if len(parts) != 2 {
		return "", "", "", "", fmt.Errorf("%w: invalid ss url format", ErrParse)
	}
	userPart, hostPart := parts[0], parts[1]

	if strings.Contains(userPart, ":") {
		creds := strings.SplitN(userPart, ":", 2)
		method, password = creds[0], creds[1]
	} else {
		decoded, decErr := decodeBase64(userPart)
		if decErr != nil {
			return "", "", "", "", fmt.Errorf("%w: ss base64: %v", ErrParse, decErr)
		}
		creds := strings.SplitN(string(decoded), ":", 2)
		if len(creds) != 2 {
			return "", "", "", "", fmt.Errorf("%w: invalid ss user part format", ErrParse)
		}
		method, password = creds[0], creds[1]
	}

	host, port, err = splitShadowsocksHostPort(hostPart)
	return method, password, host, port, err
}

func splitShadowsocksHostPort(hostPart string) (host, port string, err error) {
	if strings.HasPrefix(hostPart, "[") {
		end := strings.Index(hostPart, "]")
		if end < 0 {
			return "", "", fmt.Errorf("%w: invalid IPv6 format", ErrParse)
		}
		host = hostPart[1:end]
		rest := hostPart[end+1:]
		port = strings.TrimPrefix(rest, ":")
		if _, convErr := strconv.ParseUint(port, 10, 16); convErr != nil {
			return "", "", fmt.Errorf("%w: invalid port: %v", ErrParse, convErr)
		}
		return host, port, nil
	}

	idx := strings.LastIndex(hostPart, ":")
	if idx < 0 {
		return "", "", fmt.Errorf("%w: missing port", ErrParse)
	}
	host = hostPart[:idx]
	port = hostPart[idx+1:]
	if _, convErr := strconv.ParseUint(port, 10, 16); convErr != nil {
		return "", "", fmt.Errorf("%w: invalid port: %v", ErrParse, convErr)
	}
	return host, port, nil
}

func parseShadowsocksLegacy(raw string) (method, password, host, port string, err error) {
	decoded, decErr := decodeBase64(raw)
	if decErr != nil {
		return "", "", "", "", fmt.Errorf("%w: ss base64: %v", ErrParse, decErr)
	}

	matches := legacyShadowsocksPattern.FindStringSubmatch(string(decoded))
	if matches == nil {
		return "", "", "", "", fmt.Errorf("%w: invalid ss url format", ErrParse)
	}
	return matches[1], matches[2], matches[3], matches[4], nil
}
