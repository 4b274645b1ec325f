package proxyconfig

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// vmessPayload is the decoded vmess:// JSON body. Port and Aid may arrive as
// either a JSON string or number in the wild, hence they are decoded as any
// and converted by numericDefault.
type vmessPayload struct {
	Add         string `json:"add"`
	Port        any    `json:"port"`
	ID          string `json:"id"`
	Aid         any    `json:"aid"`
	Security    string `json:"scy"`
	Net         string `json:"net"`
	TLS         string `json:"tls"`
	Host        string `json:"host"`
	Path        string `json:"path"`
	SNI         string `json:"sni"`
	ALPN        string `json:"alpn"`
	Remark      string `json:"ps"`
	Type        string `json:"type"`
	ServiceName string `json:"serviceName"`
}

func parseVMess(rawURL, tag string) (ParsedProxy, error) {
	b64 := strings.TrimPrefix(rawURL, "vmess://")

	decoded, err := decodeBase64(b64)
	if err != nil {
		return ParsedProxy{}, fmt.Errorf("%w: vmess base64: %v", ErrParse, err)
	}

	var payload vmessPayload
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return ParsedProxy{}, fmt.Errorf("%w: vmess json: %v", ErrParse, err)
	}

	port := numericDefault(payload.Port, 443)
	aid := numericDefault(payload.Aid, 0)

	security := payload.Security
	if security == "" {
		security = "auto"
	}
	net := payload.Net
	if net == "" {
		net = "tcp"
	}
	tls := payload.TLS
	if tls == "" {
		tls = "none"
	}
	sni := payload.SNI
	if sni == "" {
		sni = payload.Host
	}

	streamSettings := map[string]any{
		"network":  net,
		"security": tls,
	}

	switch net {
	case "ws":
		streamSettings["wsSettings"] = map[string]any{
			"path":    payload.Path,
			"headers": map[string]any{"Host": payload.Host},
		}
	case "grpc":
		serviceName := payload.Path
		if serviceName == "" {
			serviceName = payload.ServiceName
		}
		streamSettings["grpcSettings"] = map[string]any{"serviceName": serviceName}
	case "h2":
		var hosts []string
		if payload.Host != "" {
			hosts = strings.Split(payload.Host, ",")
		} else {
			hosts = []string{}
		}
		streamSettings["httpSettings"] = map[string]any{
			"path": payload.Path,
			"host": hosts,
		}
	case "kcp":
		headerType := payload.Type
		if headerType == "" {
			headerType = "none"
		}
		streamSettings["kcpSettings"] = map[string]any{
			"header": map[string]any{"type": headerType},
			"seed":   payload.Path,
		}
	case "quic":
		headerType := payload.Type
		if headerType == "" {
			headerType = "none"
		}
		streamSettings["quicSettings"] = map[string]any{
			"security": payload.Host,
			"key":      payload.Path,
			"header":   map[string]any{"type": headerType},
		}
	}

	if tls == "tls" {
		serverName := sni
		if serverName == "" {
			serverName = payload.Host
		}
		tlsSettings := map[string]any{
			"serverName":    serverName,
			"fingerprint":   "chrome",
			"allowInsecure": true,
		}
		if payload.ALPN != "" {
			tlsSettings["alpn"] = strings.Split(payload.ALPN, ",")
		}
		streamSettings["tlsSettings"] = tlsSettings
	}

	outbound := map[string]any{
		"tag":      tag,
		"protocol": "vmess",
		"settings": map[string]any{
			"vnext": []map[string]any{
				{
					"address": payload.Add,
					"port":    port,
					"users": []map[string]any{
						{
							"id":       payload.ID,
							"alterId":  aid,
							"security": security,
						},
					},
				},
			},
		},
		"streamSettings": streamSettings,
		"sniffing":       sniffing(),
	}

	return ParsedProxy{
		Protocol: ProtocolVMess,
		Tag:      tag,
		Remark:   payload.Remark,
		Outbound: outbound,
	}, nil
}

// numericDefault extracts an int from a field that may have arrived as a
// JSON string or number, falling back to def on any failure.
func numericDefault(v any, def int) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}
