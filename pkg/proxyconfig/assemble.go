package proxyconfig

import "fmt"

// MainTag and PreProxyTag are the fixed routing tags assigned to the main
// and pre-proxy outbounds respectively; the engine's routing rule always
// targets MainTag.
const (
	MainTag     = "proxy_main"
	PreProxyTag = "proxy_pre"
	DirectTag   = "direct"
)

// Assemble builds a complete engine config document for mainURL, listening
// on 127.0.0.1:localPort. If preProxyURL is non-empty, its outbound is
// chained ahead of the main outbound via proxySettings.
func Assemble(mainURL string, localPort uint16, preProxyURL string) (map[string]any, error) {
	mainProxy, err := Parse(MainTag, mainURL)
	if err != nil {
		return nil, fmt.Errorf("assemble main proxy: %w", err)
	}

	var outbounds []map[string]any

	if preProxyURL != "" {
		preProxy, err := Parse(PreProxyTag, preProxyURL)
		if err != nil {
			return nil, fmt.Errorf("assemble pre-proxy: %w", err)
		}
		outbounds = append(outbounds, preProxy.Outbound)
		mainProxy.Outbound["proxySettings"] = map[string]any{"tag": PreProxyTag}
	}

	outbounds = append(outbounds, mainProxy.Outbound)
	outbounds = append(outbounds, map[string]any{"protocol": "freedom", "tag": DirectTag})

	config := map[string]any{
		"log": map[string]any{"loglevel": "warning"},
		"inbounds": []map[string]any{
			{
				"port":     localPort,
				"listen":   "127.0.0.1",
				"protocol": "socks",
				"settings": map[string]any{"udp": true},
			},
		},
		"outbounds": outbounds,
		"routing": map[string]any{
			"domainStrategy": "IPIfNonMatch",
			"rules": []map[string]any{
				{
					"type":       "field",
					"outboundTag": MainTag,
					"port":       "0-65535",
				},
			},
		},
	}

	return config, nil
}
