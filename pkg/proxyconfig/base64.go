package proxyconfig

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// decodeBase64 decodes b64 the way vmess:// and legacy ss:// payloads are
// encoded in the wild: both URL-safe substitution characters collapse onto
// '+' (this is not strictly correct URL-safe base64 — '_' ought to map to
// '/' — but community encoders for these dialects consistently do this, so
// it is preserved rather than corrected).
func decodeBase64(b64 string) ([]byte, error) {
	b64 = strings.TrimSpace(b64)
	b64 = strings.NewReplacer("-", "+", "_", "+").Replace(b64)

	if pad := len(b64) % 4; pad != 0 {
		b64 += strings.Repeat("=", 4-pad)
	}

	return base64.StdEncoding.DecodeString(b64)
}

// urlDecode percent-decodes s, falling back to the raw string if decoding
// fails (mirrors how each dialect's remark fragment is handled).
func urlDecode(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
