package proxyconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_WithoutPreProxy(t *testing.T) {
	config, err := Assemble("ss://YWVzLTI1Ni1nY206cGFzc3dvcmQ=@example.com:8388", 1080, "")
	require.NoError(t, err)

	outbounds := config["outbounds"].([]map[string]any)
	require.Len(t, outbounds, 2)
	assert.Equal(t, MainTag, outbounds[0]["tag"])
	assert.Equal(t, DirectTag, outbounds[1]["tag"])
	assert.Equal(t, "freedom", outbounds[1]["protocol"])
	assert.NotContains(t, outbounds[0], "proxySettings")

	inbounds := config["inbounds"].([]map[string]any)
	require.Len(t, inbounds, 1)
	assert.Equal(t, uint16(1080), inbounds[0]["port"])
	assert.Equal(t, "127.0.0.1", inbounds[0]["listen"])
	assert.Equal(t, "socks", inbounds[0]["protocol"])

	routing := config["routing"].(map[string]any)
	rules := routing["rules"].([]map[string]any)
	require.Len(t, rules, 1)
	assert.Equal(t, MainTag, rules[0]["outboundTag"])
}

func TestAssemble_WithPreProxy(t *testing.T) {
	config, err := Assemble(
		"ss://YWVzLTI1Ni1nY206cGFzc3dvcmQ=@example.com:8388",
		1080,
		"socks://127.0.0.1:9050",
	)
	require.NoError(t, err)

	outbounds := config["outbounds"].([]map[string]any)
	require.Len(t, outbounds, 3)
	assert.Equal(t, PreProxyTag, outbounds[0]["tag"])
	assert.Equal(t, MainTag, outbounds[1]["tag"])
	assert.Equal(t, DirectTag, outbounds[2]["tag"])

	proxySettings := outbounds[1]["proxySettings"].(map[string]any)
	assert.Equal(t, PreProxyTag, proxySettings["tag"])
}

func TestAssemble_PropagatesMainParseError(t *testing.T) {
	_, err := Assemble("ftp://example.com", 1080, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestAssemble_PropagatesPreProxyParseError(t *testing.T) {
	_, err := Assemble("ss://YWVzLTI1Ni1nY206cGFzc3dvcmQ=@example.com:8388", 1080, "ftp://example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}
