package xrayinstall

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssetName(t *testing.T) {
	cases := []struct {
		osName, arch, want string
	}{
		{"windows", "x64", "Xray-windows-64.zip"},
		{"windows", "arm64", "Xray-windows-32.zip"}, // not distinguished from x86, falls to the 32-bit default
		{"windows", "x86", "Xray-windows-32.zip"},

		{"darwin", "arm64", "Xray-macos-arm64-v8a.zip"},
		{"darwin", "x64", "Xray-macos-64.zip"},
		{"darwin", "x86", "Xray-macos-64.zip"}, // falls through to the 64-bit default

		{"linux", "x64", "Xray-linux-64.zip"},
		{"linux", "arm64", "Xray-linux-arm64-v8a.zip"},
		{"linux", "x86", "Xray-linux-32.zip"},
	}

	for _, tc := range cases {
		got := assetName(tc.osName, tc.arch)
		assert.Equal(t, tc.want, got, "assetName(%s, %s)", tc.osName, tc.arch)
	}
}

func TestExecutableName(t *testing.T) {
	assert.Equal(t, "xray.exe", executableName("windows"))
	assert.Equal(t, "xray", executableName("darwin"))
	assert.Equal(t, "xray", executableName("linux"))
}
