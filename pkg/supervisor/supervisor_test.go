package supervisor

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunusansi/donutbrowser/pkg/xrayinstall"
)

func TestProbePort_SucceedsOnOpenPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	assert.True(t, probePort(port))
}

func TestProbePort_FailsOnClosedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	ln.Close()

	assert.False(t, probePort(port))
}

func TestSupervisor_StopUnknownID(t *testing.T) {
	l, err := xrayinstall.New("DonutBrowserSupervisorTest2")
	require.NoError(t, err)

	sup := New(l)
	assert.False(t, sup.Stop("does-not-exist"))
}

func TestSupervisor_GetAndList_Empty(t *testing.T) {
	l, err := xrayinstall.New("DonutBrowserSupervisorTest3")
	require.NoError(t, err)

	sup := New(l)
	_, ok := sup.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, sup.List())
}

func TestSupervisor_StartFailsWhenNotInstalled(t *testing.T) {
	l, err := xrayinstall.New(fmt.Sprintf("DonutBrowserSupervisorTest-%d", time.Now().UnixNano()%1_000_000))
	require.NoError(t, err)

	sup := New(l)
	_, err = sup.Start(context.Background(), "inst1", "socks://127.0.0.1:1080", 19999, "")
	require.Error(t, err)
}
