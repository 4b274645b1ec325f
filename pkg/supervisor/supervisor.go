// Package supervisor spawns and tracks xray engine child processes, one
// per logical instance id, bound to a local SOCKS port.
package supervisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/brunusansi/donutbrowser/internal/xraylog"
	"github.com/brunusansi/donutbrowser/pkg/proxyconfig"
	"github.com/brunusansi/donutbrowser/pkg/xrayinstall"
)

// ErrSupervision wraps every failure originating from this package.
var ErrSupervision = errors.New("supervisor: supervision error")

const (
	warmup        = 500 * time.Millisecond
	probeAttempts = 20
	probeInterval = 100 * time.Millisecond
)

// Instance is a running (or recently-stopped) engine process bound to one
// logical id.
type Instance struct {
	ID          string
	PID         int
	LocalPort   uint16
	UpstreamURL string
	ConfigPath  string
}

// Supervisor is a process-wide mutable mapping from id to Instance, guarded
// by a mutex so concurrent start/stop calls serialize on the mapping.
type Supervisor struct {
	locator *xrayinstall.Locator

	mu        sync.Mutex
	instances map[string]Instance
	cmds      map[string]*exec.Cmd
}

// New constructs a Supervisor that installs/locates the engine binary via
// locator.
func New(locator *xrayinstall.Locator) *Supervisor {
	return &Supervisor{
		locator:   locator,
		instances: make(map[string]Instance),
		cmds:      make(map[string]*exec.Cmd),
	}
}

// Start assembles the engine config for upstreamURL (optionally chained
// through preProxyURL), spawns the engine bound to 127.0.0.1:localPort, and
// registers the resulting Instance under id right after the spawn. It then
// probes the port; if the port never becomes reachable, the instance is
// stopped and unregistered again and an error is returned.
func (s *Supervisor) Start(ctx context.Context, id, upstreamURL string, localPort uint16, preProxyURL string) (Instance, error) {
	log := xraylog.L("supervisor")

	if !s.locator.IsInstalled(ctx) {
		return Instance{}, fmt.Errorf("%w: xray is not installed", ErrSupervision)
	}

	config, err := proxyconfig.Assemble(upstreamURL, localPort, preProxyURL)
	if err != nil {
		return Instance{}, fmt.Errorf("%w: assemble config: %v", ErrSupervision, err)
	}

	paths := s.locator.Paths()
	if err := os.MkdirAll(paths.ConfigsRoot, 0o755); err != nil {
		return Instance{}, fmt.Errorf("%w: create configs dir: %v", ErrSupervision, err)
	}

	configPath := filepath.Join(paths.ConfigsRoot, id+".json")
	body, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return Instance{}, fmt.Errorf("%w: marshal config: %v", ErrSupervision, err)
	}
	if err := os.WriteFile(configPath, body, 0o644); err != nil {
		return Instance{}, fmt.Errorf("%w: write config: %v", ErrSupervision, err)
	}

	cmd := exec.CommandContext(ctx, paths.BinaryPath, "run", "-c", configPath)
	cmd.Env = append(os.Environ(), "XRAY_LOCATION_ASSET="+paths.AssetsRoot)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	configureProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		os.Remove(configPath)
		return Instance{}, fmt.Errorf("%w: spawn engine: %v", ErrSupervision, err)
	}

	instance := Instance{
		ID:          id,
		PID:         cmd.Process.Pid,
		LocalPort:   localPort,
		UpstreamURL: upstreamURL,
		ConfigPath:  configPath,
	}

	s.mu.Lock()
	s.instances[id] = instance
	s.cmds[id] = cmd
	s.mu.Unlock()

	log.Info("spawned xray instance",
		zap.String("id", id), zap.Int("pid", instance.PID), zap.Uint16("port", localPort))

	time.Sleep(warmup)

	if !probePort(localPort) {
		s.Stop(id)
		return Instance{}, fmt.Errorf("%w: xray failed to start listening on port %d", ErrSupervision, localPort)
	}

	return instance, nil
}

// probePort attempts a TCP connect to 127.0.0.1:port, retrying up to
// probeAttempts times with probeInterval between tries.
func probePort(port uint16) bool {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	for i := 0; i < probeAttempts; i++ {
		conn, err := net.DialTimeout("tcp", addr, probeInterval)
		if err == nil {
			conn.Close()
			return true
		}
		time.Sleep(probeInterval)
	}
	return false
}

// Stop removes id from the registry, signals its process to terminate, and
// removes its config file. Returns false if id was not registered.
func (s *Supervisor) Stop(id string) bool {
	s.mu.Lock()
	instance, ok := s.instances[id]
	cmd := s.cmds[id]
	delete(s.instances, id)
	delete(s.cmds, id)
	s.mu.Unlock()

	if !ok {
		return false
	}

	if cmd != nil && cmd.Process != nil {
		terminate(cmd.Process)
	}

	os.Remove(instance.ConfigPath)
	return true
}

// StopAll stops every registered instance. It snapshots the key set under
// the lock, releases it, then stops each key outside the lock so a slow
// kill does not block unrelated Start/Stop calls.
func (s *Supervisor) StopAll() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.instances))
	for id := range s.instances {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.Stop(id)
	}
}

// Get returns a copy of the registered Instance for id.
func (s *Supervisor) Get(id string) (Instance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	instance, ok := s.instances[id]
	return instance, ok
}

// List returns a copy of every registered Instance.
func (s *Supervisor) List() []Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Instance, 0, len(s.instances))
	for _, instance := range s.instances {
		out = append(out, instance)
	}
	return out
}
