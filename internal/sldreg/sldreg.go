// Package sldreg inspects the SLD destination artifacts the host agent keeps
// on local disk: the slddest configuration files written by the sldreg binary
// and the outside-discovery log.
package sldreg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/sapops/hostctl/internal/logging"
)

// DefaultAgentDir is the installation directory of the SAP Host Agent.
const DefaultAgentDir = "/usr/sap/hostctrl"

var returnCodePattern = regexp.MustCompile(`Return code: ([0-9]{3})`)

// ConnectConfig is the destination stored in a slddest configuration file.
type ConnectConfig struct {
	Host  string
	Port  int
	User  string
	HTTPS bool
}

// Matches reports whether the stored destination equals the desired one.
// HTTPS must be enabled for a match; plaintext destinations are always
// considered stale.
func (c ConnectConfig) Matches(host string, port int, user string) bool {
	return c.Host == host && c.Port == port && c.User == user && c.HTTPS
}

// CommandRunner executes a command and returns its combined output. It exists
// so tests can avoid shelling out to the sldreg binary.
type CommandRunner func(ctx context.Context, name string, env []string, args ...string) ([]byte, error)

func defaultRunner(ctx context.Context, name string, env []string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	return cmd.CombinedOutput()
}

// Inspector reads and interprets the host agent's SLD artifacts.
type Inspector struct {
	AgentDir string
	runner   CommandRunner
	log      logging.Logger
}

// NewInspector returns an Inspector rooted at the given host agent directory.
// An empty dir selects DefaultAgentDir.
func NewInspector(dir string) *Inspector {
	if dir == "" {
		dir = DefaultAgentDir
	}
	return &Inspector{
		AgentDir: dir,
		runner:   defaultRunner,
		log:      logging.New("sldreg"),
	}
}

// WithRunner replaces the command runner, for tests.
func (i *Inspector) WithRunner(runner CommandRunner) *Inspector {
	i.runner = runner
	return i
}

// DestinationPath returns the configuration file path for an SLD destination.
func (i *Inspector) DestinationPath(host string, port int) string {
	return filepath.Join(i.configDir(), fmt.Sprintf("slddest_%s_%d.cfg", host, port))
}

// ListDestinations returns all slddest configuration files.
func (i *Inspector) ListDestinations() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(i.configDir(), "slddest_*.cfg"))
	if err != nil {
		return nil, fmt.Errorf("failed to list sld destinations: %w", err)
	}
	return matches, nil
}

// ShowConnect runs `sldreg -showconnect` against the configuration file and
// parses the stored destination.
func (i *Inspector) ShowConnect(ctx context.Context, cfgPath string) (ConnectConfig, error) {
	exeDir := filepath.Join(i.AgentDir, "exe")
	binary := filepath.Join(exeDir, "sldreg")
	env := []string{"LD_LIBRARY_PATH=" + exeDir}
	i.log.WithField("config", cfgPath).Debug("reading stored SLD destination")

	output, err := i.runner(ctx, binary, env, "-showconnect", cfgPath)
	if err != nil {
		return ConnectConfig{}, fmt.Errorf("sldreg -showconnect failed: %w", err)
	}
	return parseShowConnect(string(output)), nil
}

// parseShowConnect extracts the connection parameters from sldreg output.
// Lines look like `  host_param='sol.my.domain'`.
func parseShowConnect(output string) ConnectConfig {
	values := map[string]string{}
	for _, line := range strings.Split(output, "\n") {
		for _, param := range []string{"host_param", "https_param", "port_param", "user_param"} {
			idx := strings.Index(line, param)
			if idx < 0 {
				continue
			}
			key, value, found := strings.Cut(line[idx:], "=")
			if !found {
				continue
			}
			values[key] = strings.Trim(strings.TrimSpace(value), "'")
		}
	}
	return ConnectConfig{
		Host:  values["host_param"],
		Port:  cast.ToInt(values["port_param"]),
		User:  values["user_param"],
		HTTPS: values["https_param"] == "y",
	}
}

// DestinationExists reports whether a slddest configuration file is present.
func (i *Inspector) DestinationExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// RemoveDestination deletes a slddest configuration file.
func (i *Inspector) RemoveDestination(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove sld destination %s: %w", path, err)
	}
	return nil
}

// LogPath returns the outside-discovery log file location.
func (i *Inspector) LogPath() string {
	return filepath.Join(i.AgentDir, "work", "outsidediscovery.log")
}

// LastRunSucceeded reports whether the most recent outside discovery run
// logged a 200 return code. A missing log means no successful run yet.
//
// The host agent only writes this log when service/trace = 2 is set in the
// host profile; without it every apply re-executes the discovery.
func (i *Inspector) LastRunSucceeded() (bool, error) {
	data, err := os.ReadFile(i.LogPath())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read outside discovery log: %w", err)
	}

	codes := returnCodePattern.FindAllStringSubmatch(string(data), -1)
	if len(codes) == 0 {
		return false, nil
	}
	last := cast.ToInt(codes[len(codes)-1][1])
	return last == 200, nil
}

// RemoveLog deletes the outside-discovery log, forcing the next run to be
// evaluated fresh. A missing log is not an error.
func (i *Inspector) RemoveLog() (bool, error) {
	err := os.Remove(i.LogPath())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove outside discovery log: %w", err)
	}
	return true, nil
}

func (i *Inspector) configDir() string {
	return filepath.Join(i.AgentDir, "exe", "config.d")
}
