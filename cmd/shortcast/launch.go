package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"shortcast/internal/ipc"
)

// daemonBinaryName is the sibling executable launched by `shortcast start`.
const daemonBinaryName = "shortcastd"

// daemonExecutable locates shortcastd next to the running CLI binary,
// falling back to PATH lookup.
func daemonExecutable() (string, error) {
	exe, err := os.Executable()
	if err == nil {
		candidate := filepath.Join(filepath.Dir(exe), daemonBinaryName)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	path, lookErr := exec.LookPath(daemonBinaryName)
	if lookErr != nil {
		return "", fmt.Errorf("locate %s binary: %w", daemonBinaryName, lookErr)
	}
	return path, nil
}

// launchDaemon starts shortcastd detached from the CLI process.
func launchDaemon(exe string, configPath string) error {
	args := []string{}
	if strings.TrimSpace(configPath) != "" {
		args = append(args, "--config", configPath)
	}
	cmd := exec.Command(exe, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch daemon: %w", err)
	}
	// The daemon owns its own lifetime from here.
	return cmd.Process.Release()
}

// waitForSocket polls the IPC socket until the daemon answers or the
// deadline passes.
func waitForSocket(socket string, timeout time.Duration) (*ipc.Client, error) {
	deadline := time.Now().Add(timeout)
	for {
		client, err := ipc.Dial(socket)
		if err == nil {
			return client, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("daemon did not come up within %s: %w", timeout, err)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
