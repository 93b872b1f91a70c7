//go:build windows

package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

// registryRun registers the app under the per-user Run key via reg.exe.
type registryRun struct{}

func (service *platformService) loginItem() loginItem {
	return registryRun{}
}

func (registryRun) install(appName, execPath string) error {
	return runReg("add", registryRunKey, "/v", appName, "/t", "REG_SZ", "/d", quoteWindowsPath(execPath), "/f")
}

func (run registryRun) remove(appName string) error {
	installed, err := run.installed(appName)
	if err != nil || !installed {
		return err
	}
	return runReg("delete", registryRunKey, "/v", appName, "/f")
}

// installed treats a non-zero reg query exit as a missing value.
func (registryRun) installed(appName string) (bool, error) {
	err := exec.Command("reg", "query", registryRunKey, "/v", appName).Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, fmt.Errorf("reg query: %w", err)
}

func runReg(args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("reg %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func quoteWindowsPath(execPath string) string {
	return `"` + strings.Trim(execPath, `"`) + `"`
}
