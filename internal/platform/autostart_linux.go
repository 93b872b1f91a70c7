//go:build linux

package platform

import (
	"fmt"
	"path/filepath"
	"strings"
)

// loginItem writes an XDG autostart desktop entry.
func (service *platformService) loginItem() loginItem {
	return entryFile{
		dir: func() (string, error) {
			configDir, err := service.GetConfigDir()
			if err != nil {
				return "", err
			}
			return filepath.Join(configDir, "autostart"), nil
		},
		name:    desktopFileName,
		content: buildDesktopEntry,
	}
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func desktopFileName(appName string) string {
	return slug(appName) + ".desktop"
}

func buildDesktopEntry(appName, execPath string) string {
	execLine := execPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}

	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Focus timer
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`, appName, execLine)
}
