//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// loginItem writes a per-user LaunchAgent plist.
func (service *platformService) loginItem() loginItem {
	return entryFile{
		dir: func() (string, error) {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("get home dir: %w", err)
			}
			return filepath.Join(homeDir, "Library", "LaunchAgents"), nil
		},
		name: func(appName string) string {
			return launchAgentLabel(appName) + ".plist"
		},
		content: func(appName, execPath string) string {
			return buildLaunchAgentPlist(launchAgentLabel(appName), execPath)
		},
	}
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func launchAgentLabel(appName string) string {
	return "com.focusflow." + slug(appName)
}

var plistEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func buildLaunchAgentPlist(label, execPath string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`, plistEscaper.Replace(label), plistEscaper.Replace(execPath))
}
