// internal/engine/browser/chrome.go
package browser

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/law-makers/pricetrack/internal/engine"
)

// FindChrome locates a Chrome/Chromium executable. An explicit path wins,
// then CHROME_PATH, then the per-OS install locations, then PATH.
func FindChrome(preferred string) (string, error) {
	if preferred != "" {
		if isExecutable(preferred) {
			return preferred, nil
		}
		return "", fmt.Errorf("%w: %s is not executable", engine.ErrBrowserNotFound, preferred)
	}

	if path := os.Getenv("CHROME_PATH"); path != "" {
		if isExecutable(path) {
			log.Debug().Str("path", path).Msg("Chrome found via CHROME_PATH environment variable")
			return path, nil
		}
		log.Warn().Str("path", path).Msg("CHROME_PATH set but not executable")
	}

	for _, path := range candidates() {
		if isExecutable(path) {
			log.Debug().Str("path", path).Str("os", runtime.GOOS).Msg("Chrome found at standard location")
			return path, nil
		}
	}

	if path := findInPath(); path != "" {
		log.Debug().Str("path", path).Msg("Chrome found in PATH")
		return path, nil
	}

	return "", engine.ErrBrowserNotFound
}

// candidates lists the usual install locations for the running OS
func candidates() []string {
	home := os.Getenv("HOME")

	switch runtime.GOOS {
	case "darwin":
		paths := []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
		}
		if home != "" {
			paths = append(paths, filepath.Join(home, "Applications/Google Chrome.app/Contents/MacOS/Google Chrome"))
		}
		return paths

	case "windows":
		var paths []string
		for _, base := range []string{os.Getenv("ProgramFiles"), os.Getenv("ProgramFiles(x86)"), os.Getenv("LocalAppData")} {
			if base == "" {
				continue
			}
			paths = append(paths,
				filepath.Join(base, "Google\\Chrome\\Application\\chrome.exe"),
				filepath.Join(base, "Chromium\\Application\\chrome.exe"),
				filepath.Join(base, "Microsoft\\Edge\\Application\\msedge.exe"),
			)
		}
		return paths

	default:
		paths := []string{
			"/usr/bin/google-chrome-stable",
			"/usr/bin/google-chrome",
			"/usr/bin/chromium-browser",
			"/usr/bin/chromium",
			"/snap/bin/chromium",
		}
		if home != "" {
			paths = append(paths,
				filepath.Join(home, ".local/share/flatpak/exports/bin/com.google.Chrome"),
				filepath.Join(home, ".local/share/flatpak/exports/bin/org.chromium.Chromium"),
			)
		}
		return paths
	}
}

// isExecutable checks if a file exists and is executable
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	if runtime.GOOS == "windows" {
		return !info.IsDir()
	}

	return !info.IsDir() && info.Mode()&0111 != 0
}

// findInPath searches for Chrome-like browsers in PATH
func findInPath() string {
	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser", "chrome", "msedge"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// Version returns the browser's self-reported version, or "unknown".
func Version(chromePath string) string {
	if chromePath == "" || runtime.GOOS == "windows" {
		return "unknown"
	}

	out, err := exec.Command(chromePath, "--version").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}
