// Package hints appends a short, actionable line to errors users can fix
// themselves. Every hint renders as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// Host is the part of the process environment hints depend on.
type Host struct {
	Getenv func(string) string
	Exists func(path string) bool
}

// System reads the real environment.
func System() Host {
	return Host{Getenv: os.Getenv, Exists: fileutil.FileExists}
}

// Container reports whether the process runs in a container and which
// signal gave it away. MD2SLIDES_CONTAINER=1 forces a positive answer.
func (h Host) Container() (bool, string) {
	if h.Getenv("MD2SLIDES_CONTAINER") == "1" {
		return true, "MD2SLIDES_CONTAINER=1"
	}
	if h.Exists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	// Podman and systemd-nspawn.
	if v := h.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if h.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// CI reports whether a CI runner is detected.
func (h Host) CI() bool {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if h.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// NoSandbox reports whether Chrome should start without its sandbox, which
// fails under CI runners and in most containers.
func (h Host) NoSandbox() bool {
	if h.Getenv("ROD_NO_SANDBOX") == "1" {
		return true
	}
	inContainer, _ := h.Container()
	return h.CI() || inContainer
}

// BrowserConnect suggests the variables that usually fix a failed Chrome
// launch on this host.
func (h Host) BrowserConnect() string {
	var hints []string
	inContainer, _ := h.Container()
	if (h.CI() || inContainer) && h.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if h.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return format(strings.Join(hints, "; "))
}

// ForBrowserConnect is System().BrowserConnect().
func ForBrowserConnect() string {
	return System().BrowserConnect()
}

func ForTimeout() string {
	return format("for large decks, raise export.timeout in the config file")
}

// ForConfigNotFound points at --config and, when one of searched lives in
// the user config directory, at creating it there.
func ForConfigNotFound(searched []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searched {
		if strings.Contains(p, "go-md2slides") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

func ForInputNotFound() string {
	return format("a path without extension is read as .md; check the file exists")
}

func ForOutputDirectory() string {
	return format("check parent directory exists and is writable, or use --output")
}

// ForCargoMissing is attached to Rust blocks built without a toolchain.
func ForCargoMissing() string {
	return format("install Rust from https://rustup.rs or drop rustc from the plugins metadata")
}

// ForThemeNotFound lists the themes to pick from. No themes, no hint.
func ForThemeNotFound(available []string) string {
	return listing("available", available)
}

// ForUnknownPlugin lists the registered plugins. No plugins, no hint.
func ForUnknownPlugin(available []string) string {
	return listing("built-in plugins", available)
}

func listing(label string, names []string) string {
	if len(names) == 0 {
		return ""
	}
	return format(label + ": " + strings.Join(names, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
