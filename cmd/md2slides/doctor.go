package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-md2slides/internal/hints"
)

// versionTimeout bounds each "--version" call.
const versionTimeout = 5 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Rust     rustInfo   `json:"rust"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// rustInfo holds toolchain detection results for the rustc plugin.
type rustInfo struct {
	CargoFound   bool   `json:"cargo_found"`
	CargoPath    string `json:"cargo_path,omitempty"`
	CargoVersion string `json:"cargo_version,omitempty"`
	RustcFound   bool   `json:"rustc_found"`
	RustcVersion string `json:"rustc_version,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results for --pdf.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkRust(result)
	checkChrome(result)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkRust detects cargo and rustc. Without them Rust blocks still build,
// with an error message in place of their output.
func checkRust(result *doctorResult) {
	cargo, err := exec.LookPath("cargo")
	if err != nil {
		result.Warnings = append(result.Warnings,
			"cargo not found: Rust code blocks will show an error. Install Rust from https://rustup.rs")
		return
	}
	result.Rust.CargoFound = true
	result.Rust.CargoPath = cargo
	result.Rust.CargoVersion = toolVersion(cargo)

	rustc, err := exec.LookPath("rustc")
	if err != nil {
		result.Warnings = append(result.Warnings, "rustc not found next to cargo")
		return
	}
	result.Rust.RustcFound = true
	result.Rust.RustcVersion = toolVersion(rustc)
}

// checkChrome detects Chrome/Chromium installation. Only --pdf needs it.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found: --pdf will download Chromium on first use, or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	result.Chrome.Version = toolVersion(chromePath)
	if result.Chrome.Version == "" {
		result.Warnings = append(result.Warnings, "Could not get Chrome version")
	}

	// Sandbox status: disabled if ROD_NO_SANDBOX=1
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// toolVersion runs "<bin> --version" and returns its first line, or "".
func toolVersion(bin string) string {
	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, bin, "--version").Output() // #nosec G204 -- bin comes from PATH lookup
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	host := hints.System()
	result.Env.Container, result.Env.ContainerHint = host.Container()
	result.Env.CI = host.CI()

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 for --pdf")
	}
}

// checkSystem verifies the temp directory is writable. Rust blocks are
// compiled in a temporary cargo workspace.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "md2slides-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	ok, warn, fail := okLabel("[OK]"), warnColor.Sprint("[WARN]"), errColor.Sprint("[ERROR]")

	fmt.Fprintln(w, "md2slides doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Rust (rustc plugin)")
	if r.Rust.CargoFound {
		fmt.Fprintf(w, "  %s cargo: %s\n", ok, nonEmpty(r.Rust.CargoVersion, r.Rust.CargoPath))
		if r.Rust.RustcFound {
			fmt.Fprintf(w, "  %s rustc: %s\n", ok, nonEmpty(r.Rust.RustcVersion, "found"))
		} else {
			fmt.Fprintf(w, "  %s rustc: not found\n", warn)
		}
	} else {
		fmt.Fprintf(w, "  %s cargo: not found\n", warn)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (--pdf)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  %s Found at %s\n", ok, r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  %s Version: %s\n", ok, r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintf(w, "  %s Sandbox: enabled\n", ok)
		} else {
			fmt.Fprintf(w, "  %s Sandbox: disabled (ROD_NO_SANDBOX=1)\n", ok)
		}
	} else {
		fmt.Fprintf(w, "  %s Not found\n", warn)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", ok, r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  %s Container: detected (%s)\n", ok, r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintf(w, "  %s CI: detected\n", ok)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  %s Temp directory: writable\n", ok)
	} else {
		fmt.Fprintf(w, "  %s Temp directory: not writable\n", fail)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", warn, msg)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, msg := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", fail, msg)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to build")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
