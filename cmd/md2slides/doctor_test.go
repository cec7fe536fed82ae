package main

// Notes:
// - runDoctor depends on the host (cargo, Chrome, containers). We check the
//   shape of the result and the rendering, not which tools are installed.
// - Container detection is covered by hints.Host tests.

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Parallel()

	env, stdout, _ := newTestEnv(nil)
	code := runDoctorCmd([]string{"--json"}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	switch result.Status {
	case "ready", "warnings":
		if code != ExitSuccess {
			t.Errorf("exit code = %d for status %q", code, result.Status)
		}
	case "errors":
		if code != ExitGeneral {
			t.Errorf("exit code = %d for status errors", code)
		}
	default:
		t.Errorf("status = %q", result.Status)
	}
	if result.Env.OS == "" || result.Env.Arch == "" {
		t.Errorf("platform missing: %+v", result.Env)
	}
}

func TestRunDoctorCmd_Help(t *testing.T) {
	t.Parallel()

	env, stdout, _ := newTestEnv(nil)
	if code := runDoctorCmd([]string{"--help"}, env); code != ExitSuccess {
		t.Errorf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "Usage: md2slides doctor") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result doctorResult
		want   []string
	}{
		{
			name: "ready",
			result: doctorResult{
				Status: "ready",
				Rust:   rustInfo{CargoFound: true, CargoVersion: "cargo 1.80.0", RustcFound: true, RustcVersion: "rustc 1.80.0"},
				Chrome: chromeInfo{Found: true, Path: "/usr/bin/chromium", Sandbox: true},
				Env:    envInfo{OS: "linux", Arch: "amd64"},
				System: systemInfo{TempWritable: true},
			},
			want: []string{"cargo: cargo 1.80.0", "rustc: rustc 1.80.0", "Found at /usr/bin/chromium", "Sandbox: enabled", "Status: Ready to build"},
		},
		{
			name: "missing tools",
			result: doctorResult{
				Status:   "warnings",
				Env:      envInfo{OS: "linux", Arch: "arm64", Container: true, ContainerHint: "/.dockerenv"},
				System:   systemInfo{TempWritable: true},
				Warnings: []string{"cargo not found"},
			},
			want: []string{"cargo: not found", "Not found", "Container: detected (/.dockerenv)", "cargo not found", "Ready with warnings"},
		},
		{
			name: "errors",
			result: doctorResult{
				Status: "errors",
				Env:    envInfo{OS: "linux", Arch: "amd64"},
				Errors: []string{"Temp directory not writable: /tmp"},
			},
			want: []string{"Temp directory: not writable", "Errors:", "Not ready"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printDoctorResult(&buf, &tt.result)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
