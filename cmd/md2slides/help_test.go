package main

import (
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args       []string
		wantStdout string
		wantStderr string
	}{
		{nil, "Commands:", ""},
		{[]string{"build"}, "Usage: md2slides build", ""},
		{[]string{"doctor"}, "Usage: md2slides doctor", ""},
		{[]string{"completion"}, "Usage: md2slides completion", ""},
		{[]string{"version"}, "Usage: md2slides version", ""},
		{[]string{"help"}, "Usage: md2slides help", ""},
		{[]string{"serve"}, "", "Unknown command: serve"},
	}

	for _, tt := range tests {
		env, stdout, stderr := newTestEnv(nil)
		runHelp(tt.args, env)
		if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
			t.Errorf("runHelp(%v) stdout = %q, want %q", tt.args, stdout, tt.wantStdout)
		}
		if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
			t.Errorf("runHelp(%v) stderr = %q, want %q", tt.args, stderr, tt.wantStderr)
		}
	}
}

func TestPrintBuildUsage_ListsPluginsAndThemes(t *testing.T) {
	t.Parallel()

	env, stdout, _ := newTestEnv(nil)
	printBuildUsage(env.Stdout)

	for _, want := range []string{"rustc", "subslides", "default"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("build usage missing %q", want)
		}
	}
}
