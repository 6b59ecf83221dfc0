package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runWithArgs(t *testing.T, args ...string) error {
	t.Helper()
	saved := os.Args
	defer func() { os.Args = saved }()
	os.Args = append([]string{"sislc"}, args...)
	return run()
}

func exitCodeOf(err error) int {
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	return 3
}

func TestRun_UsageAndInputErrorsExitTwo(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"no mode", nil},
		{"both modes", []string{"--dumps", "--loads"}},
		{"unknown flag", []string{"--frobnicate"}},
		{"max-length with loads", []string{"--loads", "--max-length", "5"}},
		{"unreadable input", []string{"--loads", "--input", "/nonexistent/input.sisl"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := runWithArgs(t, tc.args...)
			if err == nil {
				t.Fatalf("Expected error for args %v", tc.args)
			}
			if code := exitCodeOf(err); code != 2 {
				t.Errorf("Expected exit code 2, got %d (%v)", code, err)
			}
		})
	}
}

func TestRun_DataErrorExitsTwo(t *testing.T) {
	input := filepath.Join(t.TempDir(), "bad.sisl")
	if err := os.WriteFile(input, []byte(`{a: !int "nope"}`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	err := runWithArgs(t, "--loads", "--input", input)
	if err == nil {
		t.Fatalf("Expected error for malformed input")
	}
	if code := exitCodeOf(err); code != 2 {
		t.Errorf("Expected exit code 2, got %d (%v)", code, err)
	}
}

func TestRun_LoadsToFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.sisl")
	output := filepath.Join(dir, "out.json")
	if err := os.WriteFile(input, []byte(`{name: !str "Alice", age: !int "30"}`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if err := runWithArgs(t, "--loads", "--input", input, "--output", output); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	got := strings.TrimSuffix(string(data), "\n")
	want := `{"name":"Alice","age":30}`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
