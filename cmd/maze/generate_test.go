package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withFlags resets the package flag variables to small, deterministic values
// and restores them when the test ends.
func withFlags(t *testing.T) {
	t.Helper()

	saved := struct {
		difficulty, out, config, db, logLevel string
		width, height, room, count, parallel  int
		seed                                  int64
	}{
		flagGenDifficulty, flagGenOut, flagConfig, flagDBPath, flagLogLevel,
		flagGenWidth, flagGenHeight, flagGenRoom, flagGenCount, flagGenParallel,
		flagSeed,
	}
	t.Cleanup(func() {
		flagGenDifficulty, flagGenOut, flagConfig, flagDBPath, flagLogLevel = saved.difficulty, saved.out, saved.config, saved.db, saved.logLevel
		flagGenWidth, flagGenHeight, flagGenRoom, flagGenCount, flagGenParallel = saved.width, saved.height, saved.room, saved.count, saved.parallel
		flagSeed = saved.seed
	})

	flagGenDifficulty, flagGenOut, flagConfig, flagDBPath, flagLogLevel = "", "", "", "", "error"
	flagGenWidth, flagGenHeight, flagGenRoom, flagGenCount, flagGenParallel = 10, 10, 2, 1, 2
	flagSeed = 42
}

// runGenerateTo runs the generate command with its output captured.
func runGenerateTo(t *testing.T) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	generateCmd.SetOut(&out)
	generateCmd.SetErr(&errOut)
	t.Cleanup(func() {
		generateCmd.SetOut(nil)
		generateCmd.SetErr(nil)
	})

	err := runGenerate(generateCmd, nil)
	return out.String(), err
}

func TestRunGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(dir string)
		contains string
	}{
		{
			name:     "unknown difficulty",
			setup:    func(string) { flagGenDifficulty = "nope" },
			contains: "nope",
		},
		{
			name:     "batch without out directory",
			setup:    func(string) { flagGenCount = 3 },
			contains: "--out",
		},
		{
			name:     "missing config file",
			setup:    func(dir string) { flagConfig = filepath.Join(dir, "missing.yaml") },
			contains: "load config",
		},
		{
			name:     "bad log level",
			setup:    func(string) { flagLogLevel = "loud" },
			contains: "--log-level",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			withFlags(t)
			tc.setup(t.TempDir())

			_, err := runGenerateTo(t)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.contains) {
				t.Errorf("error %q should mention %q", err, tc.contains)
			}
		})
	}
}

func TestRunGenerateSingle(t *testing.T) {
	withFlags(t)

	out, err := runGenerateTo(t)
	if err != nil {
		t.Fatalf("runGenerate() failed: %v", err)
	}
	if !strings.Contains(out, "S") || !strings.Contains(out, "0") {
		t.Errorf("maze text should contain a start and an exit:\n%s", out)
	}
}

func TestRunGenerateToFile(t *testing.T) {
	withFlags(t)
	flagGenOut = filepath.Join(t.TempDir(), "maze.txt")

	out, err := runGenerateTo(t)
	if err != nil {
		t.Fatalf("runGenerate() failed: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should stay empty when writing a file, got %q", out)
	}
	data, err := os.ReadFile(flagGenOut)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "S") {
		t.Errorf("written maze has no start:\n%s", data)
	}
}

func TestRunGenerateBatch(t *testing.T) {
	withFlags(t)
	dir := filepath.Join(t.TempDir(), "mazes")
	flagGenOut = dir
	flagGenCount = 3

	out, err := runGenerateTo(t)
	if err != nil {
		t.Fatalf("runGenerate() failed: %v", err)
	}

	paths := strings.Fields(out)
	if len(paths) != 3 {
		t.Fatalf("expected 3 listed paths, got %q", out)
	}
	for _, p := range paths {
		if filepath.Dir(p) != dir {
			t.Errorf("%s is outside %s", p, dir)
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("listed file missing: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 files in %s, got %d", dir, len(entries))
	}
}

func TestRunGameUnknownMode(t *testing.T) {
	withFlags(t)

	err := runGame("nope")
	if err == nil || !strings.Contains(err.Error(), "not registered") {
		t.Errorf("runGame(nope) = %v, expected a not registered error", err)
	}
}

func TestOpenStore(t *testing.T) {
	tests := []struct {
		name      string
		path      func(dir string) string
		wantStore bool
	}{
		{"empty path disables history", func(string) string { return "" }, false},
		{"file path opens a store", func(dir string) string { return filepath.Join(dir, "runs.db") }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			withFlags(t)
			flagDBPath = tc.path(t.TempDir())

			store, err := openStore()
			if err != nil {
				t.Fatalf("openStore() failed: %v", err)
			}
			if (store != nil) != tc.wantStore {
				t.Fatalf("openStore() store = %v, expected present=%v", store, tc.wantStore)
			}
			if store != nil {
				store.Close()
			}
		})
	}
}
