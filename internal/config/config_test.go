package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) failed: %v", err)
	}
	def := DefaultMazeConfig()

	// The YAML literal must round to the same float64 as math.Pi / 3.
	if cfg.Render.FOV != math.Pi/3 {
		t.Errorf("embedded fov = %v, expected %v", cfg.Render.FOV, math.Pi/3)
	}
	if cfg.Render != def.Render {
		t.Errorf("render mismatch:\n%+v\n%+v", cfg.Render, def.Render)
	}
	if cfg.Player != def.Player {
		t.Errorf("player mismatch:\n%+v\n%+v", cfg.Player, def.Player)
	}
	if cfg.Generator != def.Generator {
		t.Errorf("generator mismatch:\n%+v\n%+v", cfg.Generator, def.Generator)
	}
	if len(cfg.Difficulties) != len(def.Difficulties) {
		t.Fatalf("got %d difficulties, expected %d", len(cfg.Difficulties), len(def.Difficulties))
	}
	for i := range def.Difficulties {
		if cfg.Difficulties[i] != def.Difficulties[i] {
			t.Errorf("difficulty %d = %+v, expected %+v", i, cfg.Difficulties[i], def.Difficulties[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	data := "render:\n  max_distance: 16\ndifficulties:\n  - name: tiny\n    width: 12\n    height: 12\n    room_size: 2\ndefault_difficulty: tiny\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Render.MaxDistance != 16 {
		t.Errorf("MaxDistance = %v, expected 16", cfg.Render.MaxDistance)
	}
	if cfg.Render.Columns != 120 {
		t.Errorf("unset keys should keep defaults, Columns = %d", cfg.Render.Columns)
	}
	if len(cfg.Difficulties) != 1 || cfg.Difficulties[0].Name != "tiny" {
		t.Errorf("difficulties should be replaced, got %+v", cfg.Difficulties)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("render: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("render:\n  fov: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*MazeConfig)
		want   string
	}{
		{"fov", func(c *MazeConfig) { c.Render.FOV = 0 }, "fov"},
		{"gradient", func(c *MazeConfig) { c.Render.Gradient = "@" }, "gradient"},
		{"speed", func(c *MazeConfig) { c.Player.MoveSpeed = 0 }, "speeds"},
		{"margin", func(c *MazeConfig) { c.Player.CollisionMargin = 0.5 }, "collision_margin"},
		{"solvability", func(c *MazeConfig) { c.Generator.Solvability = "maybe" }, "solvability"},
		{"no profiles", func(c *MazeConfig) { c.Difficulties = nil; c.Default = "" }, "no difficulty"},
		{"room size", func(c *MazeConfig) { c.Difficulties[0].RoomSize = 1 }, "room_size"},
		{"duplicate", func(c *MazeConfig) { c.Difficulties[1].Name = "easy" }, "duplicate"},
		{"default", func(c *MazeConfig) { c.Default = "impossible" }, "default_difficulty"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMazeConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestProfileLookup(t *testing.T) {
	cfg := DefaultMazeConfig()

	p, err := cfg.Profile("HARD")
	if err != nil {
		t.Fatalf("Profile() failed: %v", err)
	}
	if p.Width != 200 || p.RoomSize != 7 {
		t.Errorf("hard = %+v", p)
	}

	p, err = cfg.Profile("")
	if err != nil || p.Name != "easy" {
		t.Errorf("empty name should select the default, got %+v, %v", p, err)
	}

	if _, err := cfg.Profile("nightmare"); err == nil || !strings.Contains(err.Error(), "easy") {
		t.Errorf("unknown difficulty error should list names, got %v", err)
	}
}

func TestFallbacks(t *testing.T) {
	cfg := DefaultMazeConfig()

	chain, err := cfg.Fallbacks("hard")
	if err != nil {
		t.Fatalf("Fallbacks() failed: %v", err)
	}
	var names []string
	for _, p := range chain {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "hard,normal,easy" {
		t.Errorf("Fallbacks(hard) = %s, expected hard,normal,easy", got)
	}

	chain, _ = cfg.Fallbacks("easy")
	if len(chain) != 1 {
		t.Errorf("smallest profile has no fallbacks, got %d entries", len(chain))
	}
}

func TestDifficultyNamesSorted(t *testing.T) {
	cfg := DefaultMazeConfig()
	cfg.Difficulties = []DifficultyProfile{
		{Name: "big", Width: 90, Height: 90, RoomSize: 3},
		{Name: "small", Width: 20, Height: 20, RoomSize: 2},
	}
	cfg.Default = ""

	names := cfg.DifficultyNames()
	if len(names) != 2 || names[0] != "small" || names[1] != "big" {
		t.Errorf("DifficultyNames() = %v", names)
	}
	if cfg.DefaultDifficulty() != "small" {
		t.Errorf("DefaultDifficulty() = %q, expected the smallest profile", cfg.DefaultDifficulty())
	}
}
