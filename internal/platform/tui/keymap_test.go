package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"w", runeKey('w'), core.ActionForward, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionForward, false},
		{"s", runeKey('s'), core.ActionBackward, false},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionTurnLeft, false},
		{"d", runeKey('d'), core.ActionTurnRight, false},
		{"z", runeKey('z'), core.ActionStrafeLeft, false},
		{"e", runeKey('e'), core.ActionStrafeRight, false},
		{"m", runeKey('m'), core.ActionMinimap, false},
		{"l", runeKey('l'), core.ActionDump, false},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionDump, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.expected || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.expected, tc.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('w'), &frame) {
		t.Error("w should not quit")
	}
	km.MapKeyToFrame(runeKey('a'), &frame)
	km.MapKeyToFrame(runeKey('x'), &frame)

	if !frame.Has(core.ActionForward) || !frame.Has(core.ActionTurnLeft) {
		t.Error("frame should hold both actions pressed between ticks")
	}
	if frame.Has(core.ActionNone) {
		t.Error("unbound keys should not be recorded")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('h'), MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeySpace}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('b'), MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}

func TestWriteDump(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dumps")
	now := time.Date(2024, 5, 1, 12, 30, 45, 123_000_000, time.UTC)

	path, err := WriteDump(dir, "maze", "hello", now)
	if err != nil {
		t.Fatalf("WriteDump() failed: %v", err)
	}
	if want := filepath.Join(dir, "maze_20240501_123045.123.txt"); path != want {
		t.Errorf("path = %q, expected %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions = %o, expected 600", perm)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0:00.0"},
		{1500 * time.Millisecond, "0:01.5"},
		{59*time.Second + 990*time.Millisecond, "0:59.9"},
		{2*time.Minute + 5*time.Second, "2:05.0"},
		{75 * time.Minute, "75:00.0"},
	}

	for _, tc := range tests {
		if got := FormatDuration(tc.d); got != tc.expected {
			t.Errorf("FormatDuration(%v) = %q, expected %q", tc.d, got, tc.expected)
		}
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		fps      int
		expected time.Duration
	}{
		{30, time.Second / 30},
		{60, time.Second / 60},
		{0, time.Second / 30},
		{-5, time.Second / 30},
	}
	for _, tc := range tests {
		if got := tickInterval(tc.fps); got != tc.expected {
			t.Errorf("tickInterval(%d) = %v, expected %v", tc.fps, got, tc.expected)
		}
	}
}
