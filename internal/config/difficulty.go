package config

import (
	"fmt"
	"sort"
	"strings"
)

// Profile returns the difficulty profile with the given name. An empty name
// selects the configured default.
func (c MazeConfig) Profile(name string) (DifficultyProfile, error) {
	if name == "" {
		name = c.DefaultDifficulty()
	}
	for _, p := range c.Difficulties {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return DifficultyProfile{}, fmt.Errorf("unknown difficulty %q (available: %s)", name, strings.Join(c.DifficultyNames(), ", "))
}

// DefaultDifficulty returns the configured default, or the smallest profile.
func (c MazeConfig) DefaultDifficulty() string {
	if c.Default != "" {
		return c.Default
	}
	if ps := c.SortedProfiles(); len(ps) > 0 {
		return ps[0].Name
	}
	return ""
}

// DifficultyNames returns profile names ordered by grid size.
func (c MazeConfig) DifficultyNames() []string {
	ps := c.SortedProfiles()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// SortedProfiles returns the profiles ordered from the smallest grid to the largest.
func (c MazeConfig) SortedProfiles() []DifficultyProfile {
	ps := make([]DifficultyProfile, len(c.Difficulties))
	copy(ps, c.Difficulties)
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].Cells() < ps[j].Cells()
	})
	return ps
}

// Fallbacks returns the named profile followed by every strictly smaller one,
// largest first. The game walks this list when generation fails.
func (c MazeConfig) Fallbacks(name string) ([]DifficultyProfile, error) {
	want, err := c.Profile(name)
	if err != nil {
		return nil, err
	}

	chain := []DifficultyProfile{want}
	ps := c.SortedProfiles()
	for i := len(ps) - 1; i >= 0; i-- {
		if ps[i].Cells() < want.Cells() {
			chain = append(chain, ps[i])
		}
	}
	return chain, nil
}
