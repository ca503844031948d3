// Package exclude decides which windows are exempt from the
// maximised/overlay appearance logic.
package exclude

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules is the on-disk rule file format. All matching is
// case-insensitive; titles match by substring, the rest exactly.
type Rules struct {
	Classes     []string `yaml:"classes"`
	Executables []string `yaml:"executables"`
	Titles      []string `yaml:"titles"`
}

// Matcher answers exclusion queries for window identities.
type Matcher struct {
	classes map[string]struct{}
	exes    map[string]struct{}
	titles  []string
}

// New builds a matcher from rules.
func New(rules Rules) *Matcher {
	m := &Matcher{
		classes: make(map[string]struct{}, len(rules.Classes)),
		exes:    make(map[string]struct{}, len(rules.Executables)),
	}
	for _, class := range rules.Classes {
		m.classes[strings.ToLower(class)] = struct{}{}
	}
	for _, exe := range rules.Executables {
		m.exes[strings.ToLower(exe)] = struct{}{}
	}
	for _, title := range rules.Titles {
		if title != "" {
			m.titles = append(m.titles, strings.ToLower(title))
		}
	}
	return m
}

// Load reads a rule file. A missing file yields an empty matcher.
func Load(path string) (*Matcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(Rules{}), nil
		}
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("%s: failed to parse yaml: %w", path, err)
	}
	return New(rules), nil
}

// Excluded reports whether a window with the given class, executable
// name and title is exempt.
func (m *Matcher) Excluded(class, exe, title string) bool {
	if _, ok := m.classes[strings.ToLower(class)]; ok {
		return true
	}
	if _, ok := m.exes[strings.ToLower(exe)]; ok {
		return true
	}
	if len(m.titles) > 0 {
		lower := strings.ToLower(title)
		for _, sub := range m.titles {
			if strings.Contains(lower, sub) {
				return true
			}
		}
	}
	return false
}
