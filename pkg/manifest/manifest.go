// Package manifest records which binding trees were generated from which SDK.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrNoSnapshots = errors.New("manifest has no current/previous snapshot pair")

// Snapshot is one generated binding tree.
type Snapshot struct {
	Name      string `yaml:"name" json:"name"`                               // usually the binding package
	Version   string `yaml:"version" json:"version"`                         // usually the SDK version
	Framework string `yaml:"framework,omitempty" json:"framework,omitempty"` // e.g. AppKit
	Target    string `yaml:"target,omitempty" json:"target,omitempty"`       // clang target triple
	Dir       string `yaml:"dir" json:"dir"`                                 // holds one <Class>.hx per class
	Classes   int    `yaml:"classes" json:"classes"`
}

// Manifest lists generated binding trees and which two of them a diff compares.
type Manifest struct {
	CurrentVersion  string     `yaml:"current_version" json:"current_version"`
	PreviousVersion string     `yaml:"previous_version" json:"previous_version"`
	Snapshots       []Snapshot `yaml:"snapshots" json:"snapshots"`
}

// Load reads the manifest at path; a missing file is an empty manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &Manifest{}, nil
	case err != nil:
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m := &Manifest{}
	if err = yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest %s: %w", path, err)
	}
	return m, nil
}

func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// AddSnapshot makes s the current binding tree. The tree it replaces becomes
// the diff baseline unless s re-records the same version, in which case the
// baseline stays. An entry with the same name and version is replaced in place.
func (m *Manifest) AddSnapshot(s Snapshot) {
	if m.CurrentVersion != s.Version {
		m.PreviousVersion = m.CurrentVersion
	}
	m.CurrentVersion = s.Version

	if i := m.index(s.Name, s.Version); i >= 0 {
		m.Snapshots[i] = s
		return
	}
	m.Snapshots = append(m.Snapshots, s)
}

// Snapshot returns the last binding tree recorded for version, or nil.
func (m *Manifest) Snapshot(version string) *Snapshot {
	for i := len(m.Snapshots) - 1; i >= 0; i-- {
		if m.Snapshots[i].Version == version {
			return &m.Snapshots[i]
		}
	}
	return nil
}

// Pair returns the previous and current binding trees a diff compares.
func (m *Manifest) Pair() (previous, current *Snapshot, err error) {
	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return nil, nil, ErrNoSnapshots
	}
	previous, current = m.Snapshot(m.PreviousVersion), m.Snapshot(m.CurrentVersion)
	if previous == nil || current == nil {
		return nil, nil, fmt.Errorf("%w: versions %s/%s not recorded", ErrNoSnapshots, m.PreviousVersion, m.CurrentVersion)
	}
	return previous, current, nil
}

func (m *Manifest) index(name, version string) int {
	for i, s := range m.Snapshots {
		if s.Name == name && s.Version == version {
			return i
		}
	}
	return -1
}
