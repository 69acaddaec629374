package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Empty(t, m.Snapshots)
	require.Empty(t, m.CurrentVersion)
}

func TestAddSnapshot(t *testing.T) {
	m := &Manifest{}
	m.AddSnapshot(Snapshot{Name: "appkit", Version: "11.3", Dir: "out/11.3", Classes: 10})
	require.Equal(t, "11.3", m.CurrentVersion)
	require.Empty(t, m.PreviousVersion)

	m.AddSnapshot(Snapshot{Name: "appkit", Version: "12.0", Dir: "out/12.0", Classes: 12})
	require.Equal(t, "12.0", m.CurrentVersion)
	require.Equal(t, "11.3", m.PreviousVersion)

	// same name and version replaces the entry
	m.AddSnapshot(Snapshot{Name: "appkit", Version: "12.0", Dir: "out/12.0", Classes: 13})
	require.Len(t, m.Snapshots, 2)
	require.Equal(t, "11.3", m.PreviousVersion)
	require.Equal(t, 13, m.Snapshot("12.0").Classes)

	require.Nil(t, m.Snapshot("10.15"))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "manifest.yaml")
	m := &Manifest{}
	m.AddSnapshot(Snapshot{Name: "appkit", Version: "11.3", Dir: "out/11.3", Classes: 3})
	m.AddSnapshot(Snapshot{Name: "appkit", Version: "12.0", Dir: "out/12.0", Classes: 4})
	require.NoError(t, m.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestPair(t *testing.T) {
	m := &Manifest{}
	_, _, err := m.Pair()
	require.ErrorIs(t, err, ErrNoSnapshots)

	m.AddSnapshot(Snapshot{Name: "appkit", Version: "11.3", Framework: "AppKit", Target: "x86_64-apple-macos11.3", Dir: "out/11.3"})
	_, _, err = m.Pair()
	require.ErrorIs(t, err, ErrNoSnapshots)

	m.AddSnapshot(Snapshot{Name: "appkit", Version: "12.0", Framework: "AppKit", Target: "x86_64-apple-macos12.0", Dir: "out/12.0"})
	prev, cur, err := m.Pair()
	require.NoError(t, err)
	require.Equal(t, "out/11.3", prev.Dir)
	require.Equal(t, "out/12.0", cur.Dir)

	m.PreviousVersion = "10.15"
	_, _, err = m.Pair()
	require.ErrorIs(t, err, ErrNoSnapshots)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snapshots: {"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
