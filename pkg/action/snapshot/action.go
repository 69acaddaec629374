package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/objc2hx/internal/sink"
	"github.com/cmmoran/objc2hx/pkg/action/generate"
	"github.com/cmmoran/objc2hx/pkg/bindgen"
	"github.com/cmmoran/objc2hx/pkg/manifest"
)

// Generate writes the bindings to <out_dir>/<version> and records the run in
// the manifest.
func Generate(ctx context.Context, opts *bindgen.Options, manifestPath, snapshotName, snapshotVersion string) (*manifest.Snapshot, error) {
	if snapshotVersion == "" {
		return nil, fmt.Errorf("snapshot version is required")
	}
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	if err = opts.Normalize(); err != nil {
		return nil, err
	}

	o := *opts
	o.OutDir = filepath.Clean(filepath.Join(opts.OutDir, snapshotVersion))
	res, err := generate.Generate(ctx, &o, nil)
	if err != nil {
		return nil, err
	}

	if snapshotName == "" {
		snapshotName = o.Package
	}
	m.AddSnapshot(manifest.Snapshot{
		Name:      snapshotName,
		Version:   snapshotVersion,
		Framework: o.Framework,
		Target:    o.Target,
		Dir:       o.OutDir,
		Classes:   res.Classes,
	})

	if err := m.Save(manifestPath); err != nil {
		return nil, err
	}

	return m.Snapshot(snapshotVersion), nil
}

// List returns all snapshots recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and previous
// snapshot directories, and returns a per-class diff of their bindings.
// Classes present on one side only are reported as added or removed.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	previous, current, err := m.Pair()
	if err != nil {
		return "", err
	}

	return DiffDirs(previous.Dir, current.Dir)
}

// DiffDirs compares the binding files of two directories.
func DiffDirs(previousDir, currentDir string) (string, error) {
	prev, err := readUnits(previousDir)
	if err != nil {
		return "", fmt.Errorf("read previous snapshot: %w", err)
	}
	cur, err := readUnits(currentDir)
	if err != nil {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}

	names := make(map[string]bool, len(prev)+len(cur))
	for n := range prev {
		names[n] = true
	}
	for n := range cur {
		names[n] = true
	}
	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	var b strings.Builder
	for _, n := range sorted {
		p, inPrev := prev[n]
		c, inCur := cur[n]
		switch {
		case !inPrev:
			fmt.Fprintf(&b, "added %s\n", n)
		case !inCur:
			fmt.Fprintf(&b, "removed %s\n", n)
		default:
			if d := cmp.Diff(p, c); d != "" {
				fmt.Fprintf(&b, "changed %s\n%s", n, d)
			}
		}
	}
	return b.String(), nil
}

// readUnits maps class name to file contents for every binding file in dir.
func readUnits(dir string) (map[string]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	matches, err := doublestar.Glob(os.DirFS(dir), "*"+sink.Ext)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(matches))
	for _, name := range matches {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out[strings.TrimSuffix(name, sink.Ext)] = string(data)
	}
	return out, nil
}
