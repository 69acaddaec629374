// Package sink holds the destinations binding units are pushed to.
package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cmmoran/objc2hx/internal/binding"
	"github.com/cmmoran/objc2hx/internal/model"
)

// Ext is the extension of a rendered binding file.
const Ext = ".hx"

// File writes every unit to <Dir>/<Class>.hx. A class seen twice is
// overwritten by the later unit.
type File struct {
	Dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &File{Dir: dir}, nil
}

// Path returns where the unit for class is written.
func (f *File) Path(class string) string {
	return filepath.Join(f.Dir, class+Ext)
}

// Put renders unit before touching the target, then replaces <Class>.hx in
// one rename so a failed write never leaves a partial file behind.
func (f *File) Put(unit *model.BindingUnit) error {
	data, err := binding.RenderBytes(unit)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.Dir, "."+unit.Class+"-*"+Ext)
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", f.Path(unit.Class), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", f.Path(unit.Class), err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.Path(unit.Class))
}
