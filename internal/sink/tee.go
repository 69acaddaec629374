package sink

import (
	"github.com/cmmoran/objc2hx/internal/binding"
	"github.com/cmmoran/objc2hx/internal/model"
)

// Tee hands each unit to every sink in order and stops at the first error.
type Tee []binding.Sink

func (t Tee) Put(unit *model.BindingUnit) error {
	for _, s := range t {
		if s == nil {
			continue
		}
		if err := s.Put(unit); err != nil {
			return err
		}
	}
	return nil
}
