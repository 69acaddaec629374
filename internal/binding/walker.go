package binding

import (
	"fmt"
	"log/slog"

	"github.com/cmmoran/objc2hx/internal/model"
)

// Sink receives each binding unit as soon as it is complete. Units are keyed
// by class name; a repeated class overwrites the earlier unit.
type Sink interface {
	Put(unit *model.BindingUnit) error
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(unit *model.BindingUnit) error

func (f SinkFunc) Put(unit *model.BindingUnit) error { return f(unit) }

// Stats counts what a walk produced.
type Stats struct {
	Classes  int
	Methods  int
	Filtered int
}

// Walker dispatches the top-level declarations of a translation unit. Every
// class declaration is emitted and pushed to Sink; everything else is skipped.
type Walker struct {
	Emitter *Emitter
	Sink    Sink

	// Filter, when set, decides by class name whether a class is emitted.
	Filter func(class string) bool
	Logger *slog.Logger
}

// NewWalker returns a Walker emitting into pkg and pushing units to sink.
func NewWalker(pkg string, sink Sink) *Walker {
	return &Walker{
		Emitter: NewEmitter(pkg),
		Sink:    sink,
		Logger:  slog.Default(),
	}
}

// Walk visits the direct children of root. It stops at the first structural
// error or sink failure; units already pushed stay pushed, the failing class
// is never handed to the sink.
//
// Declarations from transitively included headers are walked like those of
// the primary header.
func (w *Walker) Walk(root *model.Decl) (Stats, error) {
	var st Stats
	if root == nil {
		return st, nil
	}
	em := w.Emitter
	if em == nil {
		em = NewEmitter("")
	}
	l := w.Logger
	if l == nil {
		l = slog.Default()
	}

	for _, child := range root.Children {
		if child == nil {
			continue
		}
		switch child.Kind {
		case model.DeclInterface:
			if child.Name != "" && w.Filter != nil && !w.Filter(child.Name) {
				st.Filtered++
				continue
			}
			unit, err := em.EmitClass(child)
			if err != nil {
				return st, err
			}
			if err = w.Sink.Put(unit); err != nil {
				return st, fmt.Errorf("sink %s: %w", unit.Class, err)
			}
			st.Classes++
			st.Methods += len(unit.Methods)
			l.With("class", unit.Class, "methods", len(unit.Methods)).Debug("emitted binding unit")

		case model.DeclProtocol, model.DeclRecord:
			// not translated

		default:
		}
	}

	return st, nil
}

// Walk emits every top-level class of root into sink using DefaultPackage.
func Walk(root *model.Decl, sink Sink) (Stats, error) {
	return NewWalker("", sink).Walk(root)
}

// CountClasses returns how many top-level class declarations root holds.
func CountClasses(root *model.Decl) int {
	if root == nil {
		return 0
	}
	n := 0
	for _, child := range root.Children {
		if child != nil && child.Kind == model.DeclInterface {
			n++
		}
	}
	return n
}
