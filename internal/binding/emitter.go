package binding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cmmoran/objc2hx/internal/model"
)

// DefaultPackage is the Haxe package every binding unit is declared in unless
// the caller picks another one.
const DefaultPackage = "appkit"

// selectorSeparator splits a full selector into its keyword segments.
const selectorSeparator = ":"

var (
	ErrMissingName         = errors.New("declaration has no name")
	ErrMissingResultType   = errors.New("method has no result type")
	ErrMissingArgument     = errors.New("method argument could not be resolved")
	ErrMissingArgumentName = errors.New("method argument has no name")
	ErrMissingArgumentType = errors.New("method argument has no type")
)

// Emitter builds one BindingUnit per class declaration.
type Emitter struct {
	Package string
}

// NewEmitter returns an Emitter declaring units in pkg, or DefaultPackage
// when pkg is empty.
func NewEmitter(pkg string) *Emitter {
	if pkg == "" {
		pkg = DefaultPackage
	}
	return &Emitter{Package: pkg}
}

// EmitClass builds the binding unit for class declaration e. Methods keep
// source declaration order; properties and other members are skipped.
//
// Any structural resolution failure aborts the whole unit: callers never see
// a partially built BindingUnit.
func (em *Emitter) EmitClass(e *model.Decl) (*model.BindingUnit, error) {
	if e == nil || e.Name == "" {
		return nil, fmt.Errorf("class declaration: %w", ErrMissingName)
	}

	unit := &model.BindingUnit{
		Package: em.Package,
		Class:   e.Name,
		Methods: make([]*model.MethodBinding, 0, len(e.Children)),
	}

	for _, child := range e.Children {
		if child == nil {
			continue
		}
		switch child.Kind {
		case model.DeclInstanceMethod, model.DeclClassMethod:
			mb, err := emitMethod(child)
			if err != nil {
				return nil, fmt.Errorf("class %s: %w", e.Name, err)
			}
			unit.Methods = append(unit.Methods, mb)

		case model.DeclProperty:
			// accessors are not synthesized

		default:
		}
	}

	return unit, nil
}

func emitMethod(m *model.Decl) (*model.MethodBinding, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("method: %w", ErrMissingName)
	}
	if m.ResultType == nil {
		return nil, fmt.Errorf("method %s: %w", m.Name, ErrMissingResultType)
	}

	mb := &model.MethodBinding{
		Name:       ShortName(m.Name),
		Native:     m.Name,
		Static:     m.Kind == model.DeclClassMethod,
		Params:     make([]*model.BindingParam, 0, len(m.Arguments)),
		ReturnType: MapType(m.ResultType),
	}

	for i, arg := range m.Arguments {
		switch {
		case arg == nil:
			return nil, fmt.Errorf("method %s argument %d: %w", m.Name, i, ErrMissingArgument)
		case arg.Name == "":
			return nil, fmt.Errorf("method %s argument %d: %w", m.Name, i, ErrMissingArgumentName)
		case arg.Type == nil:
			return nil, fmt.Errorf("method %s argument %s: %w", m.Name, arg.Name, ErrMissingArgumentType)
		}
		mb.Params = append(mb.Params, &model.BindingParam{
			Name: arg.Name,
			Type: MapType(arg.Type),
		})
	}

	return mb, nil
}

// ShortName returns the callable name of a selector: everything before the
// first ':' ("doThing:withOption:" -> "doThing", "count" -> "count").
func ShortName(selector string) string {
	name, _, _ := strings.Cut(selector, selectorSeparator)
	return name
}
