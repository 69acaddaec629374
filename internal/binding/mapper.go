package binding

import (
	"strings"

	"github.com/cmmoran/objc2hx/internal/model"
)

const (
	pointerWrapper = "cpp.Star"
	blockWrapper   = "cpp.objc.ObjcBlock"
	idType         = "cpp.objc.NSObject"
	selectorType   = "SEL"
	functionType   = "haxe.Function"
	voidType       = "Void"

	// placeholder spelling for a missing display name
	dynamicType = "Dynamic"

	// MaxTypeDepth bounds MapType recursion. Deeper nodes map to the
	// unknown-kind placeholder.
	MaxTypeDepth = 32
)

// MapType converts a native type expression into the Haxe type spelling used in
// extern declarations. It never fails: types without a structural mapping come
// back as their display name tagged with a kind comment for manual follow-up.
func MapType(t *model.TypeExpr) string {
	return mapType(t, 0)
}

func mapType(t *model.TypeExpr, depth int) string {
	if t == nil {
		return placeholder(t)
	}
	if depth >= MaxTypeDepth {
		return placeholder(t)
	}

	switch t.Kind {

	case model.KindObjectPointer:
		return pointerWrapper + "<" + mapType(t.Pointee, depth+1) + ">"

	case model.KindObject:
		base := mapType(t.Base, depth+1)
		if len(t.TypeArgs) == 0 {
			return base
		}
		return base + "<" + mapTypeArgs(t.TypeArgs, depth+1) + ">"

	case model.KindInterface:
		// The interface spelling is kept verbatim and flagged; parameterized
		// interfaces never get a recursively mapped base.
		// TODO: decide with binding consumers whether this should share the
		// KindObject rule once the marker has been reviewed against real output.
		name := displayName(t)
		if len(t.TypeArgs) > 0 {
			name += "<" + mapTypeArgs(t.TypeArgs, depth+1) + ">"
		}
		return "/* " + model.KindInterface.String() + " */ " + name

	case model.KindID:
		return idType

	case model.KindSelector:
		return selectorType

	case model.KindBlockPointer:
		return blockWrapper + "<" + mapType(t.Pointee, depth+1) + ">"

	case model.KindFunctionProto:
		return functionType

	case model.KindVoid:
		return voidType

	default:
		return placeholder(t)
	}
}

func mapTypeArgs(args []*model.TypeExpr, depth int) string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, mapType(a, depth))
	}
	return strings.Join(out, ", ")
}

// placeholder renders the visibly-flagged fallback: "<display> /* <kind> */".
func placeholder(t *model.TypeExpr) string {
	return displayName(t) + " /* " + t.KindName() + " */"
}

func displayName(t *model.TypeExpr) string {
	if t == nil || strings.TrimSpace(t.DisplayName) == "" {
		return dynamicType
	}
	return t.DisplayName
}
