package model

type Kind int

const (
	KindOther         Kind = iota // anything unmodeled; see TypeExpr.OtherKind
	KindObjectPointer             // NSString *, id<NSCopying>
	KindObject                    // NSArray<NSString *>, NSView<NSFoo>
	KindInterface                 // NSString
	KindID                        // id
	KindSelector                  // SEL
	KindBlockPointer              // void (^)(BOOL)
	KindFunctionProto             // void (BOOL)
	KindVoid                      // void
)

var kindNames = [...]string{
	KindOther:         "Unexposed",
	KindObjectPointer: "ObjCObjectPointer",
	KindObject:        "ObjCObject",
	KindInterface:     "ObjCInterface",
	KindID:            "ObjCId",
	KindSelector:      "ObjCSel",
	KindBlockPointer:  "BlockPointer",
	KindFunctionProto: "FunctionProto",
	KindVoid:          "Void",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindOther]
	}
	return kindNames[k]
}

// TypeExpr is a node of the native type system.
type TypeExpr struct {
	Kind Kind

	// Structure ------------------------------------------------------------
	Pointee  *TypeExpr   // KindObjectPointer, KindBlockPointer
	Base     *TypeExpr   // KindObject: the unparameterized type
	TypeArgs []*TypeExpr // KindObject, KindInterface: lightweight generic arguments

	// Naming ---------------------------------------------------------------
	DisplayName string // human-readable spelling, e.g. "NSArray<NSString *> *"
	OtherKind   string // KindOther only: name of the unmodeled kind, e.g. "Typedef"
}

// KindName names the kind of t for diagnostics, resolving KindOther to the
// provider-specific kind when one was recorded.
func (t *TypeExpr) KindName() string {
	if t == nil {
		return "Invalid"
	}
	if t.Kind == KindOther && t.OtherKind != "" {
		return t.OtherKind
	}
	return t.Kind.String()
}

// Convenience constructors, mostly for providers and tests.

func ObjectPointerTo(pointee *TypeExpr) *TypeExpr {
	display := "id"
	if pointee != nil && pointee.Kind != KindID {
		display = pointee.DisplayName + " *"
	}
	return &TypeExpr{Kind: KindObjectPointer, Pointee: pointee, DisplayName: display}
}

func Interface(name string, args ...*TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: KindInterface, DisplayName: name, TypeArgs: args}
}

func Object(display string, base *TypeExpr, args ...*TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: KindObject, Base: base, TypeArgs: args, DisplayName: display}
}

func BlockPointerTo(fn *TypeExpr) *TypeExpr {
	bp := &TypeExpr{Kind: KindBlockPointer, Pointee: fn}
	if fn != nil {
		bp.DisplayName = fn.DisplayName
	}
	return bp
}

func ID() *TypeExpr       { return &TypeExpr{Kind: KindID, DisplayName: "id"} }
func Selector() *TypeExpr { return &TypeExpr{Kind: KindSelector, DisplayName: "SEL"} }
func Void() *TypeExpr     { return &TypeExpr{Kind: KindVoid, DisplayName: "void"} }

func Other(display, kind string) *TypeExpr {
	return &TypeExpr{Kind: KindOther, DisplayName: display, OtherKind: kind}
}
