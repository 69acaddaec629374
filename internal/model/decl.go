package model

type DeclKind int

const (
	DeclOther           DeclKind = iota
	DeclTranslationUnit          // root of a parsed header
	DeclInterface                // @interface Foo : Bar
	DeclProtocol                 // @protocol Foo
	DeclRecord                   // struct / union
	DeclInstanceMethod           // - (void)foo
	DeclClassMethod              // + (void)foo
	DeclProperty                 // @property
)

var declKindNames = [...]string{
	DeclOther:           "Other",
	DeclTranslationUnit: "TranslationUnit",
	DeclInterface:       "ObjCInterfaceDecl",
	DeclProtocol:        "ObjCProtocolDecl",
	DeclRecord:          "RecordDecl",
	DeclInstanceMethod:  "ObjCInstanceMethodDecl",
	DeclClassMethod:     "ObjCClassMethodDecl",
	DeclProperty:        "ObjCPropertyDecl",
}

func (k DeclKind) String() string {
	if k < 0 || int(k) >= len(declKindNames) {
		return "Other"
	}
	return declKindNames[k]
}

// Decl is a read-only view of one declaration in the parsed interface tree.
// The AST provider owns it; the translator only reads it.
type Decl struct {
	Kind DeclKind
	Name string // "" when the declaration has no retrievable name

	// Children in source declaration order.
	Children []*Decl

	// Method declarations only. A nil entry in Arguments is an argument the
	// provider could not resolve.
	Arguments  []*Param
	ResultType *TypeExpr
}

// Param is one formal argument of a method declaration.
type Param struct {
	Name string
	Type *TypeExpr
}

// IsMethod reports whether d is an instance or class method declaration.
func (d *Decl) IsMethod() bool {
	return d != nil && (d.Kind == DeclInstanceMethod || d.Kind == DeclClassMethod)
}
