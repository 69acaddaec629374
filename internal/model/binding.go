package model

// BindingUnit is the emitted binding for exactly one native class.
type BindingUnit struct {
	Package string // target package, e.g. "appkit"
	Class   string // native class name, never renamed
	Methods []*MethodBinding
}

// MethodBinding is one `@:native(...) public [static] function ...;` entry.
type MethodBinding struct {
	Name       string // selector text before the first ':'
	Native     string // full selector, verbatim
	Static     bool
	Params     []*BindingParam
	ReturnType string
}

type BindingParam struct {
	Name string
	Type string
}
