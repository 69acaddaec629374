package binding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/cmmoran/objc2hx/internal/model"
)

// NativeMarker is the metadata tag that declares an extern class as bound to
// a native Objective-C class.
const NativeMarker = "objc"

const indent = "    "

// Render writes unit as a Haxe source file:
//
//	package appkit;
//	@:objc extern class NSView {
//	    @:native("initWithFrame:") public function initWithFrame(frameRect: NSRect /* Typedef */): ...;
//	}
func Render(w io.Writer, unit *model.BindingUnit) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "package %s;\n", unit.Package)
	fmt.Fprintf(bw, "@:%s extern class %s {\n", NativeMarker, unit.Class)
	for _, m := range unit.Methods {
		renderMethod(bw, m)
	}
	bw.WriteString("}\n")

	return bw.Flush()
}

// RenderBytes is Render into a fresh buffer.
func RenderBytes(unit *model.BindingUnit) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, unit); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderMethod(bw *bufio.Writer, m *model.MethodBinding) {
	bw.WriteString(indent)
	fmt.Fprintf(bw, "@:native(%q) public ", m.Native)
	if m.Static {
		bw.WriteString("static ")
	}
	fmt.Fprintf(bw, "function %s(", m.Name)
	for i, p := range m.Params {
		if i > 0 {
			bw.WriteString(", ")
		}
		fmt.Fprintf(bw, "%s: %s", p.Name, p.Type)
	}
	fmt.Fprintf(bw, "): %s;\n", m.ReturnType)
}
