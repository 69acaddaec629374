package binding

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/objc2hx/internal/model"
)

func TestRender(t *testing.T) {
	cls := widget()
	cls.Children = append(cls.Children,
		method(model.DeclClassMethod, "widgetWithName:", model.Other("instancetype", "Typedef"),
			&model.Param{Name: "name", Type: model.ObjectPointerTo(model.Interface("NSString"))}),
		method(model.DeclInstanceMethod, "reset", model.Void()),
	)
	unit, err := NewEmitter("").EmitClass(cls)
	require.NoError(t, err)

	got, err := RenderBytes(unit)
	require.NoError(t, err)

	want := `package appkit;
@:objc extern class Widget {
    @:native("doThing:withOption:") public function doThing(thing: cpp.Star</* ObjCInterface */ Foo>, opt: cpp.objc.NSObject): Void;
    @:native("widgetWithName:") public static function widgetWithName(name: cpp.Star</* ObjCInterface */ NSString>): instancetype /* Typedef */;
    @:native("reset") public function reset(): Void;
}
`
	require.Empty(t, cmp.Diff(want, string(got)))
}

func TestRenderEmptyClass(t *testing.T) {
	got, err := RenderBytes(&model.BindingUnit{Package: "appkit", Class: "NSEmpty"})
	require.NoError(t, err)
	require.Equal(t, "package appkit;\n@:objc extern class NSEmpty {\n}\n", string(got))
}
