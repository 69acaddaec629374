package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/objc2hx/internal/sink"
	"github.com/cmmoran/objc2hx/pkg/bindgen"
)

const testAST = `{"kind": "TranslationUnitDecl", "inner": [
  {"kind": "ObjCInterfaceDecl", "name": "NSApplication", "super": {"name": "NSResponder"}, "inner": [
    {"kind": "ObjCMethodDecl", "name": "run", "returnType": {"qualType": "void"}, "instance": true},
    {"kind": "ObjCMethodDecl", "name": "sharedApplication", "returnType": {"qualType": "__kindof NSApplication *"}, "instance": false}
  ]},
  {"kind": "ObjCInterfaceDecl", "name": "NSMenu", "super": {"name": "NSObject"}}
]}`

func options(t *testing.T) *bindgen.Options {
	t.Helper()
	dir := t.TempDir()
	ast := filepath.Join(dir, "ast.json")
	require.NoError(t, os.WriteFile(ast, []byte(testAST), 0o644))

	o := bindgen.NewOptions()
	o.ASTFile = ast
	o.OutDir = filepath.Join(dir, "appkit")
	return o
}

func TestGenerate(t *testing.T) {
	o := options(t)
	res, err := Generate(context.Background(), o, nil)
	require.NoError(t, err)
	require.Equal(t, bindgen.Result{Classes: 2, Methods: 2}, res)

	got, err := os.ReadFile(filepath.Join(o.OutDir, "NSApplication.hx"))
	require.NoError(t, err)
	require.Equal(t, "package appkit;\n"+
		"@:objc extern class NSApplication {\n"+
		"    @:native(\"run\") public function run(): Void;\n"+
		"    @:native(\"sharedApplication\") public static function sharedApplication(): cpp.Star</* ObjCInterface */ NSApplication>;\n"+
		"}\n", string(got))

	got, err = os.ReadFile(filepath.Join(o.OutDir, "NSMenu.hx"))
	require.NoError(t, err)
	require.Equal(t, "package appkit;\n@:objc extern class NSMenu {\n}\n", string(got))
}

func TestGenerateWithStoreAndProgress(t *testing.T) {
	o := options(t)
	o.StorePath = filepath.Join(t.TempDir(), "units.db")

	var bar bytes.Buffer
	_, err := Generate(context.Background(), o, &bar)
	require.NoError(t, err)
	require.NotEmpty(t, bar.String())

	store, err := sink.OpenBolt(o.StorePath)
	require.NoError(t, err)
	defer store.Close()
	classes, err := store.List()
	require.NoError(t, err)
	require.Equal(t, []string{"NSApplication", "NSMenu"}, classes)
}

func TestGenerateProgressCountsSelectedClasses(t *testing.T) {
	o := options(t)
	o.ExcludeClasses = []string{"NSMenu"}

	var bar bytes.Buffer
	res, err := Generate(context.Background(), o, &bar)
	require.NoError(t, err)
	require.Equal(t, bindgen.Result{Classes: 1, Methods: 2, Filtered: 1}, res)
	require.Contains(t, bar.String(), "100%")
	require.Contains(t, bar.String(), "1/1")
}

func TestSummary(t *testing.T) {
	require.Equal(t, "emitted 1 class with 1 method", Summary(bindgen.Result{Classes: 1, Methods: 1}))
	require.Equal(t, "emitted 2 classes with 0 methods, skipped 3 classes",
		Summary(bindgen.Result{Classes: 2, Filtered: 3}))
}
