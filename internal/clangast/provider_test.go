package clangast

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/objc2hx/internal/model"
)

func TestProviderArgs(t *testing.T) {
	p := New(Config{
		SysRoot:     "/sdk",
		ResourceDir: "/clang",
		IncludeDirs: []string{"/extra"},
		Target:      "x86_64-apple-macos11.3",
		Header:      "/sdk/System/Library/Frameworks/AppKit.framework/Headers/AppKit.h",
	}, nil)

	require.Equal(t, []string{
		"-Xclang", "-ast-dump=json",
		"-fsyntax-only",
		"-x", "objective-c",
		"-target", "x86_64-apple-macos11.3",
		"-isysroot", "/sdk", "-I", "/sdk/usr/include",
		"-I", "/clang/include",
		"-I", "/extra",
		"/sdk/System/Library/Frameworks/AppKit.framework/Headers/AppKit.h",
	}, p.Args())
}

func TestProviderLoadASTFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ast.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleAST), 0o644))

	root, err := New(Config{ASTFile: path}, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, root.Children, 7)
	require.Equal(t, model.DeclInterface, root.Children[4].Kind)
}

func TestProviderLoadASTFileErrors(t *testing.T) {
	_, err := New(Config{ASTFile: filepath.Join(t.TempDir(), "missing.json")}, nil).Load(context.Background())
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"kind": "FunctionDecl"}`), 0o644))
	_, err = New(Config{ASTFile: path}, nil).Load(context.Background())
	require.ErrorIs(t, err, ErrNotTranslationUnit)
}

func TestProviderRequiresHeader(t *testing.T) {
	_, err := New(Config{}, nil).Load(context.Background())
	require.Error(t, err)
}

// fakeClang writes a shell script that ignores its arguments, prints the
// given AST on stdout and one diagnostic on stderr, then exits with code.
func fakeClang(t *testing.T, ast string, code int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake clang is a shell script")
	}
	dir := t.TempDir()
	astPath := filepath.Join(dir, "ast.json")
	require.NoError(t, os.WriteFile(astPath, []byte(ast), 0o644))

	script := "#!/bin/sh\n" +
		"echo 'AppKit.h:1:1: warning: fake diagnostic' >&2\n" +
		"cat '" + astPath + "'\n" +
		"exit " + strconv.Itoa(code) + "\n"
	bin := filepath.Join(dir, "clang")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin
}

func TestProviderRunsClang(t *testing.T) {
	var logs bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	bin := fakeClang(t, sampleAST, 0)
	root, err := New(Config{ClangBin: bin, Header: "AppKit.h"}, l).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, root.Children, 7)
	require.Contains(t, logs.String(), "fake diagnostic")
}

func TestProviderToleratesClangErrors(t *testing.T) {
	var logs bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&logs, nil))

	bin := fakeClang(t, sampleAST, 1)
	root, err := New(Config{ClangBin: bin, Header: "AppKit.h"}, l).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, root)
	require.Contains(t, logs.String(), "clang reported errors")
}

func TestProviderBadClangOutput(t *testing.T) {
	bin := fakeClang(t, "not json", 1)
	_, err := New(Config{ClangBin: bin, Header: "AppKit.h"}, slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))).Load(context.Background())
	require.Error(t, err)
}

func TestProviderMissingClang(t *testing.T) {
	_, err := New(Config{ClangBin: filepath.Join(t.TempDir(), "no-such-clang"), Header: "AppKit.h"}, nil).Load(context.Background())
	require.Error(t, err)
}
