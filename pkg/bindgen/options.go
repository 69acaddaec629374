package bindgen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/mod/semver"

	"github.com/cmmoran/objc2hx/internal/clangast"
)

// Options control header parsing and binding output.
//
// SDKPath        – macOS SDK root, passed as -isysroot
// ClangPath      – LLVM resource directory; <ClangPath>/include is searched
// ClangBin       – clang executable
// Framework      – framework whose umbrella header is parsed
// Header         – header to parse; derived from SDKPath and Framework when empty
// Arch           – target architecture
// MinOS          – minimum macOS version, e.g. 11.3
// Target         – target triple; derived from Arch and MinOS when empty
// Language       – clang -x language
// IncludeDirs    – extra include directories
// Package        – package line of every emitted file; lower-cased Framework when empty
// OutDir         – where <Class>.hx files go; Package when empty
// ASTFile        – pre-dumped clang JSON AST; clang is not run when set
// StorePath      – bbolt database that also receives every unit
// IncludeClasses – glob patterns; when set only matching classes are emitted
// ExcludeClasses – glob patterns of classes never emitted
type Options struct {
	SDKPath        string   `json:"sdk_path,omitempty" yaml:"sdk_path,omitempty" toml:"sdk_path,omitempty" mapstructure:"sdk_path,omitempty"`
	ClangPath      string   `json:"clang_path,omitempty" yaml:"clang_path,omitempty" toml:"clang_path,omitempty" mapstructure:"clang_path,omitempty"`
	ClangBin       string   `json:"clang_bin,omitempty" yaml:"clang_bin,omitempty" toml:"clang_bin,omitempty" mapstructure:"clang_bin,omitempty"`
	Framework      string   `json:"framework,omitempty" yaml:"framework,omitempty" toml:"framework,omitempty" mapstructure:"framework,omitempty"`
	Header         string   `json:"header,omitempty" yaml:"header,omitempty" toml:"header,omitempty" mapstructure:"header,omitempty"`
	Arch           string   `json:"arch,omitempty" yaml:"arch,omitempty" toml:"arch,omitempty" mapstructure:"arch,omitempty"`
	MinOS          string   `json:"min_os,omitempty" yaml:"min_os,omitempty" toml:"min_os,omitempty" mapstructure:"min_os,omitempty"`
	Target         string   `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty" mapstructure:"target,omitempty"`
	Language       string   `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty" mapstructure:"language,omitempty"`
	IncludeDirs    []string `json:"include_dirs,omitempty" yaml:"include_dirs,omitempty" toml:"include_dirs,omitempty" mapstructure:"include_dirs,omitempty"`
	Package        string   `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty" mapstructure:"package,omitempty"`
	OutDir         string   `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	ASTFile        string   `json:"ast_file,omitempty" yaml:"ast_file,omitempty" toml:"ast_file,omitempty" mapstructure:"ast_file,omitempty"`
	StorePath      string   `json:"store_path,omitempty" yaml:"store_path,omitempty" toml:"store_path,omitempty" mapstructure:"store_path,omitempty"`
	IncludeClasses []string `json:"include_classes,omitempty" yaml:"include_classes,omitempty" toml:"include_classes,omitempty" mapstructure:"include_classes,omitempty"`
	ExcludeClasses []string `json:"exclude_classes,omitempty" yaml:"exclude_classes,omitempty" toml:"exclude_classes,omitempty" mapstructure:"exclude_classes,omitempty"`
}

const (
	DefaultClangBin  = "clang"
	DefaultFramework = "AppKit"
	DefaultArch      = "x86_64"
	DefaultMinOS     = "11.3"
	DefaultLanguage  = "objective-c"
)

func NewOptions() *Options {
	return &Options{
		ClangBin:  DefaultClangBin,
		Framework: DefaultFramework,
		Arch:      DefaultArch,
		MinOS:     DefaultMinOS,
		Language:  DefaultLanguage,
	}
}

// Normalize fills derived fields and validates the rest.
func (o *Options) Normalize() error {
	if o.ClangBin == "" {
		o.ClangBin = DefaultClangBin
	}
	if o.Framework == "" {
		o.Framework = DefaultFramework
	}
	if o.Arch == "" {
		o.Arch = DefaultArch
	}
	if o.MinOS == "" {
		o.MinOS = DefaultMinOS
	}
	o.MinOS = strings.TrimPrefix(o.MinOS, "v")
	if !semver.IsValid("v" + o.MinOS) {
		return fmt.Errorf("min_os %q is not a version", o.MinOS)
	}
	if o.Target == "" {
		o.Target = fmt.Sprintf("%s-apple-macos%s", o.Arch, o.MinOS)
	}
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.Header == "" && o.ASTFile == "" {
		if o.SDKPath == "" {
			return fmt.Errorf("either header, ast_file or sdk_path is required")
		}
		o.Header = filepath.Join(o.SDKPath, "System", "Library", "Frameworks",
			o.Framework+".framework", "Headers", o.Framework+".h")
	}
	if o.Package == "" {
		o.Package = strings.ToLower(o.Framework)
	}
	if o.OutDir == "" {
		o.OutDir = o.Package
	}
	if strings.Contains(o.OutDir, ".") {
		o.OutDir, _ = filepath.Abs(o.OutDir)
	}

	o.IncludeClasses = trimAll(o.IncludeClasses)
	o.ExcludeClasses = trimAll(o.ExcludeClasses)
	for _, p := range append(append([]string(nil), o.IncludeClasses...), o.ExcludeClasses...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid class pattern %q", p)
		}
	}
	return nil
}

// ProviderConfig is the AST provider's view of the options.
func (o *Options) ProviderConfig() clangast.Config {
	return clangast.Config{
		ClangBin:    o.ClangBin,
		SysRoot:     o.SDKPath,
		ResourceDir: o.ClangPath,
		IncludeDirs: o.IncludeDirs,
		Target:      o.Target,
		Language:    o.Language,
		Header:      o.Header,
		ASTFile:     o.ASTFile,
	}
}

func trimAll(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithSDKPath(p string) Option   { return func(o *Options) { o.SDKPath = p } }
func WithClangPath(p string) Option { return func(o *Options) { o.ClangPath = p } }
func WithClangBin(b string) Option  { return func(o *Options) { o.ClangBin = b } }
func WithFramework(f string) Option { return func(o *Options) { o.Framework = f } }
func WithHeader(h string) Option    { return func(o *Options) { o.Header = h } }
func WithArch(a string) Option      { return func(o *Options) { o.Arch = a } }
func WithMinOS(v string) Option     { return func(o *Options) { o.MinOS = v } }
func WithTarget(t string) Option    { return func(o *Options) { o.Target = t } }
func WithPackage(p string) Option   { return func(o *Options) { o.Package = p } }
func WithOutDir(d string) Option    { return func(o *Options) { o.OutDir = d } }
func WithASTFile(f string) Option   { return func(o *Options) { o.ASTFile = f } }
func WithStorePath(p string) Option { return func(o *Options) { o.StorePath = p } }
func WithIncludeDirs(dirs ...string) Option {
	return func(o *Options) { o.IncludeDirs = append(o.IncludeDirs, dirs...) }
}
func WithIncludeClasses(patterns ...string) Option {
	return func(o *Options) { o.IncludeClasses = append(o.IncludeClasses, patterns...) }
}
func WithExcludeClasses(patterns ...string) Option {
	return func(o *Options) { o.ExcludeClasses = append(o.ExcludeClasses, patterns...) }
}
