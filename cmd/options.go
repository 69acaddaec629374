package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cmmoran/objc2hx/pkg/bindgen"
)

// optionFlags maps config keys to flag names.
var optionFlags = []struct{ key, flag string }{
	{"sdk_path", "sdk-path"},
	{"clang_path", "clang-path"},
	{"clang_bin", "clang-bin"},
	{"framework", "framework"},
	{"header", "header"},
	{"arch", "arch"},
	{"min_os", "min-os"},
	{"target", "target"},
	{"language", "language"},
	{"include_dirs", "include-dir"},
	{"package", "package"},
	{"out_dir", "out-dir"},
	{"ast_file", "ast-file"},
	{"store_path", "store"},
	{"include_classes", "include-classes"},
	{"exclude_classes", "exclude-classes"},
}

func addOptionFlags(fs *pflag.FlagSet) {
	fs.String("sdk-path", "", "macOS SDK root (env MAC_SDK_PATH)")
	fs.String("clang-path", "", "LLVM resource directory holding clang's builtin include/ (env CLANG_PATH)")
	fs.String("clang-bin", bindgen.DefaultClangBin, "clang executable")
	fs.String("framework", bindgen.DefaultFramework, "framework whose umbrella header is parsed")
	fs.String("header", "", "header to parse, defaults to the framework umbrella header in the SDK")
	fs.String("arch", bindgen.DefaultArch, "target architecture")
	fs.String("min-os", bindgen.DefaultMinOS, "minimum macOS version")
	fs.String("target", "", "target triple, defaults to <arch>-apple-macos<min-os>")
	fs.String("language", bindgen.DefaultLanguage, "clang input language")
	fs.StringSliceP("include-dir", "I", []string{}, "extra include directories")
	fs.StringP("package", "p", "", "package of the generated files, defaults to the lower-cased framework")
	fs.StringP("out-dir", "o", "", "directory to write <Class>.hx files, defaults to the package")
	fs.String("ast-file", "", "read a clang JSON AST dump instead of running clang")
	fs.String("store", "", "bbolt database that also receives every generated class")
	fs.StringSlice("include-classes", []string{}, "only generate classes matching these glob patterns")
	fs.StringSlice("exclude-classes", []string{}, "never generate classes matching these glob patterns")
}

// loadOptions merges flags, environment and config files into Options.
// Flags are bound at run time since several commands share the keys.
func loadOptions(fs *pflag.FlagSet) (*bindgen.Options, error) {
	for _, o := range optionFlags {
		if err := viper.BindPFlag(o.key, fs.Lookup(o.flag)); err != nil {
			return nil, fmt.Errorf("bind --%s: %w", o.flag, err)
		}
	}
	opts := bindgen.NewOptions()
	if err := viper.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	return opts, nil
}
