package cmd

import (
	"log/slog"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, levelTrace, parseLevel("trace"))
	require.Equal(t, levelTrace, parseLevel("TRACE"))
	require.Equal(t, slog.LevelWarn, parseLevel("warn"))
	require.Equal(t, slog.LevelDebug+1, parseLevel("debug+1"))
	require.Panics(t, func() { parseLevel("loud") })
}

func TestLoadOptions(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("MAC_SDK_PATH", "/sdk")
	require.NoError(t, viper.BindEnv("sdk_path", "MAC_SDK_PATH"))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addOptionFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--framework", "Foundation",
		"--exclude-classes", "NSProxy,NSZombie*",
		"-I", "/opt/include",
	}))

	opts, err := loadOptions(fs)
	require.NoError(t, err)
	require.Equal(t, "/sdk", opts.SDKPath)
	require.Equal(t, "Foundation", opts.Framework)
	require.Equal(t, "x86_64", opts.Arch)
	require.Equal(t, "11.3", opts.MinOS)
	require.Equal(t, []string{"NSProxy", "NSZombie*"}, opts.ExcludeClasses)
	require.Equal(t, []string{"/opt/include"}, opts.IncludeDirs)

	require.NoError(t, opts.Normalize())
	require.Equal(t, "foundation", opts.Package)
}
