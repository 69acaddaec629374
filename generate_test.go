package main

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/cmmoran/objc2hx/pkg/action/generate"
	"github.com/cmmoran/objc2hx/pkg/bindgen"
)

// fixture settings live in the archive comment as "key: value" lines.
func fixtureOptions(t *testing.T, comment []byte) (opts []bindgen.Option, wantErr bool) {
	t.Helper()
	sc := bufio.NewScanner(bytes.NewReader(comment))
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ": ")
		if !ok {
			continue
		}
		switch key {
		case "package":
			opts = append(opts, bindgen.WithPackage(val))
		case "include":
			opts = append(opts, bindgen.WithIncludeClasses(strings.Split(val, ",")...))
		case "exclude":
			opts = append(opts, bindgen.WithExcludeClasses(strings.Split(val, ",")...))
		case "error":
			wantErr = val == "true"
		}
	}
	return opts, wantErr
}

func TestGenerate(ttt *testing.T) {
	fixtures, err := filepath.Glob("testdata/fixtures/*.txtar")
	require.NoError(ttt, err)
	require.NotEmpty(ttt, fixtures)

	for _, path := range fixtures {
		path := path
		ttt.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			t.Parallel()
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)

			dir := t.TempDir()
			outDir := filepath.Join(dir, "out")
			want := map[string]string{}
			for _, f := range ar.Files {
				if f.Name == "ast.json" {
					require.NoError(t, os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0o644))
					continue
				}
				want[f.Name] = string(f.Data)
			}

			opts, wantErr := fixtureOptions(t, ar.Comment)
			o := bindgen.NewOptions()
			for _, fn := range append(opts, bindgen.WithASTFile(filepath.Join(dir, "ast.json")), bindgen.WithOutDir(outDir)) {
				fn(o)
			}

			_, err = generate.Generate(context.Background(), o, nil)
			if (err != nil) != wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, wantErr)
			}

			entries, err := os.ReadDir(outDir)
			require.NoError(t, err)
			var gotNames, wantNames []string
			for _, e := range entries {
				gotNames = append(gotNames, e.Name())
			}
			for n := range want {
				wantNames = append(wantNames, n)
			}
			sort.Strings(wantNames)
			require.Equal(t, wantNames, gotNames)

			for name, expected := range want {
				got, err := os.ReadFile(filepath.Join(outDir, name))
				require.NoError(t, err)
				if diff := cmp.Diff(expected, string(got)); diff != "" {
					t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
				}
			}
		})
	}
}
