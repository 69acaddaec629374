package generate

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jinzhu/inflection"

	"github.com/cmmoran/objc2hx/internal/binding"
	"github.com/cmmoran/objc2hx/internal/sink"
	"github.com/cmmoran/objc2hx/pkg/bindgen"
)

// Generate parses the configured header and writes one <Class>.hx file per
// class to opts.OutDir. When opts.StorePath is set the units are also stored
// there. A progress bar is drawn to progress unless it is nil.
func Generate(ctx context.Context, opts *bindgen.Options, progress io.Writer) (bindgen.Result, error) {
	g, err := bindgen.NewWithOpts(opts)
	if err != nil {
		return bindgen.Result{}, err
	}

	root, err := g.Load(ctx)
	if err != nil {
		return bindgen.Result{}, err
	}

	files, err := sink.NewFile(g.Opts.OutDir)
	if err != nil {
		return bindgen.Result{}, err
	}
	var out binding.Sink = files

	if g.Opts.StorePath != "" {
		store, err := sink.OpenBolt(g.Opts.StorePath)
		if err != nil {
			return bindgen.Result{}, err
		}
		defer store.Close()
		out = sink.Tee{files, store}
	}

	var bar *sink.Progress
	if progress != nil {
		bar = sink.NewProgress(out, g.CountSelected(root), progress)
		out = bar
	}

	res, err := g.Walk(root, out)
	if err != nil {
		return res, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	slog.Default().With(
		"out_dir", g.Opts.OutDir,
		"classes", res.Classes,
		"methods", res.Methods,
		"filtered", res.Filtered,
	).Info(Summary(res))

	return res, nil
}

// Summary describes a result in one line, e.g. "emitted 2 classes with 1 method".
func Summary(res bindgen.Result) string {
	s := fmt.Sprintf("emitted %s with %s", count(res.Classes, "class"), count(res.Methods, "method"))
	if res.Filtered > 0 {
		s += fmt.Sprintf(", skipped %s", count(res.Filtered, "class"))
	}
	return s
}

func count(n int, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}
