// Package bindgen turns a macOS framework header into Haxe extern bindings.
package bindgen

import (
	"context"
	"log/slog"

	"github.com/cmmoran/objc2hx/internal/binding"
	"github.com/cmmoran/objc2hx/internal/clangast"
	"github.com/cmmoran/objc2hx/internal/model"
)

// Result counts what a generation run produced.
type Result struct {
	Classes  int
	Methods  int
	Filtered int
}

// Generator holds the options of one generation run.
type Generator struct {
	Opts Options

	provider *clangast.Provider
	logger   *slog.Logger
}

// New builds a generator from defaults plus opts.
func New(opts ...Option) (*Generator, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}

	return NewWithOpts(o)
}

func NewWithOpts(opts *Options) (*Generator, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	l := slog.Default()
	g := &Generator{
		Opts:     *opts,
		provider: clangast.New(opts.ProviderConfig(), l),
		logger:   l,
	}

	return g, nil
}

// Load obtains the translation unit root from clang or the AST file.
func (g *Generator) Load(ctx context.Context) (*model.Decl, error) {
	return g.provider.Load(ctx)
}

// Walk pushes every selected class of root to sink.
func (g *Generator) Walk(root *model.Decl, sink binding.Sink) (Result, error) {
	w := binding.NewWalker(g.Opts.Package, sink)
	w.Filter = classFilter(&g.Opts)
	w.Logger = g.logger

	st, err := w.Walk(root)
	return Result(st), err
}

// Generate loads the translation unit and walks it into sink.
func (g *Generator) Generate(ctx context.Context, sink binding.Sink) (Result, error) {
	root, err := g.Load(ctx)
	if err != nil {
		return Result{}, err
	}
	return g.Walk(root, sink)
}

// CountSelected returns how many classes of root pass the class filter.
func (g *Generator) CountSelected(root *model.Decl) int {
	keep := classFilter(&g.Opts)
	if root == nil || keep == nil {
		return CountClasses(root)
	}
	n := 0
	for _, child := range root.Children {
		if child != nil && child.Kind == model.DeclInterface && (child.Name == "" || keep(child.Name)) {
			n++
		}
	}
	return n
}

// CountClasses returns how many classes root holds before filtering.
func CountClasses(root *model.Decl) int {
	return binding.CountClasses(root)
}
