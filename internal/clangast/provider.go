// Package clangast obtains Objective-C declaration trees from clang's JSON AST
// dump.
package clangast

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/cmmoran/objc2hx/internal/model"
)

// Config is everything the provider needs to produce one translation unit.
// It is built once by the caller; the provider reads no environment.
type Config struct {
	ClangBin    string   // clang executable, default "clang"
	SysRoot     string   // -isysroot, the macOS SDK
	ResourceDir string   // adds <ResourceDir>/include, clang's builtin headers
	IncludeDirs []string // extra -I directories
	Target      string   // -target triple, e.g. "x86_64-apple-macos11.3"
	Language    string   // -x, default "objective-c"
	Header      string   // header to parse

	// ASTFile, when set, is a pre-dumped JSON AST read instead of running clang.
	ASTFile string
}

// Provider loads declaration trees.
type Provider struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, l *slog.Logger) *Provider {
	if l == nil {
		l = slog.Default()
	}
	if cfg.ClangBin == "" {
		cfg.ClangBin = "clang"
	}
	if cfg.Language == "" {
		cfg.Language = "objective-c"
	}
	return &Provider{cfg: cfg, logger: l}
}

// Args returns the clang command line, without the executable.
func (p *Provider) Args() []string {
	args := []string{
		"-Xclang", "-ast-dump=json",
		"-fsyntax-only",
		"-x", p.cfg.Language,
	}
	if p.cfg.Target != "" {
		args = append(args, "-target", p.cfg.Target)
	}
	if p.cfg.SysRoot != "" {
		args = append(args, "-isysroot", p.cfg.SysRoot, "-I", p.cfg.SysRoot+"/usr/include")
	}
	if p.cfg.ResourceDir != "" {
		args = append(args, "-I", p.cfg.ResourceDir+"/include")
	}
	for _, dir := range p.cfg.IncludeDirs {
		args = append(args, "-I", dir)
	}
	return append(args, p.cfg.Header)
}

// Load returns the root of the translation unit.
func (p *Provider) Load(ctx context.Context) (*model.Decl, error) {
	if p.cfg.ASTFile != "" {
		return p.loadFile()
	}
	return p.runClang(ctx)
}

func (p *Provider) loadFile() (*model.Decl, error) {
	f, err := os.Open(p.cfg.ASTFile)
	if err != nil {
		return nil, fmt.Errorf("open AST file: %w", err)
	}
	defer f.Close()

	root, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.cfg.ASTFile, err)
	}
	return root, nil
}

func (p *Provider) runClang(ctx context.Context) (*model.Decl, error) {
	if p.cfg.Header == "" {
		return nil, fmt.Errorf("no header to parse")
	}
	args := p.Args()
	p.logger.With("clang", p.cfg.ClangBin, "args", args).Debug("running clang")

	cmd := exec.CommandContext(ctx, p.cfg.ClangBin, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", p.cfg.ClangBin, err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.logDiagnostics(stderr)
	}()

	root, decErr := Decode(bufio.NewReaderSize(stdout, 1<<20))
	if decErr != nil {
		// let clang finish writing so Wait does not block on a full pipe
		_, _ = io.Copy(io.Discard, stdout)
	}
	wg.Wait()
	waitErr := cmd.Wait()

	if decErr != nil {
		if waitErr != nil {
			return nil, fmt.Errorf("clang AST: %w (clang: %v)", decErr, waitErr)
		}
		return nil, fmt.Errorf("clang AST: %w", decErr)
	}
	if waitErr != nil {
		// clang exits non-zero on header errors but still dumps what it parsed
		p.logger.With("error", waitErr).Warn("clang reported errors, continuing with the AST it produced")
	}
	return root, nil
}

// logDiagnostics passes clang's diagnostics through verbatim, one record per
// line.
func (p *Provider) logDiagnostics(r io.Reader) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		p.logger.With("diagnostic", sc.Text()).Warn("clang")
	}
	if err := sc.Err(); err != nil {
		p.logger.With("error", err).Warn("reading clang diagnostics")
		_, _ = io.Copy(io.Discard, r)
	}
}
