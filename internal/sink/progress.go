package sink

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/cmmoran/objc2hx/internal/binding"
	"github.com/cmmoran/objc2hx/internal/model"
)

// Progress advances a progress bar for every unit passed on to Next.
type Progress struct {
	Next binding.Sink
	bar  *progressbar.ProgressBar
}

// NewProgress draws to w; total is the number of classes expected, or -1
// when unknown.
func NewProgress(next binding.Sink, total int, w io.Writer) *Progress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Emitting[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(w, "\n")
		}),
	)
	return &Progress{Next: next, bar: bar}
}

func (p *Progress) Put(unit *model.BindingUnit) error {
	if err := p.Next.Put(unit); err != nil {
		return err
	}
	return p.bar.Add(1)
}

// Finish completes the bar.
func (p *Progress) Finish() error {
	return p.bar.Finish()
}
