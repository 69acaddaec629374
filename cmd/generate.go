package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/cmmoran/objc2hx/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	var progress bool

	// genCmd represents the objc2hx generate command
	var genCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate extern classes",
		Long:  "Parse a framework header with clang and write one Haxe extern class per Objective-C class",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c.Flags())
			if err != nil {
				return err
			}
			var bar io.Writer
			if progress {
				bar = c.ErrOrStderr()
			}
			_, err = generate.Generate(c.Context(), opts, bar)
			return err
		},
	}
	addOptionFlags(genCmd.Flags())
	genCmd.Flags().BoolVar(&progress, "progress", false, "draw a progress bar on stderr")

	return genCmd
}
