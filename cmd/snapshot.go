package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/objc2hx/pkg/action/snapshot"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var manifestPath string

	var snapCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "record and compare generated bindings",
	}
	snapCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "objc2hx.manifest.yaml", "manifest file tracking snapshots")

	var name, ver string
	var recordCmd = &cobra.Command{
		Use:   "record",
		Short: "generate bindings into <out-dir>/<version> and record them",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c.Flags())
			if err != nil {
				return err
			}
			s, err := snapshot.Generate(c.Context(), opts, manifestPath, name, ver)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "recorded %s %s: %d classes in %s\n", s.Name, s.Version, s.Classes, s.Dir)
			return nil
		},
	}
	addOptionFlags(recordCmd.Flags())
	recordCmd.Flags().StringVar(&name, "name", "", "snapshot name, defaults to the package")
	recordCmd.Flags().StringVar(&ver, "version", "", "snapshot version, e.g. the SDK version")
	_ = recordCmd.MarkFlagRequired("version")

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		RunE: func(c *cobra.Command, args []string) error {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				return err
			}
			out := c.OutOrStdout()
			for _, s := range m.Snapshots {
				marker := " "
				switch s.Version {
				case m.CurrentVersion:
					marker = "*"
				case m.PreviousVersion:
					marker = "-"
				}
				fmt.Fprintf(out, "%s %s %s %d %s\n", marker, s.Name, s.Version, s.Classes, s.Dir)
			}
			return nil
		},
	}

	var diffCmd = &cobra.Command{
		Use:   "diff",
		Short: "diff the current snapshot against the previous one",
		RunE: func(c *cobra.Command, args []string) error {
			d, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if err != nil {
				return err
			}
			fmt.Fprint(c.OutOrStdout(), d)
			return nil
		},
	}

	snapCmd.AddCommand(recordCmd, listCmd, diffCmd)
	return snapCmd
}
