package main

import (
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

// Overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0-dev"

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of multiples",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			v, err := semver.NewVersion(version)
			if err != nil {
				return fmt.Errorf("build version '%s' is not a semantic version: %w", version, err)
			}

			fmt.Fprintf(stdout, "multiples %s\n", v.String())

			return nil
		},
	}
}
