package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kalevivt/multiple-of-a-and-b/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type rootOptions struct {
	configPath string

	viper  *viper.Viper
	config *config
	logger *slog.Logger
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(stdout io.Writer, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{viper: viper.New()}

	cmd := &cobra.Command{
		Use:   "multiples <input> <output>",
		Short: "Write the multiples of a or b up to a bound, for every line of an input file",
		Long: `Reads lines of the form "a b end" from <input> and, for each one, writes the
ascending integers in [1, end] divisible by a or b as a line of <output>.
Output lines are in the same order as the input lines.`,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Arguments are valid at this point, so further errors are not usage errors
			cmd.SilenceUsage = true

			config, err := loadConfig(opts.viper, opts.configPath)
			if err != nil {
				return err
			}

			logger, err := newLogger(stderr, config)
			if err != nil {
				return err
			}

			opts.config = config
			opts.logger = logger

			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			blankLines, err := pipeline.ParseBlankLinePolicy(opts.config.BlankLines)
			if err != nil {
				return fmt.Errorf("invalid blank_lines setting: %w", err)
			}

			var echo io.Writer
			if opts.config.Echo {
				echo = stdout
			}

			p := pipeline.New(opts.logger, pipeline.Options{
				Parallelism: opts.config.Parallelism,
				BlankLines:  blankLines,
				Echo:        echo,
			})

			return p.Run(args[0], args[1]) //nolint:wrapcheck
		},
	}

	// Usage and help go to stderr; stdout only carries results
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", logFormatText, "Log format (text, json)")

	cmd.Flags().IntP("parallelism", "p", 1, "Maximum number of lines computed concurrently")
	cmd.Flags().String("blank-lines", string(pipeline.BlankLinesSkip), "How to treat blank input lines (skip, error)")
	cmd.Flags().Bool("echo", false, "Also print every output line to stdout")

	bindFlags(opts.viper, cmd.PersistentFlags(), map[string]string{
		"log_level":  "log-level",
		"log_format": "log-format",
	})
	bindFlags(opts.viper, cmd.Flags(), map[string]string{
		"parallelism": "parallelism",
		"blank_lines": "blank-lines",
		"echo":        "echo",
	})

	cmd.AddCommand(newVersionCommand(stdout))

	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			// Flags are static, so this can only be a programming error
			panic(fmt.Sprintf("failed to bind flag '%s' to config key '%s': %v", flag, key, err))
		}
	}
}
