package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/calinea"
	"github.com/aretw0/calinea/internal/cli"
	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
)

// app holds the state shared by every subcommand. It is filled in by the
// root command's PersistentPreRunE.
type app struct {
	opts   cli.Options
	logger *slog.Logger
	kit    *calinea.Toolkit
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "calinea",
		Short:         "Calinea works with styled chat text",
		Long:          `Calinea converts chat text between legacy codes, tag markup and JSON, lints it against resource pack data, measures it in client pixels and previews it in the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := cli.NewLogger(a.opts.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.logger = logger
			if a.opts.Dir == "" {
				a.opts.Dir, _ = os.Getwd()
			}
			a.kit, err = cli.NewToolkit(a.opts, logger)
			return err
		},
	}

	// Persistent flags (available to all commands)
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.opts.PackPath, "pack", "", "Resource pack data file (defaults to $"+cli.PackEnv+" or a pack.json in the working directory)")
	flags.StringVar(&a.opts.Language, "lang", "", "Translation language (default en_us)")
	flags.StringVar(&a.opts.LogLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	cmd.AddCommand(
		newConvertCmd(a),
		newPlainCmd(a),
		newValidateCmd(a),
		newMeasureCmd(a),
		newLayoutCmd(a),
		newPreviewCmd(a),
		newDescribeCmd(a),
		newCatalogCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// inputFlags are shared by commands that read one message.
type inputFlags struct {
	file   string
	from   string
	strict bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read input from a file (- for stdin)")
	cmd.Flags().StringVar(&f.from, "from", "auto", "Input format: auto, legacy, markup, json, yaml or markdown")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail on malformed input instead of recovering")
}

// parse reads and parses the command input.
func (a *app) parse(cmd *cobra.Command, f *inputFlags, args []string) (*component.Node, error) {
	input, err := cli.ReadInput(f.file, args, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	var opts []codec.ParseOption
	if f.strict {
		opts = append(opts, codec.StrictMode())
	}

	if f.from == "" || f.from == "auto" {
		node, format, err := a.kit.ParseAuto(input, opts...)
		a.logger.Debug("detected format", "format", format)
		return node, err
	}
	format, err := codec.ParseFormat(f.from)
	if err != nil {
		return nil, err
	}
	return a.kit.Parse(format, input, opts...)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of calinea",
		// Skip toolkit setup.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "calinea version %s\n", calinea.Version)
		},
	}
}
