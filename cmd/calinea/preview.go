package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/calinea/internal/cli"
	"github.com/aretw0/calinea/internal/presentation/tui"
	loamadapter "github.com/aretw0/calinea/pkg/adapters/loam"
	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/component"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		in    inputFlags
		color string
		dir   string
		id    string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "preview [text...]",
		Short: "Render a message with terminal colors",
		Long: `Renders a message with ANSI colors and decorations, resolving translations and keybinds with the pack.
With --id the message is read from a catalog directory; --watch re-renders it whenever its file changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			profile, err := colorProfile(out, color)
			if err != nil {
				return err
			}
			previewer := tui.NewPreviewer(profile, a.kit.Translator())
			render := func(n *component.Node) error {
				_, err := fmt.Fprintln(out, previewer.Render(n))
				return err
			}

			if id == "" {
				if watch {
					return errors.New("--watch needs a catalog message (--id)")
				}
				node, err := a.parse(cmd, &in, args)
				if err != nil {
					return err
				}
				return render(node)
			}

			catalog, err := openCatalog(a, dir, in.strict)
			if err != nil {
				return err
			}
			if !watch {
				node, err := catalog.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				return render(node)
			}

			tui.PrintBanner(out, profile)
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()
			return cli.RunWatch(sigCtx, catalog, id, render, out, a.logger)
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&color, "color", "auto", "Color output: auto, always or never")
	cmd.Flags().StringVar(&dir, "dir", ".", "Catalog directory used with --id")
	cmd.Flags().StringVar(&id, "id", "", "Preview a catalog message instead of an argument")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render the catalog message when it changes")
	return cmd
}

// colorProfile picks the termenv profile for out. Auto mode only colors
// terminals and honours NO_COLOR and CLICOLOR_FORCE.
func colorProfile(out io.Writer, mode string) (termenv.Profile, error) {
	switch mode {
	case "never":
		return termenv.Ascii, nil
	case "always":
		return termenv.TrueColor, nil
	case "auto", "":
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return termenv.NewOutput(f).EnvColorProfile(), nil
		}
		return termenv.Ascii, nil
	}
	return termenv.Ascii, fmt.Errorf("unknown color mode %q", mode)
}

func openCatalog(a *app, dir string, strict bool) (*loamadapter.Catalog, error) {
	opts := []loamadapter.Option{loamadapter.WithRegistry(a.kit.Registry())}
	if strict {
		opts = append(opts, loamadapter.WithParseOptions(codec.StrictMode()))
	}
	return loamadapter.Open(dir, opts...)
}
