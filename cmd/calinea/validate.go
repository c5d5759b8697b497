package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/calinea/internal/presentation/graph"
	"github.com/aretw0/calinea/internal/validator"
	"github.com/aretw0/calinea/pkg/translate"
)

func newValidateCmd(a *app) *cobra.Command {
	var in inputFlags
	var withGraph bool
	cmd := &cobra.Command{
		Use:   "validate [text...]",
		Short: "Check a message against the resource pack",
		Long:  `Reports missing translations, argument count mismatches, unknown keybinds and fonts, and malformed click actions. Exits non-zero when errors are found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := a.parse(cmd, &in, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			issues := validator.New(a.kit.Pack(), translate.WithLanguage(a.kit.Translator().Language())).Lint(node)
			for _, issue := range issues {
				fmt.Fprintln(out, issue)
			}

			if withGraph {
				overlay := &graph.GraphOverlay{}
				for _, issue := range issues {
					overlay.Flagged = append(overlay.Flagged, issue.Path)
				}
				fmt.Fprint(out, graph.GenerateMermaid(node, overlay))
			}

			if err := validator.Check(issues); err != nil {
				return err
			}
			if !withGraph {
				fmt.Fprintln(out, "Message is valid! ✅")
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&withGraph, "graph", false, "Print the tree as a Mermaid diagram with flagged nodes highlighted")
	return cmd
}
