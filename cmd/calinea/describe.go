package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/calinea/internal/presentation/tui"
)

func newDescribeCmd(a *app) *cobra.Command {
	var (
		in    inputFlags
		title string
		width int
		raw   bool
	)
	cmd := &cobra.Command{
		Use:   "describe [text...]",
		Short: "Explain the structure of a message",
		Long:  `Prints a table of every node in the message with its content, style and interaction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := a.parse(cmd, &in, args)
			if err != nil {
				return err
			}
			md := tui.Describe(title, node, a.kit.Translator())
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			render, err := tui.NewRenderer(width)
			if err != nil {
				return err
			}
			out, err := render(md)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&title, "title", "Message", "Report heading")
	cmd.Flags().IntVar(&width, "width", 100, "Wrap width in columns")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without terminal rendering")
	return cmd
}
