package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/calinea/pkg/codec"
)

func newConvertCmd(a *app) *cobra.Command {
	var in inputFlags
	var to string
	cmd := &cobra.Command{
		Use:   "convert [text...]",
		Short: "Convert a message between formats",
		Long:  `Parses a message (from arguments, --file or stdin) and writes it in another format.`,
		Example: `  calinea convert --to json "<red><b>Hello</b> world"
  echo '&cHi' | calinea convert --from legacy --to markup`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := codec.ParseFormat(to)
			if err != nil {
				return err
			}
			node, err := a.parse(cmd, &in, args)
			if err != nil {
				return err
			}
			out, err := a.kit.Serialize(format, node)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&to, "to", string(codec.FormatJSON), "Output format: legacy, markup, json, yaml or markdown")
	return cmd
}

func newPlainCmd(a *app) *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "plain [text...]",
		Short: "Print a message as unstyled text",
		Long:  `Resolves translations and keybinds with the pack and prints the text a client would display.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := a.parse(cmd, &in, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.kit.PlainText(node))
			return nil
		},
	}
	in.register(cmd)
	return cmd
}
