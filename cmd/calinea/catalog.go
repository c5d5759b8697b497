package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/calinea/pkg/codec"
)

func newCatalogCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Read messages from a catalog directory",
		Long:  `A catalog is a directory of message files (markdown, JSON or YAML documents) whose metadata names the format of the body.`,
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", ".", "Catalog directory")

	list := &cobra.Command{
		Use:   "list",
		Short: "List catalog messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := openCatalog(a, dir, false)
			if err != nil {
				return err
			}
			entries, err := catalog.Entries(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				line := fmt.Sprintf("%s\t%s", e.ID, e.Format)
				if e.Description != "" {
					line += "\t" + e.Description
				}
				if len(e.Tags) > 0 {
					line += "\t[" + strings.Join(e.Tags, ", ") + "]"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	var to string
	var strict bool
	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Print a catalog message in another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := codec.ParseFormat(to)
			if err != nil {
				return err
			}
			catalog, err := openCatalog(a, dir, strict)
			if err != nil {
				return err
			}
			node, err := catalog.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			s, err := a.kit.Serialize(format, node)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	get.Flags().StringVar(&to, "to", string(codec.FormatJSON), "Output format")
	get.Flags().BoolVar(&strict, "strict", false, "Fail on malformed message bodies")

	cmd.AddCommand(list, get)
	return cmd
}
