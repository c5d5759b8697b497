package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/calinea/pkg/codec"
	"github.com/aretw0/calinea/pkg/layout"
	"github.com/aretw0/calinea/pkg/transform"
)

func newMeasureCmd(a *app) *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "measure [text...]",
		Short: "Print the width of a message in client pixels",
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := a.parse(cmd, &in, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", a.kit.Width(node))
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

func newLayoutCmd(a *app) *cobra.Command {
	var (
		in      inputFlags
		width   float64
		padding float64
		align   string
		fill    bool
		lines   bool
		to      string
	)
	cmd := &cobra.Command{
		Use:   "layout [text...]",
		Short: "Wrap and align a message to a pixel width",
		Long:  `Wraps a message at word boundaries to fit --width client pixels, then aligns and pads every line with spaces.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			alignment, err := layout.ParseAlignment(align)
			if err != nil {
				return err
			}
			format, err := codec.ParseFormat(to)
			if err != nil {
				return err
			}
			node, err := a.parse(cmd, &in, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			b := a.kit.Layout(node).Width(width).Padding(padding).Align(alignment).FillLines(fill)
			if lines {
				wrapped, err := b.Lines()
				if err != nil {
					return err
				}
				for _, l := range wrapped {
					fmt.Fprintf(out, "%6.1f  %s\n", l.Width, transform.FlattenText(l.Node))
				}
				return nil
			}

			laid, err := b.Build()
			if err != nil {
				return err
			}
			s, err := a.kit.Serialize(format, laid)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, s)
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().Float64Var(&width, "width", layout.DefaultWidth, "Total width in client pixels")
	cmd.Flags().Float64Var(&padding, "padding", 0, "Padding on both sides in client pixels")
	cmd.Flags().StringVar(&align, "align", "left", "Alignment: left, center or right")
	cmd.Flags().BoolVar(&fill, "fill", false, "Pad every line to the full width")
	cmd.Flags().BoolVar(&lines, "lines", false, "Print wrapped lines with their widths instead of the laid-out message")
	cmd.Flags().StringVar(&to, "to", string(codec.FormatLegacy), "Output format")
	return cmd
}
