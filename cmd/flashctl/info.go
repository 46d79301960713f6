package main

import (
	"github.com/spf13/cobra"
)

var infoLayoutDesc string

func init() {
	cmd := newInfoCmd()
	cmd.Flags().StringVar(&infoLayoutDesc, "layout", "", "Layout description (default: embedded flash map)")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <image>",
		Short: "Show image size and detected section layout",
		Long: `The info command reads an image file, resolves its layout from the
embedded flash map (or from --layout), and prints the section ranges.

Example:
  flashctl info bios.bin
  flashctl info ec.bin --layout "EC_RO|EC_RW"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEngine(args[0], infoLayoutDesc, "")
			if err != nil {
				return err
			}
			printInfo("%s: %d bytes, %d sections\n",
				args[0], len(e.CurrentImage()), len(e.Layout()))
			return printLayout(e.Layout())
		},
	}
}
