package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/flashkit/flash"
	"github.com/joshuapare/flashkit/flash/layout"
	"github.com/joshuapare/flashkit/flash/verify"
)

var (
	diffLayoutDesc string
	diffSkipList   string
)

func init() {
	cmd := newDiffCmd()
	cmd.Flags().StringVar(&diffLayoutDesc, "layout", "", "Layout description (default: embedded flash map of the first image)")
	cmd.Flags().StringVar(&diffSkipList, "skip", "", "Skip regions as name:offset:size, comma separated")
	rootCmd.AddCommand(cmd)
}

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <imageA> <imageB>",
		Short: "Compare two images, masking volatile regions",
		Long: `The diff command compares two image files byte-for-byte, padding the
configured skip regions out of both before comparing. Exit status is 0
when the images match and 1 when they differ.

Example:
  flashctl diff before.bin after.bin --skip "EC_RO:0x48:4"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			b, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}

			l, err := layout.Detect(diffLayoutDesc, len(a), a, layout.DetectOptions{})
			if err != nil {
				return err
			}
			skip, err := verify.ParseSkipRegions(diffSkipList)
			if err != nil {
				return err
			}

			same, err := verify.WholeImagesEqual(l, flash.Image(a), flash.Image(b), skip)
			if err != nil {
				return err
			}
			if !same {
				printInfo("Images differ outside skip regions\n")
				os.Exit(1)
			}
			printInfo("Images match\n")
			return nil
		},
	}
}
