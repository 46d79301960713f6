package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/flashkit/flash"
)

var (
	writeImageLayoutDesc string
	writeImageSkipList   string
)

func init() {
	cmd := newWriteImageCmd()
	cmd.Flags().StringVar(&writeImageLayoutDesc, "layout", "", "Layout description (default: embedded flash map)")
	cmd.Flags().StringVar(&writeImageSkipList, "skip", "", "Skip regions as name:offset:size, comma separated")
	rootCmd.AddCommand(cmd)
}

func newWriteImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write-image <image> <newimage>",
		Short: "Replace an image wholesale, with read-back verification",
		Long: `The write-image command writes a full replacement image over the target
file in one step, bypassing section journaling, then verifies the result
by reading the file back with skip regions masked.

Example:
  flashctl write-image bios.bin golden.bin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			replacement, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}

			e, err := loadEngine(args[0], writeImageLayoutDesc, writeImageSkipList)
			if err != nil {
				return err
			}
			if err := e.CommitWholeImage(context.Background(), flash.Image(replacement)); err != nil {
				return err
			}
			printInfo("Wrote and verified %d bytes\n", len(replacement))
			return nil
		},
	}
}
