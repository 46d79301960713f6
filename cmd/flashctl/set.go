package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	setLayoutDesc string
	setSkipList   string
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVar(&setLayoutDesc, "layout", "", "Layout description (default: embedded flash map)")
	cmd.Flags().StringVar(&setSkipList, "skip", "", "Skip regions as name:offset:size, comma separated")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <image> <section> <datafile>",
		Short: "Replace one section of an image",
		Long: `The set command journals a section replacement and commits it to the image
file, verifying the write by reading the file back. The data file must be
exactly as long as the section.

Example:
  flashctl set bios.bin FVMAIN new_fvmain.bin
  flashctl set ec.bin EC_RW rw.bin --layout "EC_RO|EC_RW" --skip "EC_RO:0x48:4"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[2])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[2], err)
			}

			e, err := loadEngine(args[0], setLayoutDesc, setSkipList)
			if err != nil {
				return err
			}
			if err := e.WriteSection(args[1], data); err != nil {
				return err
			}
			if !e.NeedCommit() {
				printInfo("Section %s already holds this data; nothing to do\n", args[1])
				return nil
			}
			if err := e.Commit(context.Background()); err != nil {
				return err
			}
			printInfo("Wrote and verified section %s (%d bytes)\n", args[1], len(data))
			return nil
		},
	}
}
