package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	getLayoutDesc string
	getOutFile    string
)

func init() {
	cmd := newGetCmd()
	cmd.Flags().StringVar(&getLayoutDesc, "layout", "", "Layout description (default: embedded flash map)")
	cmd.Flags().StringVarP(&getOutFile, "output", "o", "", "Write section bytes to a file instead of hex-dumping")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <image> <section>",
		Short: "Read one section out of an image",
		Long: `The get command extracts a named section from an image file and either
hex-dumps it or writes the raw bytes to a file.

Example:
  flashctl get bios.bin RO_VPD
  flashctl get bios.bin FVMAIN -o fvmain.bin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEngine(args[0], getLayoutDesc, "")
			if err != nil {
				return err
			}
			data, err := e.ReadSection(args[1])
			if err != nil {
				return err
			}
			if getOutFile != "" {
				if err := os.WriteFile(getOutFile, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", getOutFile, err)
				}
				printVerbose("Wrote %d bytes to %s\n", len(data), getOutFile)
				return nil
			}
			printInfo("%s", hex.Dump(data))
			return nil
		},
	}
}
