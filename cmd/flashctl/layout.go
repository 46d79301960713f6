package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/flashkit/flash/layout"
)

func init() {
	rootCmd.AddCommand(newLayoutCmd())
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout <description> <size>",
		Short: "Compile a layout description and print the section map",
		Long: `The layout command compiles a textual layout description against a total
image size and prints the resulting section ranges.

Example:
  flashctl layout "ro=0x1000,*|*,rw=0x1000" 0x10000
  flashctl layout "a=4,b|c" 32 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.ParseInt(args[1], 0, 64)
			if err != nil {
				return fmt.Errorf("size %q: %w", args[1], err)
			}
			l, err := layout.Compile(args[0], int(size))
			if err != nil {
				return err
			}
			return printLayout(l)
		},
	}
}
