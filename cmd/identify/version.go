package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the identify version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			name := color.New(color.FgCyan, color.Bold)
			if !useColor(cmd.OutOrStdout(), false) {
				name.DisableColor()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", name.Sprint("metalid identify"), version)
		},
	}
}
