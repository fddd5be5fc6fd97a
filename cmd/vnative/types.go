package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vnative/pkg/widget"
)

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered element types",
		Long: `List the element types an application document may use.

Type names are matched case-insensitively.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range widget.DefaultRegistry().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
