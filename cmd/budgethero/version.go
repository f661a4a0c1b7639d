package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/DaanHessen/budgethero/internal/catalog"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "budgethero %s\n", version)
			fmt.Fprintf(out, "Rules: %s\n", rulesVersion)
			fmt.Fprintf(out, "Catalog: v%d\n", cat.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
