package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version se sobreescribe en build con -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Imprime la versión de crmctl",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "crmctl %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
	},
}
