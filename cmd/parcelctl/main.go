package main

import (
	"os"

	"github.com/rowneywebster/joyful-cargoparcels/cmd/parcelctl/cmd"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/clierror"
)

func main() {
	if err := cmd.Execute(); err != nil {
		ce := clierror.FromError(err)
		clierror.PrintError(ce, cmd.OutputFormat())
		os.Exit(ce.ExitCode)
	}
}
