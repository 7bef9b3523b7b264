package main

import (
	"os"

	"github.com/hbjs97/uvsync/internal/cli"
)

func main() {
	cmd := cli.NewApp().NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(int(cli.MapExitCode(err)))
	}
}
