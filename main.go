package main

import (
	"fmt"
	"os"

	"github.com/thenoetrevino/hue/cmd"
	"github.com/thenoetrevino/hue/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.ExitCodeFor(err))
	}
}
