package main

import (
	"fmt"
	"os"

	"github.com/jbonatakis/skinwell/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		if cli.IsUsageError(err) {
			fmt.Fprintln(os.Stderr, err.Error())
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, cli.Usage())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
