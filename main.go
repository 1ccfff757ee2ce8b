package main

import (
	"fmt"
	"os"

	"github.com/nicolasacquaviva/cuerre-gen/lib"
	"github.com/nicolasacquaviva/cuerre-gen/lib/cli"
)

func main() {
	config, err := lib.GetConfig()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(lib.ExitFailure)
	}

	os.Exit(cli.Execute(config, os.Args[1:], os.Stdout, os.Stderr))
}
