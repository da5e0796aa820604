package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	err := run(os.Getenv, os.Getwd, os.Args[1:], os.Stdout)

	switch {
	case err == nil:
	case errors.Is(err, pflag.ErrHelp):
	default:
		fmt.Fprintf(os.Stderr, "failed to generate license key: %v\n", err)
		os.Exit(1)
	}
}
