package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/nkiryanov/offlicense/internal/models"
)

func main() {
	status, err := run(os.Getenv, os.Getwd, os.Args[1:], os.Stdin, os.Stdout)

	switch {
	case err == nil:
		os.Exit(status.ExitCode())
	case errors.Is(err, pflag.ErrHelp):
		os.Exit(0)
	default:
		// Nothing could be confirmed, so report the key as invalid
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(models.StatusInvalid.ExitCode())
	}
}
