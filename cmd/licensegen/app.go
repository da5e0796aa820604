package main

import (
	"fmt"
	"io"
	"time"

	"github.com/nkiryanov/offlicense/internal/logger"
	"github.com/nkiryanov/offlicense/internal/service/license"
	"github.com/nkiryanov/offlicense/internal/service/obfuscate"
)

// Generate license token and print it to stdout.
// Configuration is taken from '.env', environment and flags, the latter wins.
func run(getenv func(string) string, getwd func() (string, error), args []string, stdout io.Writer) error {
	c := NewConfig(time.Now())

	if err := c.LoadDotEnv(getwd); err != nil {
		return fmt.Errorf("error while loading .env file. Err: %w", err)
	}
	if err := c.LoadEnv(getenv); err != nil {
		return err
	}
	if err := c.ParseFlags(args); err != nil {
		return err
	}

	log, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return fmt.Errorf("error while initializing logger: %w", err)
	}

	key, err := obfuscate.ParseKey(c.SecretKey)
	if err != nil {
		return err
	}

	svc, err := license.New(license.Config{Key: key, IdentifierPrefix: c.IdentifierPrefix}, log)
	if err != nil {
		return fmt.Errorf("error while creating license service. Err: %w", err)
	}

	issued, err := svc.Generate(license.GenerateRequest{
		Identifier:   c.Identifier,
		StartDate:    c.StartDate,
		DurationDays: c.DurationDays,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, issued.Token)
	return err
}
