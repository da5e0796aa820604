package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nkiryanov/offlicense/internal/logger"
	"github.com/nkiryanov/offlicense/internal/models"
	"github.com/nkiryanov/offlicense/internal/render"
	"github.com/nkiryanov/offlicense/internal/service/license"
	"github.com/nkiryanov/offlicense/internal/service/obfuscate"
)

var errEmptyToken = errors.New("license key cannot be empty")

// Validate license token and print report to stdout.
// Returned status is meaningful only if error is nil.
func run(getenv func(string) string, getwd func() (string, error), args []string, stdin io.Reader, stdout io.Writer) (models.Status, error) {
	c := NewConfig()

	if err := c.LoadDotEnv(getwd); err != nil {
		return models.StatusInvalid, fmt.Errorf("error while loading .env file. Err: %w", err)
	}
	if err := c.LoadEnv(getenv); err != nil {
		return models.StatusInvalid, err
	}
	if err := c.ParseFlags(args); err != nil {
		return models.StatusInvalid, err
	}

	log, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return models.StatusInvalid, fmt.Errorf("error while initializing logger: %w", err)
	}

	key, err := obfuscate.ParseKey(c.SecretKey)
	if err != nil {
		return models.StatusInvalid, err
	}

	svc, err := license.New(license.Config{
		Key:              key,
		MaxPayload:       c.MaxPayload,
		MaxIdentifier:    c.MaxIdentifier,
		IdentifierPrefix: c.IdentifierPrefix,
	}, log)
	if err != nil {
		return models.StatusInvalid, fmt.Errorf("error while creating license service. Err: %w", err)
	}

	token, err := readToken(c, stdin)
	if err != nil {
		return models.StatusInvalid, err
	}

	result := svc.Validate(token)
	if err := render.Write(stdout, c.Output, render.NewReport(result, nil)); err != nil {
		return models.StatusInvalid, err
	}

	return result.Status(), nil
}

func readToken(c *Config, stdin io.Reader) (string, error) {
	var token string

	switch {
	case c.File != "":
		b, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("error while reading license file. Err: %w", err)
		}
		token = string(b)
	case c.Token == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("error while reading license key from stdin. Err: %w", err)
		}
		token = string(b)
	default:
		token = c.Token
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", errEmptyToken
	}

	return token, nil
}
