package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nkiryanov/offlicense/internal/logger"
	"github.com/nkiryanov/offlicense/internal/service/expiry"
	"github.com/nkiryanov/offlicense/internal/service/obfuscate"
)

const (
	defaultLoggingLevel = logger.LevelWarn
	defaultEnvironment  = logger.EnvDevelopment
	defaultSecretKey    = obfuscate.DefaultKey
)

type Config struct {
	// Identifier to put into the license (API key, customer id, ...)
	Identifier string

	// License start date, YYYY-MM-DD in local timezone
	StartDate string

	// License duration in days
	DurationDays int

	// Obfuscation key shared with the validator
	SecretKey string

	// Required identifier prefix, empty to allow any identifier
	IdentifierPrefix string

	// Default logging level
	LogLevel string

	// Environment
	Environment string
}

func NewConfig(now time.Time) *Config {
	return &Config{
		StartDate:   now.Format(expiry.DateLayout),
		SecretKey:   defaultSecretKey,
		LogLevel:    defaultLoggingLevel,
		Environment: defaultEnvironment,
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		return c.LoadEnv(func(key string) string {
			return envMap[key]
		})
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) error {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) error {
		return func(value string) error {
			if value != "" {
				*o = value
			}
			return nil
		}
	}

	setInt := func(o *int) func(value string) error {
		return func(value string) error {
			if value == "" {
				return nil
			}
			v, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			*o = v
			return nil
		}
	}

	envMap := map[string]func(string) error{
		"LICENSE_IDENTIFIER":        setString(&c.Identifier),
		"LICENSE_START_DATE":        setString(&c.StartDate),
		"LICENSE_DURATION_DAYS":     setInt(&c.DurationDays),
		"LICENSE_SECRET_KEY":        setString(&c.SecretKey),
		"LICENSE_IDENTIFIER_PREFIX": setString(&c.IdentifierPrefix),
		"LOG_LEVEL":                 setString(&c.LogLevel),
		"ENVIRONMENT":               setString(&c.Environment),
	}

	for key, parseFn := range envMap {
		if err := parseFn(getenv(key)); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	return nil
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("licensegen", pflag.ContinueOnError)

	fs.StringVarP(&c.Identifier, "identifier", "i", c.Identifier, "Identifier to license (must not contain '|')")
	fs.StringVarP(&c.StartDate, "start-date", "d", c.StartDate, "License start date (YYYY-MM-DD)")
	fs.IntVarP(&c.DurationDays, "days", "n", c.DurationDays, "License duration in days")
	fs.StringVarP(&c.SecretKey, "secret-key", "s", c.SecretKey, "Obfuscation key shared with validator")
	fs.StringVarP(&c.IdentifierPrefix, "prefix", "p", c.IdentifierPrefix, "Required identifier prefix")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return nil
}
