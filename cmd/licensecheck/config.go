package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nkiryanov/offlicense/internal/logger"
	"github.com/nkiryanov/offlicense/internal/render"
	"github.com/nkiryanov/offlicense/internal/service/license"
	"github.com/nkiryanov/offlicense/internal/service/obfuscate"
)

const (
	defaultLoggingLevel = logger.LevelWarn
	defaultEnvironment  = logger.EnvDevelopment
	defaultSecretKey    = obfuscate.DefaultKey
	defaultOutput       = render.FormatText
)

type Config struct {
	// License token to check, "-" means read from stdin
	Token string

	// File with license token, used instead of Token if set
	File string

	// Obfuscation key shared with the generator
	SecretKey string

	// Required identifier prefix, empty to allow any identifier
	IdentifierPrefix string

	// Size limits of decoded token
	MaxPayload    int
	MaxIdentifier int

	// Report format (text, json, yaml)
	Output string

	// Default logging level
	LogLevel string

	// Environment
	Environment string
}

func NewConfig() *Config {
	return &Config{
		SecretKey:     defaultSecretKey,
		MaxPayload:    license.DefaultMaxPayload,
		MaxIdentifier: license.DefaultMaxIdentifier,
		Output:        defaultOutput,
		LogLevel:      defaultLoggingLevel,
		Environment:   defaultEnvironment,
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
		"LICENSE_FILE":              setString(&c.File),
		"LICENSE_SECRET_KEY":        setString(&c.SecretKey),
		"LICENSE_IDENTIFIER_PREFIX": setString(&c.IdentifierPrefix),
		"LICENSE_MAX_PAYLOAD":       setInt(&c.MaxPayload),
		"LICENSE_MAX_IDENTIFIER":    setInt(&c.MaxIdentifier),
		"OUTPUT":                    setString(&c.Output),
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
	fs := pflag.NewFlagSet("licensecheck", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: licensecheck [flags] <license_key | ->\n\n")
		fs.PrintDefaults()
	}

	fs.StringVarP(&c.File, "file", "f", c.File, "Read license key from file")
	fs.StringVarP(&c.SecretKey, "secret-key", "s", c.SecretKey, "Obfuscation key shared with generator")
	fs.StringVarP(&c.IdentifierPrefix, "prefix", "p", c.IdentifierPrefix, "Required identifier prefix")
	fs.IntVar(&c.MaxPayload, "max-payload", c.MaxPayload, "Largest accepted decoded token size, bytes")
	fs.IntVar(&c.MaxIdentifier, "max-identifier", c.MaxIdentifier, "Largest accepted identifier size, bytes")
	fs.StringVarP(&c.Output, "output", "o", c.Output, "Report format (text, json, yaml)")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		c.Token = fs.Arg(0)
	default:
		return fmt.Errorf("expected one license key, got %d arguments", fs.NArg())
	}

	if !render.IsFormat(c.Output) {
		return fmt.Errorf("unknown output format %q", c.Output)
	}

	return nil
}
