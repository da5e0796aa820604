package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

// Default key size. Key is printed as hex, so it is twice as long
const SecretKeyBytesLen = 16

// Generate obfuscation key for licensegen and licensecheck (--secret-key, LICENSE_SECRET_KEY)
func main() {
	err := run(os.Args[1:], rand.Reader, os.Stdout)

	switch {
	case err == nil:
	case errors.Is(err, pflag.ErrHelp):
	default:
		fmt.Fprintf(os.Stderr, "error while generating secret key: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, random io.Reader, stdout io.Writer) error {
	fs := pflag.NewFlagSet("gensecret", pflag.ContinueOnError)
	size := fs.IntP("bytes", "b", SecretKeyBytesLen, "Key size in bytes")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *size <= 0 {
		return fmt.Errorf("key size must be positive, got %d", *size)
	}

	b := make([]byte, *size)
	if _, err := io.ReadFull(random, b); err != nil {
		return err
	}

	_, err := fmt.Fprintln(stdout, hex.EncodeToString(b))
	return err
}
