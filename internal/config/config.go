// Package config holds the command-line configuration and its validation.
package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/gocrypt/internal/cipherspec"
)

// Suffixes are the file name extensions for encrypted and decrypted outputs.
type Suffixes struct {
	Encrypt string `mapstructure:"encrypt-ext" validate:"required,excludes=/"`
	Decrypt string `mapstructure:"decrypt-ext" validate:"excludes=/"`
}

// Config is the configuration for the encrypt and decrypt commands.
type Config struct {
	// Show prints the configuration and exits.
	Show bool

	Algorithm string `validate:"required"`
	Mode      string `validate:"required"`

	// Exactly one credential source, or none to prompt.
	Password string `mask:"fixed" validate:"exclusive=Key KeyFile"`
	Key      string `mask:"fixed" validate:"exclusive=Password KeyFile"`
	KeyFile  string `mapstructure:"key-file" validate:"omitempty,file,exclusive=Password Key"`

	Iterations int `validate:"min=1"`
	Parallel   int `validate:"min=1"`

	Quiet              bool
	Dry                bool
	Delete             bool
	Stats              bool
	PreserveTimestamps bool   `mapstructure:"preserve-timestamps"`
	LogLevel           string `mapstructure:"log-level" validate:"oneof=debug info warn error"`

	Suffixes `mapstructure:",squash"`

	// Selection of files inside directory arguments.
	Include     []string
	Exclude     []string
	IncludeFrom string `mapstructure:"include-from" validate:"omitempty,file"`
	ExcludeFrom string `mapstructure:"exclude-from" validate:"omitempty,file"`

	// Set by the subcommand.
	Decrypt bool     `mapstructure:"-"`
	Files   []string `mapstructure:"-" validate:"min=1,dive,required"`

	// Spec is resolved from Algorithm and Mode by Validate.
	Spec cipherspec.Spec `mapstructure:"-" validate:"-"`
}

// Keygen is the configuration for the keygen command.
type Keygen struct {
	Algorithm string `validate:"required"`
	Output    string
	LogLevel  string `mapstructure:"log-level" validate:"oneof=debug info warn error"`

	Spec cipherspec.Spec `mapstructure:"-" validate:"-"`
}

// Validate checks the struct tags and resolves the cipher.
func (c *Config) Validate() error {
	if err := validate(c); err != nil {
		return err
	}

	spec, err := resolve(c.Algorithm, c.Mode)
	if err != nil {
		return err
	}

	c.Spec = spec

	return nil
}

// Validate checks the struct tags and resolves the algorithm.
func (k *Keygen) Validate() error {
	if err := validate(k); err != nil {
		return err
	}

	spec, err := resolve(k.Algorithm, cipherspec.CBC.String())
	if err != nil {
		return err
	}

	k.Spec = spec

	return nil
}

// Level parses a log level name as accepted by LogLevel.
func Level(name string) slog.Level {
	var level slog.Level

	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}

	return level
}

func validate(s any) error {
	v := validator.NewValidator()

	if err := registerExclusive(v); err != nil {
		return err
	}

	if errs := v.Validate(s); len(errs) > 0 {
		return fmt.Errorf("validating configuration: %w", errors.Join(errs...))
	}

	return nil
}

func resolve(algorithm, mode string) (cipherspec.Spec, error) {
	alg, err := cipherspec.ParseAlgorithm(algorithm)
	if err != nil {
		return cipherspec.Spec{}, err
	}

	m, err := cipherspec.ParseMode(mode)
	if err != nil {
		return cipherspec.Spec{}, err
	}

	return cipherspec.Resolve(alg, m)
}
