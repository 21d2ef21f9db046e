// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the cpxsv settings unmarshalled by Viper from
// command line flags, the environment and an optional cpxsv.yaml file.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/biogo/sv/cpx"
)

// EnvPrefix is the prefix of environment variables read into a Config.
const EnvPrefix = "CPXSV"

// Config is the cpxsv run configuration.
type Config struct {
	// Workers is the number of contigs interpreted concurrently.
	Workers int `mapstructure:"workers"`

	// MinGap is the smallest insertion or deletion at which an
	// alignment is split before interpretation. Zero disables splitting.
	MinGap int `mapstructure:"min-gap"`

	// Compression is the checkpoint compression, "bgzf" or "xz".
	Compression string `mapstructure:"compression"`

	// Checkpoint is the annotated contig checkpoint path.
	Checkpoint string `mapstructure:"checkpoint"`

	// Dump is the debug dump path.
	Dump string `mapstructure:"dump"`

	// Segments is the segment table path, "-" for standard output.
	Segments string `mapstructure:"segments"`

	// FAI is an FAI index defining the reference ordering. If empty
	// the order of the input header is used.
	FAI string `mapstructure:"fai"`

	// Reference is a FASTA file, with a .fai index alongside,
	// providing segment sequences.
	Reference string `mapstructure:"reference"`
}

// SetDefaults sets the default values of the Config keys in v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("workers", runtime.GOMAXPROCS(0))
	v.SetDefault("min-gap", 50)
	v.SetDefault("compression", "bgzf")
	v.SetDefault("segments", "-")
}

// New returns a Config read from v. Configuration files named
// cpxsv.yaml in the working directory are read if present.
func New(v *viper.Viper) (Config, error) {
	v.SetConfigName("cpxsv")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}

	var c Config
	err = v.Unmarshal(&c)
	if err != nil {
		return Config{}, fmt.Errorf("config: unable to decode: %w", err)
	}
	return c, c.Validate()
}

// Validate returns an error if c holds invalid settings.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("config: invalid worker count: %d", c.Workers)
	}
	if c.MinGap < 0 {
		return fmt.Errorf("config: invalid minimum gap: %d", c.MinGap)
	}
	_, err := cpx.ParseCompression(c.Compression)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
