// Package config loads suffixgram settings from a TOML file layered over
// built-in defaults.
package config

import (
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/pkg/errors"
)

// DefaultMaxSequenceLength matches the bound the BLMT tools were built with.
const DefaultMaxSequenceLength = 1200000000

type Config struct {
	// Largest accepted concatenated sequence, separators included.
	MaxSequenceLength int `toml:"max_sequence_length"`

	// Upper-case lowercase residues instead of rejecting them.
	FoldCase bool `toml:"fold_case"`

	// Keep header lines for record reports.
	KeepHeaders bool `toml:"keep_headers"`

	// Compute LCP the way srt2lcp did, skipping ranks 0 and 1.
	LegacyRankGuard bool `toml:"legacy_rank_guard"`

	NGramLength int  `toml:"ngram_length"`
	MinCount    int  `toml:"min_count"`
	Top         int  `toml:"top"`
	Progress    bool `toml:"progress"`
}

func Default() *Config {
	return &Config{
		MaxSequenceLength: DefaultMaxSequenceLength,
		NGramLength:       3,
		MinCount:          1,
		Progress:          true,
	}
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxSequenceLength, validation.Required, validation.Min(2), validation.Max(int64(math.MaxUint32))),
		validation.Field(&c.NGramLength, validation.Required, validation.Min(1)),
		validation.Field(&c.MinCount, validation.Min(1)),
		validation.Field(&c.Top, validation.Min(0)),
	)
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	md, err := toml.DecodeReader(f, c)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validating config %s", path)
	}
	return c, nil
}
