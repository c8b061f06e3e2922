// Package config loads the aes-ecb command settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/mario-areias/aes-ecb/codec"
)

// Config is the on-disk form of the command line flags.
// Flags given on the command line override file values.
type Config struct {
	// Key is the hex encoded 128 bit key.
	Key string `json:"key,omitempty"`
	// Format is the input encoding: base64, hex or raw.
	Format string `json:"format,omitempty"`
	// Workers is the number of goroutines decrypting blocks.
	// Values below 2 decrypt serially.
	Workers int `json:"workers,omitempty"`
	// Unpad strips PKCS#7 padding from the decrypted output.
	Unpad bool `json:"unpad,omitempty"`
	// Detect reports the input line most likely encrypted with ECB
	// instead of decrypting.
	Detect bool `json:"detect,omitempty"`
	// Verbose enables diagnostic logging on stderr.
	Verbose bool `json:"verbose,omitempty"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Format:  codec.Base64.String(),
		Workers: 1,
	}
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	c := Default()
	buf, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.UnmarshalStrict(buf, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks the settings that do not depend on the input.
func (c *Config) Validate() error {
	if _, err := codec.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if !c.Detect && c.Key == "" {
		return errors.New("a key is required to decrypt")
	}
	return nil
}
