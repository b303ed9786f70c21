package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// WriteTOML renders the resolved configuration in the same format as
// ~/.cipherkit/config.toml.
func (c Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
