// Package toml loads csc configuration from TOML files.
package toml

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/csc"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override file settings.
const (
	EnvConfig = "CSC_CONFIG"
	EnvDB     = "CSC_DB"
	EnvIndex  = "CSC_INDEX"
)

// DefaultConfigPath is read when CSC_CONFIG is not set.
const DefaultConfigPath = "csc.toml"

// fileConfig mirrors the file layout. Pointer fields distinguish unset
// keys from zero values.
type fileConfig struct {
	Cart struct {
		Storage *string `toml:"storage"`
		DB      *string `toml:"db"`
		File    *string `toml:"file"`
		Key     *string `toml:"key"`
	} `toml:"cart"`

	Search struct {
		Index            *string `toml:"index"`
		Limit            *int    `toml:"limit"`
		PlaceholderImage *string `toml:"placeholder_image"`
	} `toml:"search"`

	Site struct {
		URL      *string `toml:"url"`
		BasePath *string `toml:"base_path"`
	} `toml:"site"`
}

// Load reads the configuration file at path over csc.DefaultConfig and
// applies environment overrides read through getenv. A missing file yields
// the defaults. Unknown keys are rejected.
func Load(path string, getenv func(string) string) (csc.Config, error) {
	cfg := csc.DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return csc.Config{}, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := decode(data, &cfg); err != nil {
			return csc.Config{}, csc.Errorf(csc.EINVALID, "%s: %v", path, err)
		}
	}

	if getenv != nil {
		if v := getenv(EnvDB); v != "" {
			cfg.DBPath = v
		}
		if v := getenv(EnvIndex); v != "" {
			cfg.Index = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return csc.Config{}, err
	}
	return cfg, nil
}

// ConfigPath returns the configuration file location.
func ConfigPath(getenv func(string) string) string {
	if getenv != nil {
		if v := getenv(EnvConfig); v != "" {
			return v
		}
	}
	return DefaultConfigPath
}

func decode(data []byte, cfg *csc.Config) error {
	var fc fileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return errors.New(strict.String())
		}
		return err
	}

	set(&cfg.Storage, fc.Cart.Storage)
	set(&cfg.DBPath, fc.Cart.DB)
	set(&cfg.CartFile, fc.Cart.File)
	set(&cfg.CartKey, fc.Cart.Key)
	set(&cfg.Index, fc.Search.Index)
	set(&cfg.SearchLimit, fc.Search.Limit)
	set(&cfg.PlaceholderImage, fc.Search.PlaceholderImage)
	set(&cfg.SiteURL, fc.Site.URL)
	set(&cfg.BasePath, fc.Site.BasePath)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
