package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable consulted when no settings file is
// given explicitly.
const EnvPath = "GORCD_SETTINGS"

// ErrUnsupportedFormat is returned for settings files that are neither TOML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// LoadFromFile reads settings from a TOML or JSON file. Fields absent from the
// file keep their Default values.
func LoadFromFile(path string) (SteelLayoutSettings, error) {
	s := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &s); err != nil {
			return SteelLayoutSettings{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return SteelLayoutSettings{}, err
		}
		if err := json.Unmarshal(data, &s); err != nil {
			return SteelLayoutSettings{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	default:
		return SteelLayoutSettings{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	s = s.WithDefaults()
	if err := s.Validate(); err != nil {
		return SteelLayoutSettings{}, err
	}
	return s, nil
}

// Resolve picks the settings file from path, then from $GORCD_SETTINGS. It
// returns ok=false when neither names a file, so the caller can keep the
// settings embedded in the development.
func Resolve(path string) (s SteelLayoutSettings, ok bool, err error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return SteelLayoutSettings{}, false, nil
	}
	s, err = LoadFromFile(path)
	if err != nil {
		return SteelLayoutSettings{}, false, err
	}
	return s, true, nil
}
