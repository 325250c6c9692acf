// Package config loads default settings for lockedpip from a YAML file.
// Values given on the command line take precedence over the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ralt/lockedpip/internal/models"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a defaults file
type File struct {
	Lockfile       string   `yaml:"lockfile"`
	Categories     []string `yaml:"categories"`
	Platform       string   `yaml:"platform"`
	DetectPlatform *bool    `yaml:"detect-platform"`
	PipLocation    string   `yaml:"pip-location"`
	Signature      string   `yaml:"signature"`
	Keyring        string   `yaml:"keyring"`
}

// Load reads a defaults file. Unknown keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.LockError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("failed to read config file: %w", err),
		}
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &models.LockError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("failed to parse config file %s: %w", path, err),
		}
	}
	return &f, nil
}

// Changed reports whether the command line set a flag explicitly
type Changed func(flag string) bool

// Apply copies file values into cfg for every setting the command line left alone
func (f *File) Apply(cfg *models.InstallConfig, changed Changed) {
	if f.Lockfile != "" && !changed("lockfile") {
		cfg.Lockfile = f.Lockfile
	}
	if len(f.Categories) > 0 && !changed("category") {
		cfg.Categories = append([]string(nil), f.Categories...)
	}
	if f.Platform != "" && !changed("platform") {
		cfg.Platform = f.Platform
	}
	if f.DetectPlatform != nil && !changed("detect-platform") {
		cfg.DetectPlatform = *f.DetectPlatform
	}
	if f.PipLocation != "" && !changed("pip-location") {
		cfg.PipLocation = f.PipLocation
	}
	if f.Signature != "" && !changed("signature") {
		cfg.SignaturePath = f.Signature
	}
	if f.Keyring != "" && !changed("keyring") {
		cfg.KeyringPath = f.Keyring
	}
}
