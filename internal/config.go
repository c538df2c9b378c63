package internal

import (
	"errors"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/merrow/gtdvault/internal/models"
)

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Vault VaultConfig       `yaml:"vault"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return c.Vault.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	Name     string     `yaml:"name"`
	LogLevel slog.Level `yaml:"log_level"`
}

// VaultConfig locates the default vault and names the GTD folder used
// inside every vault. Tools and resources accept vault paths per
// request; Path is the vault the CLI subcommands work on.
type VaultConfig struct {
	Path   string `yaml:"path"`
	Folder string `yaml:"folder"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Folder, validation.By(plainFolderName)),
	)
}

// plainFolderName rejects GTD folder names that would escape the vault.
func plainFolderName(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return errors.New("must be a plain folder name")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			Name:     "gtdvault",
			LogLevel: slog.LevelInfo,
		},
		Vault: VaultConfig{
			Path:   "./vault",
			Folder: models.DefaultGTDFolder,
		},
	}
}
