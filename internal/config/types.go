package config

import (
	"github.com/entra-tools/ip-block-lists/internal/providers"
	"github.com/entra-tools/ip-block-lists/internal/utils"
)

const (
	DefaultProvidersDir          = "lists/providers"
	DefaultChunksDir             = "lists/chunks"
	DefaultHTTPTimeoutSeconds    = 30
	DefaultUserAgent             = "m365-entra-ip-block-lists/1.0"
	DefaultChunkSize             = 2000
	DefaultChunkFilenameTemplate = "{prefix}-part-{index}.txt"
)

// Config is the root of the TOML configuration file.
type Config struct {
	General *GeneralConfig `toml:"general" json:"general"`

	// Providers adds to or overrides the built-in provider table.
	Providers []*ProviderConfig `toml:"provider,omitempty" json:"provider,omitempty"`
}

type GeneralConfig struct {
	// ProvidersDir is where canonical provider list files are written.
	ProvidersDir string `toml:"providers_dir" json:"providers_dir" validate:"required"`

	// ChunksDir is where chunk output subdirectories are created.
	ChunksDir string `toml:"chunks_dir" json:"chunks_dir" validate:"required"`

	// HTTPTimeoutSeconds bounds every provider fetch request.
	HTTPTimeoutSeconds int `toml:"http_timeout_seconds" json:"http_timeout_seconds" validate:"gte=1"`

	// UserAgent is sent with every provider fetch request.
	UserAgent string `toml:"user_agent" json:"user_agent" validate:"required"`

	// ChunkSize is the default maximum number of entries per chunk.
	ChunkSize int `toml:"chunk_size" json:"chunk_size" validate:"gte=1"`

	// ChunkFilenameTemplate names chunk files; placeholders: {prefix}, {index}.
	ChunkFilenameTemplate string `toml:"chunk_filename_template" json:"chunk_filename_template" validate:"required"`
}

type ProviderConfig struct {
	Name string `toml:"name" json:"name" validate:"required,provider_name"`

	URL string `toml:"url" json:"url" validate:"required,url"`

	// Parser must be one of the registered parser identifiers.
	Parser string `toml:"parser" json:"parser" validate:"required,parser_name"`

	// Output file, relative to providers_dir unless absolute.
	// Defaults to "<name>.txt".
	Output string `toml:"output,omitempty" json:"output,omitempty"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		General: &GeneralConfig{
			ProvidersDir:          DefaultProvidersDir,
			ChunksDir:             DefaultChunksDir,
			HTTPTimeoutSeconds:    DefaultHTTPTimeoutSeconds,
			UserAgent:             DefaultUserAgent,
			ChunkSize:             DefaultChunkSize,
			ChunkFilenameTemplate: DefaultChunkFilenameTemplate,
		},
	}
}

// ProviderTable returns the effective provider table: the built-in providers
// with config file entries merged over them by name.
func (c *Config) ProviderTable() map[string]providers.Provider {
	table := providers.Builtin()
	for _, p := range c.Providers {
		output := p.Output
		if output == "" {
			output = p.Name + ".txt"
		}
		table[p.Name] = providers.Provider{
			Name:   p.Name,
			URL:    p.URL,
			Parser: p.Parser,
			Output: output,
		}
	}
	return table
}

// ProviderOutputPath resolves a provider's canonical list file path.
func (c *Config) ProviderOutputPath(p providers.Provider) string {
	return utils.GetAbsolutePath(p.Output, c.General.ProvidersDir)
}
