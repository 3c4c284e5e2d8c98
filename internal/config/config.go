package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultOutputFile is the file name of the RDF/XML output.
	DefaultOutputFile = "palantir.owl"

	// DefaultFormat is the default serialization format.
	DefaultFormat = "rdfxml"

	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "ONTOLOGY_OWL"
)

// Config holds all configuration for ontology-owl.
type Config struct {
	Ontology OntologyConfig `mapstructure:"ontology"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	API      APIConfig      `mapstructure:"api"`
	Neo4j    Neo4jConfig    `mapstructure:"neo4j"`
}

// OntologyConfig holds conversion settings.
type OntologyConfig struct {
	BaseIRI    string `mapstructure:"base_iri"`
	InputDir   string `mapstructure:"input_dir"`
	OutputDir  string `mapstructure:"output_dir"`
	OutputFile string `mapstructure:"output_file"`
	Format     string `mapstructure:"format"`
	// ResourceDir is where icon paths are resolved. Defaults to the parent of InputDir.
	ResourceDir string `mapstructure:"resource_dir"`
	Strict      bool   `mapstructure:"strict"`
}

// ResourceRoot returns ResourceDir, or the parent of InputDir when unset.
func (c OntologyConfig) ResourceRoot() string {
	if c.ResourceDir != "" {
		return c.ResourceDir
	}
	return filepath.Dir(filepath.Clean(c.InputDir))
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	AuthToken  string `mapstructure:"auth_token"`
}

// Neo4jConfig holds graph database connection settings.
type Neo4jConfig struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// String returns a safe representation of Neo4jConfig with the password masked.
func (c Neo4jConfig) String() string {
	return fmt.Sprintf("Neo4jConfig{URI:%s, Username:%s, Password:%s, Database:%s}",
		c.URI, c.Username, maskSecret(c.Password), c.Database)
}

// maskSecret shows first 4 + last 4 chars, replacing the middle with asterisks.
func maskSecret(key string) string {
	const visible = 4
	if len(key) <= visible*2 {
		return "***"
	}
	return key[:visible] + "****" + key[len(key)-visible:]
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the default locations and environment variables.
func Load() (*Config, error) {
	return load("")
}

// LoadFile reads configuration from path instead of the default locations.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("ontology.base_iri", "http://lumify.io/palantir")
	v.SetDefault("ontology.input_dir", filepath.Join("export", "ontology"))
	v.SetDefault("ontology.output_dir", "owl")
	v.SetDefault("ontology.output_file", DefaultOutputFile)
	v.SetDefault("ontology.format", DefaultFormat)
	v.SetDefault("ontology.resource_dir", "")
	v.SetDefault("ontology.strict", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("api.listen_addr", ":8080")
	v.SetDefault("api.auth_token", "")

	v.SetDefault("neo4j.uri", "bolt://localhost:7687")
	v.SetDefault("neo4j.username", "neo4j")
	v.SetDefault("neo4j.password", "")
	v.SetDefault("neo4j.database", "neo4j")

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(homeDir(), ".ontology-owl"))
		v.AddConfigPath(".")
	}

	// Environment variables: ONTOLOGY_OWL_ONTOLOGY_BASE_IRI, ONTOLOGY_OWL_NEO4J_URI, ...
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("neo4j.password", EnvPrefix+"_NEO4J_PASSWORD", "NEO4J_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK; use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

var (
	validFormats   = []string{"rdfxml", "turtle"}
	validLevels    = []string{"debug", "info", "warn", "error"}
	validLogFormat = []string{"text", "json"}
)

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Ontology.BaseIRI) == "" {
		return fmt.Errorf("ontology.base_iri must not be empty")
	}
	if strings.ContainsAny(c.Ontology.BaseIRI, " \t\n<>\"") {
		return fmt.Errorf("ontology.base_iri %q must not contain whitespace, quotes or angle brackets", c.Ontology.BaseIRI)
	}
	if c.Ontology.OutputFile == "" {
		return fmt.Errorf("ontology.output_file must not be empty")
	}
	if filepath.Base(c.Ontology.OutputFile) != c.Ontology.OutputFile {
		return fmt.Errorf("ontology.output_file %q must be a file name, not a path", c.Ontology.OutputFile)
	}
	if !oneOf(c.Ontology.Format, validFormats) {
		return fmt.Errorf("ontology.format must be one of %v, got %q", validFormats, c.Ontology.Format)
	}
	if !oneOf(c.Logging.Level, validLevels) {
		return fmt.Errorf("logging.level must be one of %v, got %q", validLevels, c.Logging.Level)
	}
	if !oneOf(c.Logging.Format, validLogFormat) {
		return fmt.Errorf("logging.format must be one of %v, got %q", validLogFormat, c.Logging.Format)
	}
	if c.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr must not be empty")
	}
	if c.Neo4j.URI == "" {
		return fmt.Errorf("neo4j.uri must not be empty")
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
