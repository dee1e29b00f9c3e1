package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultTopK      = 8
	DefaultOutput    = "visualization.png"
	DefaultAPIURL    = "https://api.github.com/"
	DefaultLogLevel  = "info"
	LinguistOwner    = "github-linguist"
	LinguistRepo     = "linguist"
	LinguistFilePath = "lib/linguist/languages.yml"
)

// Config holds all settings for a single run.
type Config struct {
	User     string
	Token    string
	TopK     int
	Output   string
	APIURL   string
	LogLevel string
}

// Validate reports settings that make a run impossible.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.User) == "" {
		errs = append(errs, errors.New("GITHUB_USER is required"))
	}
	if c.TopK <= 0 {
		errs = append(errs, fmt.Errorf("top k must be positive, got %d", c.TopK))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output path must not be empty"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("LANGUAGE_RANKINGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("top_k", DefaultTopK)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("log_level", DefaultLogLevel)

	// The GitHub variables are unprefixed.
	_ = v.BindEnv("user", "GITHUB_USER")
	_ = v.BindEnv("token", "GITHUB_TOKEN")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	topK, err := parseTopK(v.GetString("top_k"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		User:     strings.TrimSpace(v.GetString("user")),
		Token:    strings.TrimSpace(v.GetString("token")),
		TopK:     topK,
		Output:   v.GetString("output"),
		APIURL:   v.GetString("api_url"),
		LogLevel: v.GetString("log_level"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseTopK(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid top k %q: %w", s, err)
	}
	return n, nil
}
