package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/breedapi"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/breed"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/imagesearch"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/config"
)

// FailMode decides what a whole-catalog failure looks like to callers.
type FailMode string

const (
	// FailOpen degrades a failed catalog fetch to an empty list.
	FailOpen FailMode = "open"
	// FailClosed surfaces a failed catalog fetch as an error.
	FailClosed FailMode = "closed"
)

// BreedAPIConfig holds breed source settings.
type BreedAPIConfig struct {
	BaseURL     string
	Shape       breed.SourceShape
	PageSize    int
	PageDelay   time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
	HTTPTimeout time.Duration
	FailMode    FailMode
}

// ImageSearchConfig holds Google Custom Search credentials.
type ImageSearchConfig struct {
	APIKey         string
	SearchEngineID string
	Endpoint       string
}

// ServiceConfig holds all configuration for the breed catalog service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	DBConfig    config.DatabaseConfig
	JWTConfig   config.JWTConfig
	KafkaConfig config.KafkaConfig
	BreedAPI    BreedAPIConfig
	ImageSearch ImageSearchConfig
}

// Load reads configuration from environment variables prefixed with BREEDS_.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("BREEDS")
	if err != nil {
		return nil, err
	}
	setDefaults(v)

	breedAPI, err := loadBreedAPIConfig(v)
	if err != nil {
		return nil, err
	}

	return &ServiceConfig{
		Port:        config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:      config.GetAppEnv(v),
		DBConfig:    config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:   config.LoadJWTConfig(v),
		KafkaConfig: config.LoadKafkaConfig(v),
		BreedAPI:    breedAPI,
		ImageSearch: ImageSearchConfig{
			APIKey:         v.GetString("GOOGLE_SEARCH_API_KEY"),
			SearchEngineID: v.GetString("GOOGLE_SEARCH_ENGINE_ID"),
			Endpoint:       v.GetString("IMAGE_SEARCH_URL"),
		},
	}, nil
}

// LoadBreedAPI reads only the breed source settings. Used by the CLI.
func LoadBreedAPI() (BreedAPIConfig, error) {
	v, err := config.Load("BREEDS")
	if err != nil {
		return BreedAPIConfig{}, err
	}
	setDefaults(v)
	return loadBreedAPIConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("DB_NAME", "breed_catalog")
	v.SetDefault("BREED_API_URL", breedapi.DefaultBaseURL)
	v.SetDefault("BREED_SOURCE_SHAPE", string(breed.ShapeNested))
	v.SetDefault("BREED_PAGE_SIZE", breedapi.DefaultPageSize)
	v.SetDefault("BREED_PAGE_DELAY", breedapi.DefaultPageDelay)
	v.SetDefault("BREED_MAX_RETRIES", breedapi.DefaultMaxRetries)
	v.SetDefault("BREED_RETRY_DELAY", breedapi.DefaultRetryDelay)
	v.SetDefault("BREED_HTTP_TIMEOUT", breedapi.DefaultTimeout)
	v.SetDefault("BREED_FAIL_MODE", string(FailOpen))
	v.SetDefault("IMAGE_SEARCH_URL", imagesearch.DefaultEndpoint)
}

func loadBreedAPIConfig(v *viper.Viper) (BreedAPIConfig, error) {
	shape, err := breed.ParseSourceShape(v.GetString("BREED_SOURCE_SHAPE"))
	if err != nil {
		return BreedAPIConfig{}, err
	}
	mode, err := ParseFailMode(v.GetString("BREED_FAIL_MODE"))
	if err != nil {
		return BreedAPIConfig{}, err
	}

	cfg := BreedAPIConfig{
		BaseURL:     v.GetString("BREED_API_URL"),
		Shape:       shape,
		PageSize:    v.GetInt("BREED_PAGE_SIZE"),
		PageDelay:   v.GetDuration("BREED_PAGE_DELAY"),
		MaxRetries:  v.GetInt("BREED_MAX_RETRIES"),
		RetryDelay:  v.GetDuration("BREED_RETRY_DELAY"),
		HTTPTimeout: v.GetDuration("BREED_HTTP_TIMEOUT"),
		FailMode:    mode,
	}
	if cfg.PageSize <= 0 {
		return BreedAPIConfig{}, fmt.Errorf("BREED_PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	if cfg.MaxRetries < 0 {
		return BreedAPIConfig{}, fmt.Errorf("BREED_MAX_RETRIES must not be negative, got %d", cfg.MaxRetries)
	}
	return cfg, nil
}

// ParseFailMode parses "open" or "closed" (case-insensitive).
func ParseFailMode(s string) (FailMode, error) {
	switch m := FailMode(strings.ToLower(strings.TrimSpace(s))); m {
	case FailOpen, FailClosed:
		return m, nil
	default:
		return "", fmt.Errorf("unknown fail mode %q (want open or closed)", s)
	}
}

// AcquirerOptions maps the settings onto breedapi.Options.
func (c BreedAPIConfig) AcquirerOptions() breedapi.Options {
	return breedapi.Options{
		Shape:     c.Shape,
		PageSize:  c.PageSize,
		PageDelay: c.PageDelay,
		Retry: &breedapi.RetryPolicy{
			MaxRetries: c.MaxRetries,
			Delay:      c.RetryDelay,
		},
	}
}

// ClientConfig maps the settings onto breedapi.ClientConfig.
func (c BreedAPIConfig) ClientConfig() breedapi.ClientConfig {
	return breedapi.ClientConfig{BaseURL: c.BaseURL, Timeout: c.HTTPTimeout}
}

// ClientConfig maps the settings onto imagesearch.Config.
func (c ImageSearchConfig) ClientConfig() imagesearch.Config {
	return imagesearch.Config{
		APIKey:         c.APIKey,
		SearchEngineID: c.SearchEngineID,
		Endpoint:       c.Endpoint,
	}
}
