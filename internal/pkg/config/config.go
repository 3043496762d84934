package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr  string       `mapstructure:"listen_addr"`
	LogLevel    string       `mapstructure:"log_level"`
	PostgresDSN string       `mapstructure:"postgres_dsn"`
	Ingest      IngestConfig `mapstructure:"ingest"`
	Feeds       []FeedConfig `mapstructure:"feeds"`
}

type IngestConfig struct {
	// BatchSize bounds how many deals a single generated SQL statement may
	// carry. Matches the size of one publication scrape by default.
	BatchSize int `mapstructure:"batch_size"`
	// StoreSlugs maps feed store names onto the slugs of pre-existing rows
	// in the stores table.
	StoreSlugs map[string]string `mapstructure:"store_slugs"`
}

type FeedConfig struct {
	StoreName     string `mapstructure:"store_name"`
	PublicationID string `mapstructure:"publication_id"`
	PageCount     int    `mapstructure:"page_count"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("ingest")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("ingest.batch_size", 50)
	v.SetDefault("ingest.store_slugs", DefaultStoreSlugs())

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// DefaultStoreSlugs covers the three publication feeds the scraper targets.
func DefaultStoreSlugs() map[string]string {
	return map[string]string{
		"Netto":     "netto",
		"Rema":      "rema",
		"Rema 1000": "rema",
		"Meny":      "meny",
	}
}
