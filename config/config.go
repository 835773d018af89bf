package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	LLM struct {
		Model             string        `mapstructure:"model"`
		GenerationTimeout time.Duration `mapstructure:"generationTimeout"`
	} `mapstructure:"llm"`
	Search struct {
		MinInterval    time.Duration `mapstructure:"minInterval"`
		MaxRetries     int           `mapstructure:"maxRetries"`
		RetryBackoff   time.Duration `mapstructure:"retryBackoff"`
		MaxResults     int           `mapstructure:"maxResults"`
		PageFetchLimit int           `mapstructure:"pageFetchLimit"`
		Timeout        time.Duration `mapstructure:"timeout"`
	} `mapstructure:"search"`
	Session struct {
		IdleTTL         time.Duration `mapstructure:"idleTTL"`
		CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
	} `mapstructure:"session"`
	Upload struct {
		MaxSizeMB int64 `mapstructure:"maxSizeMB"`
	} `mapstructure:"upload"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}
