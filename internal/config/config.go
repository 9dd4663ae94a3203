package config

import (
	"os"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Endpoint EndpointConfig `mapstructure:"endpoint"`
	Session  SessionConfig  `mapstructure:"session"`
	Viewer   ViewerConfig   `mapstructure:"viewer"`
	Log      LogConfig      `mapstructure:"log"`
}

// EndpointConfig holds the chat endpoint configuration
type EndpointConfig struct {
	URL string `mapstructure:"url"`
	// ResponseNesting selects where the result payload lives in the response
	// body: "data" (data.final_result.output), "bare" (final_result.output)
	// or "auto" to probe both. Which one the server speaks depends on its
	// deployed version.
	ResponseNesting string `mapstructure:"response_nesting"`
	// TimeoutSeconds bounds the whole request. 0 means no client-side
	// timeout; the remote endpoint's own limits govern.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// SessionConfig holds conversation session behavior toggles
type SessionConfig struct {
	// AnnouncePageQueries controls whether synthesized page-navigation
	// queries ("Show me page N") produce a visible user bubble and a
	// history turn. The query is sent to the endpoint either way.
	AnnouncePageQueries bool `mapstructure:"announce_page_queries"`
}

// ViewerConfig holds the embedded document viewer configuration
type ViewerConfig struct {
	// DocumentPathPrefix marks citation links the viewer intercepts;
	// all other links are left as ordinary hyperlinks.
	DocumentPathPrefix string `mapstructure:"document_path_prefix"`
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

const (
	DefaultEndpointURL        = "http://localhost:7071/api/chat"
	DefaultDocumentPathPrefix = "/api/documents/"
)

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Endpoint: EndpointConfig{URL: DefaultEndpointURL, ResponseNesting: "auto"},
		Viewer:   ViewerConfig{DocumentPathPrefix: DefaultDocumentPathPrefix},
		Log:      LogConfig{Level: "info"},
	}
}

// Load loads the configuration from config.yaml in the working directory,
// or from the file named by the CONFIG_PATH environment variable. A missing
// config file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetDefault("endpoint.url", DefaultEndpointURL)
	v.SetDefault("endpoint.response_nesting", "auto")
	v.SetDefault("endpoint.timeout_seconds", 0)
	v.SetDefault("session.announce_page_queries", false)
	v.SetDefault("viewer.document_path_prefix", DefaultDocumentPathPrefix)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
