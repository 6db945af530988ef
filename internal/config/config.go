package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config file path is required (use -config or -c)")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Config{
		Server:   DefaultServerConfig,
		Backend:  DefaultBackendConfig,
		OAuth:    DefaultOAuthConfig,
		Log:      DefaultLogConfig,
		CORS:     DefaultCORSConfig,
		Sessions: DefaultSessionConfig,
		Redirect: DefaultRedirectConfig,
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvironmentOverrides(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

var (
	EnvBackendBaseURL    = "EXCHANGE_BACKEND_BASE_URL"
	EnvOAuthClientID     = "EXCHANGE_OAUTH_CLIENT_ID"
	EnvOAuthClientSecret = "EXCHANGE_OAUTH_CLIENT_SECRET"
	EnvOAuthIssuerURL    = "EXCHANGE_OAUTH_ISSUER_URL"
	EnvOAuthRedirectURL  = "EXCHANGE_OAUTH_REDIRECT_URL"
	EnvRedisAddress      = "EXCHANGE_REDIS_ADDRESS"
	EnvRedisUsername     = "EXCHANGE_REDIS_USERNAME"
	EnvRedisPassword     = "EXCHANGE_REDIS_PASSWORD"
)

func applyEnvironmentOverrides(config *Config) {
	if baseURL := os.Getenv(EnvBackendBaseURL); baseURL != "" {
		config.Backend.BaseURL = baseURL
	}

	if clientID := os.Getenv(EnvOAuthClientID); clientID != "" {
		config.OAuth.ClientID = clientID
	}

	if clientSecret := os.Getenv(EnvOAuthClientSecret); clientSecret != "" {
		config.OAuth.ClientSecret = clientSecret
	}

	if issuerURL := os.Getenv(EnvOAuthIssuerURL); issuerURL != "" {
		config.OAuth.IssuerURL = issuerURL
	}

	if redirectURL := os.Getenv(EnvOAuthRedirectURL); redirectURL != "" {
		config.OAuth.RedirectURI = redirectURL
	}

	if address := os.Getenv(EnvRedisAddress); address != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Address = address
	}

	if username := os.Getenv(EnvRedisUsername); username != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Username = username
	}

	if password := os.Getenv(EnvRedisPassword); password != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Password = password
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Backend.BaseURL == "" {
		return fmt.Errorf("backend base_url is required")
	}

	if _, err := url.Parse(config.Backend.BaseURL); err != nil {
		return fmt.Errorf("invalid backend base_url: %w", err)
	}

	if config.Backend.Timeout <= 0 {
		config.Backend.Timeout = DefaultBackendConfig.Timeout
	}

	if config.Server.Debug != nil && config.Server.Debug.Enabled {
		if config.Server.Debug.Host == "" {
			config.Server.Debug.Host = DefaultDebugConfig.Host
		}
		if config.Server.Debug.Port == 0 {
			config.Server.Debug.Port = DefaultDebugConfig.Port
		}
	}

	// Both indexes zero means they were left unset; sessions and intents
	// then go to separate databases.
	if config.Redis != nil && config.Redis.SessionIndex == 0 && config.Redis.IntentIndex == 0 {
		config.Redis.SessionIndex = DefaultRedisConfig.SessionIndex
		config.Redis.IntentIndex = DefaultRedisConfig.IntentIndex
	}

	switch config.Sessions.Store {
	case "memory":
	case "redis":
		if config.Redis == nil || config.Redis.Address == "" {
			return fmt.Errorf("sessions store is redis but no redis address is configured")
		}
	default:
		return fmt.Errorf("unsupported session store: %s", config.Sessions.Store)
	}

	switch config.Redirect.Store {
	case "memory":
	case "redis":
		if config.Redis == nil || config.Redis.Address == "" {
			return fmt.Errorf("redirect store is redis but no redis address is configured")
		}
	default:
		return fmt.Errorf("unsupported redirect store: %s", config.Redirect.Store)
	}

	if config.Redirect.Expiry <= 0 {
		config.Redirect.Expiry = DefaultRedirectConfig.Expiry
	}

	if config.OAuth.IssuerURL != "" {
		if config.OAuth.ClientID == "" {
			return fmt.Errorf("oauth client_id is required when an issuer is configured")
		}
		if config.OAuth.RedirectURI == "" {
			return fmt.Errorf("oauth redirect_url is required when an issuer is configured")
		}
	}

	if config.Sessions.Name == "" {
		config.Sessions.Name = DefaultSessionConfig.Name
	}

	return nil
}
