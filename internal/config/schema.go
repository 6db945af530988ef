package config

import (
	"time"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Backend  BackendConfig  `yaml:"backend"`
	OAuth    OAuthConfig    `yaml:"oauth"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Sessions SessionConfig  `yaml:"sessions"`
	Redirect RedirectConfig `yaml:"redirect"`
	Redis    *RedisConfig   `yaml:"redis"`
}

type ServerConfig struct {
	Port  int                `yaml:"port"`
	Debug *ServerDebugConfig `yaml:"debug"`
}

var DefaultServerConfig = ServerConfig{
	Port: 8080,
}

type ServerDebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

var DefaultDebugConfig = ServerDebugConfig{
	Enabled: false,
	Host:    "localhost",
	Port:    5123,
}

// BackendConfig points at the platform REST API that owns all business
// rules. This service only proxies it.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

var DefaultBackendConfig = BackendConfig{
	Timeout: 10 * time.Second,
}

type OAuthConfig struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	IssuerURL    string   `yaml:"issuer_url"`
	RedirectURI  string   `yaml:"redirect_url"`
	Scopes       []string `yaml:"scopes"`
	// Where the browser is sent after auth when no redirect intent survived.
	DefaultLanding string `yaml:"default_landing"`
	// Where the guard hands off unverified users.
	VerificationURL string `yaml:"verification_url"`
	LoginURL        string `yaml:"login_url"`
}

var DefaultOAuthConfig = OAuthConfig{
	Scopes:          []string{"openid", "profile", "email"},
	DefaultLanding:  "/",
	VerificationURL: "/verify-school-email",
	LoginURL:        "/login",
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var DefaultLogConfig = LogConfig{
	Level:  "info",
	Format: "text",
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	ExposedHeaders   []string `yaml:"exposed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAgeSeconds    int      `yaml:"max_age_seconds"`
}

var DefaultCORSConfig = CORSConfig{
	AllowedOrigins: []string{"http://localhost:5173"},
	AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	AllowedHeaders: []string{"*"},
	MaxAgeSeconds:  300,
}

type SessionConfig struct {
	Store        string        `yaml:"store"`
	FixedTimeout time.Duration `yaml:"fixed_timeout"`
	Name         string        `yaml:"name"`
	Secure       bool          `yaml:"secure"`
}

var DefaultSessionConfig = SessionConfig{
	Store:        "memory",
	FixedTimeout: 24 * time.Hour,
	Name:         "session_id",
	Secure:       true,
}

// RedirectConfig controls the redirect-intent slot persisted across the
// OAuth/verification round-trip.
type RedirectConfig struct {
	Store  string        `yaml:"store"`
	Expiry time.Duration `yaml:"expiry"`
}

var DefaultRedirectConfig = RedirectConfig{
	Store:  "memory",
	Expiry: 10 * time.Minute,
}

type RedisConfig struct {
	Address      string `yaml:"address"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	SessionIndex int    `yaml:"session_index"`
	IntentIndex  int    `yaml:"intent_index"`
}

var DefaultRedisConfig = RedisConfig{
	SessionIndex: 0,
	IntentIndex:  1,
}
