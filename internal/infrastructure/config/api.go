package config

import "time"

// APIConfig holds the marketplace API client configuration used by fetch
type APIConfig struct {
	PokemonTCG    ServiceConfig `mapstructure:"pokemontcg"`
	PriceCharting ServiceConfig `mapstructure:"pricecharting"`

	// Rate limiting settings, shared by both services
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1s"`

	// Retry configuration
	Retry RetryConfig `mapstructure:"retry"`

	// Consecutive failures before requests to a service are short-circuited
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// ServiceConfig identifies one upstream API
type ServiceConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0,max=10"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}

// CircuitBreakerConfig holds circuit breaker thresholds
type CircuitBreakerConfig struct {
	MaxFailures int           `mapstructure:"max_failures" validate:"min=1"`
	Cooldown    time.Duration `mapstructure:"cooldown" validate:"min=1s"`
}
