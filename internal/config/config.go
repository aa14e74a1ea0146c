package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"go-safety-poster/internal/endpoint"
)

type Config struct {
	Host               string        `env:"HOST" envDefault:"0.0.0.0"`
	Port               string        `env:"PORT" envDefault:"8080"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	GenerateTimeout    time.Duration `env:"GENERATE_TIMEOUT" envDefault:"5m"`
	MaxRequestBodySize int64         `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	MetricsEnabled     bool          `env:"METRICS_ENABLED" envDefault:"true"`

	// Generation endpoint selection, see endpoint.Rules.
	GenerateLocalURL string `env:"GENERATE_LOCAL_URL" envDefault:"http://localhost:8000/api/generate"`
	GeneratePath     string `env:"GENERATE_PATH" envDefault:"/api/generate"`
	GenerateBaseURL  string `env:"GENERATE_BASE_URL" envDefault:"http://localhost:8000"`

	// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the client IP is always the peer address.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// EndpointRules builds the endpoint selection rules from the config.
func (c *Config) EndpointRules() endpoint.Rules {
	return endpoint.Rules{
		LocalURL: c.GenerateLocalURL,
		Path:     c.GeneratePath,
		BaseURL:  c.GenerateBaseURL,
	}
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and URL shapes that env parsing cannot express.
func (c *Config) Validate() error {
	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.RequestTimeout <= 0 || c.GenerateTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0 (got request=%s, generate=%s)",
			c.RequestTimeout, c.GenerateTimeout)
	}
	if err := c.EndpointRules().Validate(); err != nil {
		return fmt.Errorf("invalid generate endpoint: %w", err)
	}
	for _, proxy := range c.TrustedProxies {
		if !isIPOrCIDR(proxy) {
			return fmt.Errorf("invalid TRUSTED_PROXIES entry: %q", proxy)
		}
	}
	return nil
}

func isIPOrCIDR(s string) bool {
	s = strings.TrimSpace(s)
	if net.ParseIP(s) != nil {
		return true
	}
	_, _, err := net.ParseCIDR(s)
	return err == nil
}
