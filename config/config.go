package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type GatewayConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PricingConfig carries the knobs that appeared as conflicting literals in
// older clients: the service fee differs per deployment (5% on the paid
// variant, 0% on the free-tickets variant) and the cap was observed as 10.
type PricingConfig struct {
	ServiceFeePercent  int `mapstructure:"service_fee_percent"`
	MaxTicketsPerOrder int `mapstructure:"max_tickets_per_order"`
}

type PaymentConfig struct {
	SessionTTL           time.Duration `mapstructure:"session_ttl"`
	PollInterval         time.Duration `mapstructure:"poll_interval"`
	PollFailureThreshold int           `mapstructure:"poll_failure_threshold"`
}

type TracingConfig struct {
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	Enabled        bool   `mapstructure:"enabled"`
}

// Load reads config.yaml (optional) and CHECKOUT_* environment overrides.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("gateway.base_url", "http://localhost:8888")
	v.SetDefault("gateway.timeout", 10*time.Second)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("pricing.service_fee_percent", 5)
	v.SetDefault("pricing.max_tickets_per_order", 10)
	v.SetDefault("payment.session_ttl", 300*time.Second)
	v.SetDefault("payment.poll_interval", 5*time.Second)
	v.SetDefault("payment.poll_failure_threshold", 5)
	v.SetDefault("tracing.enabled", false)

	v.SetEnvPrefix("CHECKOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("could not read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Pricing.MaxTicketsPerOrder <= 0 {
		return fmt.Errorf("pricing.max_tickets_per_order must be positive")
	}
	if c.Pricing.ServiceFeePercent < 0 || c.Pricing.ServiceFeePercent > 100 {
		return fmt.Errorf("pricing.service_fee_percent must be in [0, 100]")
	}
	if c.Payment.PollInterval <= 0 {
		return fmt.Errorf("payment.poll_interval must be positive")
	}
	if c.Payment.PollFailureThreshold <= 0 {
		return fmt.Errorf("payment.poll_failure_threshold must be positive")
	}
	return nil
}
