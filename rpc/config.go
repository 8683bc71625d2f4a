package rpc

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// NetworkMode represents the Arch network the node is part of, which
// determines the Bitcoin address format returned by the node.
type NetworkMode int

const (
	UnknownNetwork NetworkMode = iota
	Mainnet
	Testnet
	Regtest
)

func (m NetworkMode) String() string {
	switch m {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	case Regtest:
		return "regtest"
	}
	return "unknown"
}

// Is compares the mode to a network name.
func (m NetworkMode) Is(network string) bool {
	return m.String() == strings.ToLower(network)
}

// ParseNetworkMode takes a network name string and returns the
// corresponding NetworkMode type.
func ParseNetworkMode(network string) NetworkMode {
	switch strings.ToLower(network) {
	case "mainnet":
		return Mainnet
	case "testnet":
		return Testnet
	case "regtest":
		return Regtest
	}
	return UnknownNetwork
}

// SetValue implements cleanenv.Setter so the mode can be read from the
// environment.
func (m *NetworkMode) SetValue(s string) error {
	mode := ParseNetworkMode(s)
	if mode == UnknownNetwork {
		return fmt.Errorf("unknown network mode: %q", s)
	}
	*m = mode
	return nil
}

// Config describes a connection to an Arch node RPC endpoint. A Config is
// copied into the client on construction and is not consulted again, so
// mutating it after NewClient has no effect.
type Config struct {
	// Endpoint is the HTTP (or WebSocket) URL of the node's RPC interface.
	Endpoint string `env:"ARCH_RPC_ENDPOINT" env-default:"http://localhost:9002" validate:"required,url"`
	// Network selects the Arch network the node is expected to serve.
	Network NetworkMode `env:"ARCH_RPC_NETWORK" env-default:"regtest"`
	// Timeout bounds each HTTP request, enforced by the transport.
	Timeout time.Duration `env:"ARCH_RPC_TIMEOUT" env-default:"30s" validate:"gt=0"`
	// MaxRetries is the total number of attempts made for transport-level
	// failures. Must be at least 1.
	MaxRetries int `env:"ARCH_RPC_MAX_RETRIES" env-default:"3" validate:"gte=1"`
	// RetryDelay is the base delay between attempts; attempt n waits
	// RetryDelay*n before retrying.
	RetryDelay time.Duration `env:"ARCH_RPC_RETRY_DELAY" env-default:"1s" validate:"gte=0"`
	// AuthToken, when set, is sent as an Authorization bearer token.
	AuthToken string `env:"ARCH_RPC_AUTH_TOKEN"`
	// Headers are extra headers merged into every request. They override
	// the client's default headers on conflict.
	Headers map[string]string
}

// DefaultConfig returns a Config with the same defaults as ConfigFromEnv,
// pointed at a local regtest node.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "http://localhost:9002",
		Network:    Regtest,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Second,
	}
}

// ConfigFromEnv builds a Config from ARCH_RPC_* environment variables,
// falling back to the defaults for unset values.
func ConfigFromEnv() (Config, error) {
	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

var validate = validator.New()

// Validate checks the config invariants: a well-formed endpoint, a known
// network mode, a positive timeout, and at least one attempt.
func (c Config) Validate() error {
	if c.Network == UnknownNetwork {
		return fmt.Errorf("config: unknown network mode")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %s", err)
	}
	return nil
}
