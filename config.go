package lantern

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/LanternTeam/Lantern/lanternjson"
)

const (
	// DefaultMessageLimit is the bounded message history window per channel.
	DefaultMessageLimit = 10

	// DefaultHistoryCooldown is how long a channel keeps unbounded history
	// after a bulk backfill before the sweeper demotes it.
	DefaultHistoryCooldown = 5 * time.Minute
)

type Configuration struct {
	// CacheUsers controls whether users seen in member payloads are kept in
	// the user registry.
	CacheUsers bool `json:"cache_users" yaml:"cache_users"`

	// CacheMembers controls whether guild profiles are kept per user.
	CacheMembers bool `json:"cache_members" yaml:"cache_members"`

	// MessageLimit is the bounded message history window per text channel.
	// Zero disables message history entirely.
	MessageLimit int `json:"message_limit" yaml:"message_limit"`

	// HistoryCooldownSeconds is how long unbounded history lasts before the
	// sweeper restores the bounded window.
	HistoryCooldownSeconds int `json:"history_cooldown_seconds" yaml:"history_cooldown_seconds"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		CacheUsers:             true,
		CacheMembers:           true,
		MessageLimit:           DefaultMessageLimit,
		HistoryCooldownSeconds: int(DefaultHistoryCooldown / time.Second),
	}
}

func (c Configuration) historyCooldown() time.Duration {
	if c.HistoryCooldownSeconds <= 0 {
		return DefaultHistoryCooldown
	}

	return time.Duration(c.HistoryCooldownSeconds) * time.Second
}

type ConfigProvider interface {
	GetConfig(ctx context.Context) (*Configuration, error)
	SaveConfig(ctx context.Context, config *Configuration) error
}

// ConfigProviderFromPath is a basic config provider that reads and writes a
// JSON or YAML file, selected by extension.

type ConfigProviderFromPath struct {
	path string
}

func NewConfigProviderFromPath(path string) ConfigProviderFromPath {
	return ConfigProviderFromPath{path}
}

func (c ConfigProviderFromPath) isYAML() bool {
	ext := filepath.Ext(c.path)

	return ext == ".yaml" || ext == ".yml"
}

func (c ConfigProviderFromPath) GetConfig(_ context.Context) (*Configuration, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfiguration()

	if c.isYAML() {
		err = yaml.Unmarshal(data, &config)
	} else {
		err = lanternjson.Unmarshal(data, &config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	return &config, nil
}

func (c ConfigProviderFromPath) SaveConfig(_ context.Context, config *Configuration) error {
	var (
		data []byte
		err  error
	)

	if c.isYAML() {
		data, err = yaml.Marshal(config)
	} else {
		data, err = lanternjson.Marshal(config)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(c.path, data, 0o600)
}
