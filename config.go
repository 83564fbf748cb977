package queuectl

import (
	"context"
	"strconv"
	"strings"
)

// Recognized config keys (§3, "Entity: Config"). Other keys are permitted
// but ignored by the core.
const (
	ConfigKeyMaxRetries   = "max_retries"
	ConfigKeyBackoffBase  = "backoff_base"
	ConfigKeyPollInterval = "poll_interval"
)

// Default values applied when a key is missing or malformed.
const (
	DefaultMaxRetries   = 3
	DefaultBackoffBase  = 2
	DefaultPollInterval = 1
)

// NormalizeConfigKey maps a CLI-facing hyphenated key (e.g. "max-retries")
// to the underscored form used in storage ("max_retries"), per §4.5 and the
// `config get`/`config set` CLI surface (§6).
func NormalizeConfigKey(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

// DenormalizeConfigKey maps a storage-form key (e.g. "max_retries") back to
// the hyphenated CLI display form ("max-retries"), the inverse of
// NormalizeConfigKey. Used when listing config keys back to the caller.
func DenormalizeConfigKey(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Config is a typed accessor over a ConfigStore. Reads are uncached: every
// call re-reads the backing store, so that changes made via `config set`
// take effect on the next read without requiring a process restart — except
// for poll_interval, which a running Worker has already captured into its
// loop and only picks up on the next supervisor restart (§9 Design Notes).
type Config struct {
	store ConfigStore
}

// NewConfig wraps a ConfigStore with typed getters.
func NewConfig(store ConfigStore) *Config {
	return &Config{store: store}
}

func (c *Config) getInt(ctx context.Context, key string, def int) int {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

// MaxRetries returns the configured default max_retries, or
// DefaultMaxRetries if unset or malformed.
func (c *Config) MaxRetries(ctx context.Context) int {
	return c.getInt(ctx, ConfigKeyMaxRetries, DefaultMaxRetries)
}

// BackoffBase returns the configured backoff_base, or DefaultBackoffBase if
// unset or malformed.
func (c *Config) BackoffBase(ctx context.Context) int {
	return c.getInt(ctx, ConfigKeyBackoffBase, DefaultBackoffBase)
}

// PollInterval returns the configured poll_interval in seconds, or
// DefaultPollInterval if unset or malformed.
func (c *Config) PollInterval(ctx context.Context) int {
	return c.getInt(ctx, ConfigKeyPollInterval, DefaultPollInterval)
}

// Get returns the raw stored value for a CLI-facing key (hyphen or
// underscore form accepted), and whether it was set.
func (c *Config) Get(ctx context.Context, key string) (string, bool, error) {
	return c.store.Get(ctx, NormalizeConfigKey(key))
}

// Set stores value under a CLI-facing key (hyphen or underscore form
// accepted), normalizing to the underscored storage form.
func (c *Config) Set(ctx context.Context, key, value string) error {
	return c.store.Set(ctx, NormalizeConfigKey(key), value)
}

// SeedDefaults writes the three recognized keys with their documented
// defaults if they are not already present. Called by `init-db`.
func SeedDefaults(ctx context.Context, store ConfigStore) error {
	defaults := map[string]string{
		ConfigKeyMaxRetries:   strconv.Itoa(DefaultMaxRetries),
		ConfigKeyBackoffBase:  strconv.Itoa(DefaultBackoffBase),
		ConfigKeyPollInterval: strconv.Itoa(DefaultPollInterval),
	}
	for key, value := range defaults {
		_, ok, err := store.Get(ctx, key)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := store.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}
