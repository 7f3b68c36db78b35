package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // display.timezone must resolve on hosts without zoneinfo

	"github.com/spf13/viper"
)

const envPrefix = "CRYOSURE"

// Config is the process configuration, read from configs/config.yml and
// overridden by CRYOSURE_* environment variables (db.path -> CRYOSURE_DB_PATH).
type Config struct {
	Port string

	DBPath string

	LogLevel  string
	LogFormat string

	ReadURL  string
	WriteURL string

	PollInterval time.Duration
	HTTPTimeout  time.Duration
	Location     *time.Location

	SubmitPerSec float64
	SubmitBurst  int
	CacheTTL     time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "cryosure.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("endpoints.read_url", "")
	v.SetDefault("endpoints.write_url", "")
	v.SetDefault("poll.interval", "10s")
	v.SetDefault("http.timeout", "15s")
	v.SetDefault("display.timezone", "Asia/Kolkata")
	v.SetDefault("ratelimit.submit_per_sec", 1.0)
	v.SetDefault("ratelimit.burst", 3)
	v.SetDefault("cache.ttl", "5m")
}

// Load reads config.yml from the given directories (first match wins). A
// missing file is not an error; defaults and environment still apply.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(paths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:         strings.TrimPrefix(v.GetString("port"), ":"),
		DBPath:       v.GetString("db.path"),
		LogLevel:     v.GetString("log.level"),
		LogFormat:    v.GetString("log.format"),
		ReadURL:      strings.TrimSpace(v.GetString("endpoints.read_url")),
		WriteURL:     strings.TrimSpace(v.GetString("endpoints.write_url")),
		SubmitPerSec: v.GetFloat64("ratelimit.submit_per_sec"),
		SubmitBurst:  v.GetInt("ratelimit.burst"),
	}

	var err error
	if cfg.PollInterval, err = positiveDuration(v, "poll.interval"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = positiveDuration(v, "http.timeout"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = positiveDuration(v, "cache.ttl"); err != nil {
		return nil, err
	}

	tz := v.GetString("display.timezone")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("display.timezone %q: %w", tz, err)
	}
	return cfg, nil
}

func positiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}
