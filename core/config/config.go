package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/leofalp/webreader/providers/tool/webfetch"
	"github.com/leofalp/webreader/providers/tool/websearch"
)

// Config is the complete configuration of the webreader tools.
type Config struct {
	Fetch  webfetch.Config  `yaml:"fetch"`
	Search websearch.Config `yaml:"search"`
	Log    LogConfig        `yaml:"log"`
}

// LogConfig selects the slogobs output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultEnvFile is loaded when Load is given no env files.
const DefaultEnvFile = ".env"

// Load reads the YAML file at path (skipped when path is empty), then the
// env files (DefaultEnvFile when none are given; missing ones are ignored),
// then applies environment overrides and defaults.
func Load(path string, envFiles ...string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.Fetch = cfg.Fetch.WithDefaults()
	cfg.Search = cfg.Search.WithDefaults()
	return cfg, nil
}

// applyEnv overrides cfg with the environment variables that are set.
func applyEnv(cfg *Config) error {
	var errs []error

	setString(&cfg.Fetch.UserAgent, "WEBREADER_USER_AGENT")
	setString(&cfg.Fetch.Proxy.BaseURL, "WEBREADER_PROXY_BASE_URL")
	if v, ok := lookup("WEBREADER_PROXY_DOMAINS"); ok {
		cfg.Fetch.Proxy.Domains = splitList(v)
	}
	errs = append(errs,
		setDuration(&cfg.Fetch.Timeout, "WEBREADER_TIMEOUT"),
		setInt(&cfg.Fetch.MaxRedirects, "WEBREADER_MAX_REDIRECTS"),
		setInt(&cfg.Fetch.DefaultMaxChars, "WEBREADER_MAX_CHARS"),
		setInt64(&cfg.Fetch.MaxBodyBytes, "WEBREADER_MAX_BODY_BYTES"),
		setBool(&cfg.Fetch.Proxy.Disabled, "WEBREADER_PROXY_DISABLED"),
	)

	setString(&cfg.Search.APIKey, "BRAVE_API_KEY")
	setString(&cfg.Search.APIKey, "WEBREADER_BRAVE_API_KEY")
	setString(&cfg.Search.BaseURL, "WEBREADER_SEARCH_BASE_URL")
	errs = append(errs,
		setDuration(&cfg.Search.Timeout, "WEBREADER_SEARCH_TIMEOUT"),
		setInt(&cfg.Search.MaxResults, "WEBREADER_SEARCH_MAX_RESULTS"),
	)

	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Level, "WEBREADER_LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
	setString(&cfg.Log.Format, "WEBREADER_LOG_FORMAT")

	return errors.Join(errs...)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setInt64(dst *int64, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}

// setDuration accepts Go durations ("45s") and bare seconds ("45").
func setDuration(dst *time.Duration, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(secs) * time.Second
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
