package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tably/internal/scheduler"
	"github.com/spf13/viper"
)

// Keys double as config-file keys and, upper-cased with the TABLY_ prefix,
// as environment variable names.
const (
	KeyDB                = "db"
	KeyTerm              = "term"
	KeyMaxCandidates     = "max_candidates"
	KeyTopN              = "top_n"
	KeyCreditSlack       = "credit_slack"
	KeyConsecutiveGapMin = "consecutive_gap_min"
	KeyMaxSearchNodes    = "max_search_nodes"
	KeyCatalogCacheTTL   = "catalog_cache_ttl"
	KeyLogEvents         = "log_events"

	envPrefix     = "TABLY"
	envConfigFile = "TABLY_CONFIG"
)

// Config holds runtime settings for the tably CLI.
type Config struct {
	DBPath            string
	ConfigFile        string // file that was read, empty when none
	Term              string
	MaxCandidates     int
	TopN              int
	CreditSlack       int
	ConsecutiveGapMin int
	MaxSearchNodes    int
	CatalogCacheTTL   time.Duration
	LogEvents         bool
}

// DefaultConfig returns settings used when nothing is configured. DBPath is
// left empty when the home directory cannot be resolved.
func DefaultConfig() Config {
	opts := scheduler.DefaultOptions()
	return Config{
		DBPath:            defaultHomePath("tably.db"),
		MaxCandidates:     opts.MaxCandidates,
		TopN:              opts.TopN,
		CreditSlack:       opts.CreditSlack,
		ConsecutiveGapMin: opts.ConsecutiveGap,
		MaxSearchNodes:    opts.MaxSearchNodes,
		CatalogCacheTTL:   5 * time.Minute,
	}
}

// Load reads TABLY_* environment variables and an optional config file.
// TABLY_CONFIG names the file explicitly; otherwise ~/.tably/config.yaml is
// read when present. Environment variables override file values. Values that
// do not parse or fall out of range are ignored and the default is kept.
func Load() (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		KeyDB, KeyTerm, KeyMaxCandidates, KeyTopN, KeyCreditSlack,
		KeyConsecutiveGapMin, KeyMaxSearchNodes, KeyCatalogCacheTTL, KeyLogEvents,
	} {
		// AutomaticEnv only resolves keys viper already knows about.
		_ = v.BindEnv(key)
	}

	if path := os.Getenv(envConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
		cfg.ConfigFile = path
	} else if dir := defaultHomePath(""); dir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return cfg, fmt.Errorf("reading config: %w", err)
			}
		} else {
			cfg.ConfigFile = v.ConfigFileUsed()
		}
	}

	if s := strings.TrimSpace(v.GetString(KeyDB)); s != "" {
		cfg.DBPath = expandHome(s)
	}
	cfg.Term = strings.TrimSpace(v.GetString(KeyTerm))
	cfg.MaxCandidates = intSetting(v, KeyMaxCandidates, cfg.MaxCandidates, 1)
	cfg.TopN = intSetting(v, KeyTopN, cfg.TopN, 1)
	cfg.CreditSlack = intSetting(v, KeyCreditSlack, cfg.CreditSlack, 0)
	cfg.ConsecutiveGapMin = intSetting(v, KeyConsecutiveGapMin, cfg.ConsecutiveGapMin, 0)
	cfg.MaxSearchNodes = intSetting(v, KeyMaxSearchNodes, cfg.MaxSearchNodes, 1)
	cfg.CatalogCacheTTL = durationSetting(v, KeyCatalogCacheTTL, cfg.CatalogCacheTTL)
	cfg.LogEvents = boolSetting(v, KeyLogEvents, cfg.LogEvents)

	if cfg.DBPath == "" {
		return cfg, errors.New("cannot resolve database path: set TABLY_DB")
	}
	return cfg, nil
}

// EngineOptions maps the config onto scheduler options. Explicit zeros for
// slack and gap are passed through the scheduler's negative sentinel.
func (c Config) EngineOptions() scheduler.Options {
	opts := scheduler.DefaultOptions()
	opts.MaxCandidates = c.MaxCandidates
	opts.TopN = c.TopN
	opts.CreditSlack = zeroAsSentinel(c.CreditSlack)
	opts.ConsecutiveGap = zeroAsSentinel(c.ConsecutiveGapMin)
	opts.MaxSearchNodes = c.MaxSearchNodes
	return opts
}

func zeroAsSentinel(n int) int {
	if n == 0 {
		return -1
	}
	return n
}

func intSetting(v *viper.Viper, key string, def, floor int) int {
	if !v.IsSet(key) {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil || n < floor {
		return def
	}
	return n
}

// durationSetting accepts Go durations ("90s") or bare seconds ("90").
func durationSetting(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func boolSetting(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

func defaultHomePath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tably", name)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
