package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the static process configuration read at start-up.
type Config struct {
	Port         string
	DBPath       string
	SettingsPath string
	SnapshotsDir string

	Log     LogConfig
	History HistoryConfig
	Status  StatusConfig
}

type LogConfig struct {
	Level       string
	File        string
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int
	BufferLines int
}

type HistoryConfig struct {
	MaxLimit      int
	DedupeCron    string
	DedupeWindow  time.Duration
	RetentionDays int
	RetentionCron string

	// RepeatInterval suppresses the same plate at the same point within it.
	RepeatInterval time.Duration
}

type StatusConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

const envPrefix = "ALPR"

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8081")
	v.SetDefault("db.path", "base.db")
	v.SetDefault("settings.path", "settings.yml")
	v.SetDefault("snapshots.dir", "static/snapshots")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "alpr.log")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.buffer_lines", 500)

	v.SetDefault("history.max_limit", 200)
	v.SetDefault("history.dedupe_cron", "*/5 * * * *")
	v.SetDefault("history.dedupe_window", "10m")
	v.SetDefault("history.retention_days", 0)
	v.SetDefault("history.retention_cron", "0 3 * * *")
	v.SetDefault("history.repeat_interval", "10s")

	v.SetDefault("status.interval", "2s")
	v.SetDefault("status.timeout", "2s")
}

// Load reads configs/config.yml (or the given directories) with ALPR_*
// environment overrides. A missing file is not an error.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if len(paths) == 0 {
		paths = []string{"configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p) // configs/config.yml
	}
	v.SetConfigName("config")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:         v.GetString("port"),
		DBPath:       v.GetString("db.path"),
		SettingsPath: v.GetString("settings.path"),
		SnapshotsDir: v.GetString("snapshots.dir"),
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			File:        v.GetString("log.file"),
			MaxSizeMB:   v.GetInt("log.max_size_mb"),
			MaxBackups:  v.GetInt("log.max_backups"),
			MaxAgeDays:  v.GetInt("log.max_age_days"),
			BufferLines: v.GetInt("log.buffer_lines"),
		},
		History: HistoryConfig{
			MaxLimit:      v.GetInt("history.max_limit"),
			DedupeCron:    v.GetString("history.dedupe_cron"),
			DedupeWindow:  v.GetDuration("history.dedupe_window"),
			RetentionDays: v.GetInt("history.retention_days"),
			RetentionCron: v.GetString("history.retention_cron"),

			RepeatInterval: v.GetDuration("history.repeat_interval"),
		},
		Status: StatusConfig{
			Interval: v.GetDuration("status.interval"),
			Timeout:  v.GetDuration("status.timeout"),
		},
	}
	if cfg.History.MaxLimit <= 0 {
		return nil, fmt.Errorf("history.max_limit must be positive, got %d", cfg.History.MaxLimit)
	}
	return cfg, nil
}
