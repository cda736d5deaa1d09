package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"alpr_gateway/internal/models"

	"gopkg.in/yaml.v3"
)

// Default CPAI endpoint used when nothing else is configured.
const (
	DefaultCPAIHost = "192.168.12.11"
	DefaultCPAIPort = 32168
)

// DefaultSettings returns the settings written on first start.
func DefaultSettings() models.Settings {
	return models.Settings{
		MQTT: models.MQTTSettings{Host: "127.0.0.1", Port: 1883, BaseTopic: "ALPR"},
		CPAI: models.CPAISettings{Host: DefaultCPAIHost, Port: DefaultCPAIPort},
		Paths: models.PathSettings{
			BaseDB:    "base.db",
			Snapshots: "static/snapshots",
		},
		CaptureInterval: 2,
		Debug:           false,
	}
}

// SettingsStore persists operator settings as YAML.
type SettingsStore struct {
	mu   sync.Mutex
	path string
}

func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Load reads the settings file, creating it with defaults when missing.
func (s *SettingsStore) Load() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *SettingsStore) load() (models.Settings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		def := DefaultSettings()
		if err := s.save(def); err != nil {
			return models.Settings{}, err
		}
		return def, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("read settings %q: %w", s.path, err)
	}

	st := DefaultSettings()
	if err := yaml.Unmarshal(data, &st); err != nil {
		return models.Settings{}, fmt.Errorf("parse settings %q: %w", s.path, err)
	}
	MigrateCPAI(&st.CPAI)
	return st, nil
}

// Update applies fn to the current settings and persists the result. Nothing
// is written when fn fails.
func (s *SettingsStore) Update(fn func(*models.Settings) error) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		return models.Settings{}, err
	}
	if err := fn(&st); err != nil {
		return models.Settings{}, err
	}
	MigrateCPAI(&st.CPAI)
	if err := s.save(st); err != nil {
		return models.Settings{}, err
	}
	return st, nil
}

func (s *SettingsStore) save(st models.Settings) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings %q: %w", s.path, err)
	}
	return nil
}

// MigrateCPAI fills host/port from the legacy url field and applies defaults.
func MigrateCPAI(c *models.CPAISettings) {
	if (c.Host == "" || c.Port == 0) && c.URL != "" {
		if u, err := url.Parse(c.URL); err == nil {
			if c.Host == "" && u.Hostname() != "" {
				c.Host = u.Hostname()
			}
			if c.Port == 0 {
				if p, err := strconv.Atoi(u.Port()); err == nil {
					c.Port = p
				}
			}
		}
	}
	if c.Host == "" {
		c.Host = DefaultCPAIHost
	}
	if c.Port == 0 {
		c.Port = DefaultCPAIPort
	}
}

// CPAIURL is the recognition endpoint derived from the settings.
func CPAIURL(c models.CPAISettings) string {
	MigrateCPAI(&c)
	return fmt.Sprintf("http://%s:%d/v1/vision/alpr", c.Host, c.Port)
}
