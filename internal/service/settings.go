package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"alpr_gateway/internal/config"
	"alpr_gateway/internal/logger"
	"alpr_gateway/internal/models"
)

var ErrInvalidSettings = errors.New("invalid settings")

type SettingsService struct {
	store *config.SettingsStore
	log   *logger.Logger
}

func NewSettingsService(store *config.SettingsStore, log *logger.Logger) *SettingsService {
	return &SettingsService{store: store, log: log}
}

func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	return s.store.Load()
}

// Update merges a JSON patch into the stored settings: keys present in the
// patch overwrite, everything else keeps its value. A legacy cpai.url in the
// patch replaces host and port unless those are sent too. The debug flag
// takes effect immediately.
func (s *SettingsService) Update(ctx context.Context, patch []byte) (models.Settings, error) {
	var legacy struct {
		CPAI *struct {
			URL  string `json:"url"`
			Host string `json:"host"`
			Port int    `json:"port"`
		} `json:"cpai"`
	}
	if err := json.Unmarshal(patch, &legacy); err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	st, err := s.store.Update(func(st *models.Settings) error {
		if err := json.Unmarshal(patch, st); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
		if c := legacy.CPAI; c != nil && c.URL != "" {
			if c.Host == "" {
				st.CPAI.Host = ""
			}
			if c.Port == 0 {
				st.CPAI.Port = 0
			}
			config.MigrateCPAI(&st.CPAI)
			st.CPAI.URL = ""
		}
		return nil
	})
	if err != nil {
		return models.Settings{}, err
	}

	s.log.SetDebug(st.Debug)
	s.log.Infow("settings_updated", "debug", st.Debug, "mqtt_host", st.MQTT.Host, "cpai_host", st.CPAI.Host)
	return st, nil
}
