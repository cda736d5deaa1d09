package service

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"alpr_gateway/internal/config"
	"alpr_gateway/internal/logger"
	"alpr_gateway/internal/models"
)

const defaultProbeTimeout = 2 * time.Second

// StatusService periodically probes the MQTT broker and the CPAI server and
// keeps the latest result.
type StatusService struct {
	settings SettingsReader
	log      *logger.Logger
	timeout  time.Duration
	client   *http.Client

	mu     sync.RWMutex
	status models.GatewayStatus
}

func NewStatusService(settings SettingsReader, log *logger.Logger, timeout time.Duration) *StatusService {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &StatusService{
		settings: settings,
		log:      log,
		timeout:  timeout,
		client:   &http.Client{Timeout: timeout},
		status:   models.GatewayStatus{MQTT: models.StatusUnknown, CPAI: models.StatusUnknown},
	}
}

// Run probes once right away and then every tick until ctx is canceled.
func (s *StatusService) Run(ctx context.Context, tick time.Duration) {
	s.Probe(ctx)

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Probe(ctx)
		}
	}
}

// Probe checks both upstreams with the current settings and stores the result.
func (s *StatusService) Probe(ctx context.Context) models.GatewayStatus {
	st, err := s.settings.Get(ctx)
	if err != nil {
		s.log.Errorw("status_settings_failed", "err", err)
		current, _ := s.GetStatus(ctx)
		return current
	}

	next := models.GatewayStatus{
		MQTT:      s.probeTCP(ctx, net.JoinHostPort(st.MQTT.Host, strconv.Itoa(st.MQTT.Port))),
		CPAI:      s.probeHTTP(ctx, config.CPAIURL(st.CPAI)),
		CheckedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	prev := s.status
	s.status = next
	s.mu.Unlock()

	if prev.MQTT != next.MQTT {
		s.log.Infow("mqtt_status_changed", "from", prev.MQTT, "to", next.MQTT, "host", st.MQTT.Host, "port", st.MQTT.Port)
	}
	if prev.CPAI != next.CPAI {
		s.log.Infow("cpai_status_changed", "from", prev.CPAI, "to", next.CPAI, "host", st.CPAI.Host, "port", st.CPAI.Port)
	}
	return next
}

// GetStatus returns the last probe result; both fields are "unknown" before
// the first probe.
func (s *StatusService) GetStatus(ctx context.Context) (models.GatewayStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, nil
}

// probeTCP reports OK when a TCP connection to addr can be opened.
func (s *StatusService) probeTCP(ctx context.Context, addr string) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		s.log.Debugw("mqtt_probe_failed", "addr", addr, "err", err)
		return models.StatusUnreachable
	}
	_ = conn.Close()
	return models.StatusOK
}

// probeHTTP reports OK when the server answers at all, whatever the status code.
func (s *StatusService) probeHTTP(ctx context.Context, url string) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.log.Debugw("cpai_probe_failed", "url", url, "err", err)
		return models.StatusUnreachable
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Debugw("cpai_probe_failed", "url", url, "err", err)
		return models.StatusUnreachable
	}
	_ = resp.Body.Close()
	return models.StatusOK
}
