package models

import "time"

// Connectivity values reported per dependency.
const (
	StatusOK          = "OK"
	StatusUnreachable = "unreachable"
	StatusUnknown     = "unknown"
)

// GatewayStatus is the latest connectivity snapshot of the gateway's upstreams.
type GatewayStatus struct {
	MQTT      string    `json:"mqtt"`
	CPAI      string    `json:"cpai"`
	CheckedAt time.Time `json:"checked_at"`
}

// Healthy reports whether every upstream answered on the last probe.
func (s GatewayStatus) Healthy() bool {
	return s.MQTT == StatusOK && s.CPAI == StatusOK
}
