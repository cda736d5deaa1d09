package models

// Settings are the operator-editable gateway settings shown on the dashboard.
type Settings struct {
	MQTT            MQTTSettings `json:"mqtt" yaml:"mqtt"`
	CPAI            CPAISettings `json:"cpai" yaml:"cpai"`
	Paths           PathSettings `json:"paths" yaml:"paths"`
	CaptureInterval float64      `json:"capture_interval" yaml:"capture_interval"` // seconds
	Debug           bool         `json:"debug" yaml:"debug"`
}

type MQTTSettings struct {
	Host      string `json:"host" yaml:"host"`
	Port      int    `json:"port" yaml:"port"`
	BaseTopic string `json:"base_topic" yaml:"base_topic"`
	User      string `json:"user,omitempty" yaml:"user,omitempty"`
	Password  string `json:"password,omitempty" yaml:"password,omitempty"`
}

type CPAISettings struct {
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`
	// URL is the legacy single-field form; migrated into Host/Port on load.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

type PathSettings struct {
	BaseDB    string `json:"base_db" yaml:"base_db"`
	Snapshots string `json:"snapshots" yaml:"snapshots"`
}
