package models

// AccessPoint is a gate with up to two cameras (entry and exit).
type AccessPoint struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	MQTTTopic    string `json:"mqtt_topic"`
	InCameraURL  string `json:"in_camera_url"`
	OutCameraURL string `json:"out_camera_url"`

	// Derived on read, never persisted.
	SnapshotIn  string `json:"snapshot_in,omitempty"`
	SnapshotOut string `json:"snapshot_out,omitempty"`
	BranchIn    string `json:"mqtt_branch_in,omitempty"`
	BranchOut   string `json:"mqtt_branch_out,omitempty"`
}
