package models

import "time"

// LogLine is one operator log entry kept in memory for the dashboard.
type LogLine struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}
