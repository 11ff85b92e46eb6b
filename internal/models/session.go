package models

import "time"

// SessionInfo describes a wizard session held by the HTTP presentation.
type SessionInfo struct {
	ID           string    `json:"id"`
	Screen       string    `json:"screen"`
	RecordCount  int       `json:"recordCount"`
	CreatedAt    time.Time `json:"createdAt"`
	LastAccessed time.Time `json:"lastAccessed"`
}
