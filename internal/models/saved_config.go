package models

import "time"

const SavedConfigActive = "active"

// SavedConfig is the local record of a configuration accepted by the write endpoint.
type SavedConfig struct {
	ID        string      `json:"id"`
	Draft     ConfigDraft `json:"config"`
	CreatedAt time.Time   `json:"createdAt"`
	Status    string      `json:"status"`
}

// ActiveThresholds mirrors the single active-threshold item held by the remote store.
type ActiveThresholds struct {
	ID          int       `json:"id"`
	ProfileName string    `json:"profileName"`
	MinTemp     *float64  `json:"minTemp"`
	MaxTemp     *float64  `json:"maxTemp"`
	MaxHumidity *float64  `json:"maxHumidity"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
