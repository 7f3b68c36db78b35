package models

// StorageTypePreset bulk-fills the thresholds of a draft.
type StorageTypePreset struct {
	Name     string  `json:"name"`
	Icon     string  `json:"icon"`
	MinTemp  float64 `json:"minTemp"`  // °C
	MaxTemp  float64 `json:"maxTemp"`  // °C
	Humidity float64 `json:"humidity"` // max %
}

// TemperaturePreset fills only the temperature range of a draft.
type TemperaturePreset struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}
