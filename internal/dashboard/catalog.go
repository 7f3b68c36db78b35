package dashboard

import (
	"strings"

	"cryosure/internal/models"
)

var storageTypes = []models.StorageTypePreset{
	{Name: "Vaccine", Icon: "💉", MinTemp: -80, MaxTemp: -60, Humidity: 60},
	{Name: "Produce", Icon: "🥬", MinTemp: 0, MaxTemp: 4, Humidity: 85},
	{Name: "Meat", Icon: "🥩", MinTemp: -2, MaxTemp: 2, Humidity: 80},
	{Name: "Dairy", Icon: "🥛", MinTemp: 1, MaxTemp: 4, Humidity: 75},
	{Name: "Pharmaceuticals", Icon: "💊", MinTemp: 2, MaxTemp: 8, Humidity: 65},
	{Name: "Frozen", Icon: "🧊", MinTemp: -25, MaxTemp: -18, Humidity: 90},
	{Name: "Wine", Icon: "🍷", MinTemp: 10, MaxTemp: 15, Humidity: 70},
	{Name: "Custom", Icon: "⚙️", MinTemp: 0, MaxTemp: 0, Humidity: 50},
}

var temperaturePresets = []models.TemperaturePreset{
	{Name: "Ultra Low", Min: -80, Max: -60},
	{Name: "Freezer", Min: -25, Max: -18},
	{Name: "Refrigerated", Min: 0, Max: 4},
	{Name: "Cool", Min: 8, Max: 15},
	{Name: "Ambient", Min: 18, Max: 25},
}

// StorageTypes returns a copy of the storage-type catalog.
func StorageTypes() []models.StorageTypePreset {
	out := make([]models.StorageTypePreset, len(storageTypes))
	copy(out, storageTypes)
	return out
}

// TemperaturePresets returns a copy of the temperature-range catalog.
func TemperaturePresets() []models.TemperaturePreset {
	out := make([]models.TemperaturePreset, len(temperaturePresets))
	copy(out, temperaturePresets)
	return out
}

// FindStorageType looks a preset up by name, ignoring case.
func FindStorageType(name string) (models.StorageTypePreset, bool) {
	for _, p := range storageTypes {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return models.StorageTypePreset{}, false
}

func FindTemperaturePreset(name string) (models.TemperaturePreset, bool) {
	for _, p := range temperaturePresets {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return models.TemperaturePreset{}, false
}
