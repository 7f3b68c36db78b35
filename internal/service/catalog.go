package service

import (
	"cryosure/internal/dashboard"
	"cryosure/internal/models"
)

type CatalogService struct{}

func NewCatalogService() *CatalogService { return &CatalogService{} }

func (CatalogService) StorageTypes() []models.StorageTypePreset {
	return dashboard.StorageTypes()
}

func (CatalogService) TemperaturePresets() []models.TemperaturePreset {
	return dashboard.TemperaturePresets()
}
