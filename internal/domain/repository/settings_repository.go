package repository

import "github.com/jhoicas/materiales-api/internal/domain/entity"

// SettingsRepository puerto de lectura de la configuración de criticidad.
// La edita una superficie de configuración externa; aquí es solo lectura.
type SettingsRepository interface {
	Get() (*entity.CriticalitySettings, error)
}
