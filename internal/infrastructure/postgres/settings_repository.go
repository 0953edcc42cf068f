package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/materiales-api/internal/domain/entity"
	"github.com/jhoicas/materiales-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo configuración de criticidad sobre PostgreSQL (fila única,
// payload jsonb). La edita la superficie de configuración externa; para este
// núcleo es solo lectura.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve la configuración vigente. Compañía sin fila aprovisionada
// degrada a los valores por defecto en lugar de fallar la clasificación.
func (r *SettingsRepo) Get() (*entity.CriticalitySettings, error) {
	query := `SELECT payload, updated_at FROM criticality_settings WHERE id = 1`
	var payload []byte
	var s entity.CriticalitySettings
	err := r.q.QueryRow(context.Background(), query).Scan(&payload, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			def := entity.DefaultCriticalitySettings()
			return &def, nil
		}
		return nil, fmt.Errorf("get criticality settings: %w", err)
	}
	updatedAt := s.UpdatedAt
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decode criticality settings: %w", err)
	}
	s.UpdatedAt = updatedAt
	return &s, nil
}
