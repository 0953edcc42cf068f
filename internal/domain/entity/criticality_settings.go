package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StandbyPoints puntos según exista equipo de respaldo.
type StandbyPoints struct {
	Yes int `json:"yes"`
	No  int `json:"no"`
}

// ClassCutoffs umbrales de puntaje para las clases A/B/C (por debajo de C es D).
type ClassCutoffs struct {
	ClassA int `json:"class_a"`
	ClassB int `json:"class_b"`
	ClassC int `json:"class_c"`
}

// CriticalitySettings configuración de criticidad a nivel de compañía:
// tablas de puntos por factor, umbrales de clase, cortes monetarios de clase
// de costo y la matriz clase×claseDeCosto → nivel de servicio objetivo (%).
// Entrada de solo lectura para el motor de clasificación; la edita una
// superficie de configuración externa a este núcleo.
type CriticalitySettings struct {
	RiskHSEPoints          []int         `json:"risk_hse_points"`
	ImpactProductionPoints []int         `json:"impact_production_points"`
	ImpactQualityPoints    []int         `json:"impact_quality_points"`
	Standby                StandbyPoints `json:"standby_points"`
	FailureFrequencyPoints []int         `json:"failure_frequency_points"`
	RepairTimePoints       []int         `json:"repair_time_points"`

	Cutoffs ClassCutoffs `json:"cutoffs"`

	// CostClassBoundaries tres cortes monetarios ascendentes → clases 1..4.
	CostClassBoundaries []decimal.Decimal `json:"cost_class_boundaries"`

	// ServiceLevelMatrix clave "A1".."D4" → porcentaje objetivo. Celdas
	// ausentes degradan al valor por defecto, nunca a un error.
	ServiceLevelMatrix map[string]float64 `json:"service_level_matrix"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultCriticalitySettings valores iniciales razonables para una compañía
// recién aprovisionada (los seeds y tests parten de aquí).
func DefaultCriticalitySettings() CriticalitySettings {
	return CriticalitySettings{
		RiskHSEPoints:          []int{1, 2, 3, 4, 5},
		ImpactProductionPoints: []int{1, 2, 3, 4, 5},
		ImpactQualityPoints:    []int{1, 2, 3, 4, 5},
		Standby:                StandbyPoints{Yes: 1, No: 2},
		FailureFrequencyPoints: []int{1, 2, 3, 4, 5},
		RepairTimePoints:       []int{1, 2, 3, 4, 5},
		Cutoffs:                ClassCutoffs{ClassA: 22, ClassB: 15, ClassC: 8},
		CostClassBoundaries: []decimal.Decimal{
			decimal.NewFromInt(100),
			decimal.NewFromInt(1000),
			decimal.NewFromInt(10000),
		},
		ServiceLevelMatrix: map[string]float64{
			"A1": 99.5, "A2": 99, "A3": 98, "A4": 97,
			"B1": 98, "B2": 97, "B3": 96, "B4": 95,
			"C1": 96, "C2": 95, "C3": 93, "C4": 92,
			"D1": 95, "D2": 93, "D3": 90, "D4": 88,
		},
	}
}
