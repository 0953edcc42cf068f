// Package criticality implementa el motor de clasificación de criticidad:
// función pura de seis factores ordinales + configuración → puntaje,
// clase A–D, clase de costo 1–4 y nivel de servicio objetivo.
package criticality

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/materiales-api/internal/domain"
	"github.com/jhoicas/materiales-api/internal/domain/entity"
)

// DefaultServiceLevelPct objetivo por defecto cuando la matriz no tiene celda
// para la combinación clase+claseDeCosto. Celdas ausentes degradan aquí,
// nunca a un error.
const DefaultServiceLevelPct = 95.0

// Input los seis factores ordinales de la evaluación de criticidad.
// Los ordinales van de 1 a 5; StandbyAvailable reemplaza al ordinal de respaldo.
type Input struct {
	RiskHSE          int
	ImpactProduction int
	ImpactQuality    int
	StandbyAvailable bool
	FailureFrequency int
	RepairTime       int
}

// Result salida de la clasificación. Determinista: mismos insumos y
// configuración producen siempre el mismo resultado.
type Result struct {
	Score                 int
	Class                 string // "A".."D"
	CostClass             int    // 1..4
	ServiceLevelTargetPct float64
}

// Classify calcula puntaje, clase, clase de costo y nivel de servicio objetivo.
// Sin estado oculto ni I/O: configuración e insumos los aporta el caller.
// Ordinales fuera de 1..5 → ErrValidation antes de cualquier lookup.
// Tablas de puntos cortas o matriz vacía degradan (aportan 0 / objetivo por
// defecto) en lugar de fallar.
func Classify(in Input, unitPrice decimal.Decimal, s entity.CriticalitySettings) (Result, error) {
	if err := validateOrdinal("risk_hse", in.RiskHSE); err != nil {
		return Result{}, err
	}
	if err := validateOrdinal("impact_production", in.ImpactProduction); err != nil {
		return Result{}, err
	}
	if err := validateOrdinal("impact_quality", in.ImpactQuality); err != nil {
		return Result{}, err
	}
	if err := validateOrdinal("failure_frequency", in.FailureFrequency); err != nil {
		return Result{}, err
	}
	if err := validateOrdinal("repair_time", in.RepairTime); err != nil {
		return Result{}, err
	}

	standby := s.Standby.No
	if in.StandbyAvailable {
		standby = s.Standby.Yes
	}

	score := pointAt(s.RiskHSEPoints, in.RiskHSE) +
		pointAt(s.ImpactProductionPoints, in.ImpactProduction) +
		pointAt(s.ImpactQualityPoints, in.ImpactQuality) +
		standby +
		pointAt(s.FailureFrequencyPoints, in.FailureFrequency) +
		pointAt(s.RepairTimePoints, in.RepairTime)

	class := classify(score, s.Cutoffs)
	costClass := CostClassFor(unitPrice, s.CostClassBoundaries)

	target := DefaultServiceLevelPct
	if pct, ok := s.ServiceLevelMatrix[class+strconv.Itoa(costClass)]; ok {
		target = pct
	}

	return Result{
		Score:                 score,
		Class:                 class,
		CostClass:             costClass,
		ServiceLevelTargetPct: target,
	}, nil
}

// CostClassFor clase de costo por cortes monetarios: 1 si el precio es menor
// al primer corte, 2 si es menor al segundo, 3 si es menor al tercero, si no 4.
func CostClassFor(unitPrice decimal.Decimal, boundaries []decimal.Decimal) int {
	for i, b := range boundaries {
		if i >= 3 {
			break
		}
		if unitPrice.LessThan(b) {
			return i + 1
		}
	}
	return 4
}

func classify(score int, c entity.ClassCutoffs) string {
	switch {
	case score >= c.ClassA:
		return "A"
	case score >= c.ClassB:
		return "B"
	case score >= c.ClassC:
		return "C"
	default:
		return "D"
	}
}

// pointAt lee la tabla de puntos indexada por ordinal (1..5).
// Tabla corta o vacía aporta 0 en vez de hacer panic.
func pointAt(table []int, ordinal int) int {
	idx := ordinal - 1
	if idx < 0 || idx >= len(table) {
		return 0
	}
	return table[idx]
}

func validateOrdinal(field string, v int) error {
	if v < 1 || v > 5 {
		return fmt.Errorf("%w: %s debe estar entre 1 y 5, recibido %d", domain.ErrValidation, field, v)
	}
	return nil
}
