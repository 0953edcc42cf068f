// Package replenishment calcula los parámetros de reposición (stock de
// seguridad, punto de reorden, min/max) a partir de clase de criticidad,
// uso anual, lead time y variabilidad de la demanda.
package replenishment

import "math"

// Estados del resultado. Insumos insuficientes no son un error: el
// calculador devuelve explícitamente qué falta y el operador decide.
const (
	StatusComputed          = "computed"
	StatusInsufficientUsage = "insufficient_usage_data"
	StatusLeadTimeRequired  = "lead_time_required"
)

// Input insumos del cálculo. TargetDaysOverride en 0 usa el default por clase.
type Input struct {
	Class              string // "A".."D"
	AnnualUsage        float64
	LeadTimeDays       int
	CV                 float64
	TargetDaysOverride int
}

// Result recomendación de política de stock. Calcularla nunca muta estado
// persistido; el operador debe aplicarla explícitamente.
type Result struct {
	Status           string
	SafetyStock      int64
	ReorderPoint     int64
	MinStock         int64
	MaxStock         int64
	TargetDaysSupply int
	SafetyFactor     float64 // factor base por clase + CV
}

// classParams factor base de seguridad y días de cobertura objetivo por clase.
type classParams struct {
	safetyFactor float64
	targetDays   int
}

func paramsFor(class string) classParams {
	switch class {
	case "A":
		return classParams{0.75, 90}
	case "B":
		return classParams{0.50, 60}
	case "C":
		return classParams{0.25, 30}
	default:
		return classParams{0.10, 14}
	}
}

// Compute calcula la recomendación. El CV se suma al factor base: la
// variabilidad incrementa aditivamente el colchón, de modo que un ítem D muy
// variable y un ítem A estable pueden converger.
//
// minStock = safetyStock es la definición canónica en todos los caminos de
// entrada de política.
func Compute(in Input) Result {
	if in.AnnualUsage <= 0 {
		return Result{Status: StatusInsufficientUsage}
	}
	if in.LeadTimeDays <= 0 {
		return Result{Status: StatusLeadTimeRequired}
	}

	p := paramsFor(in.Class)

	targetDays := p.targetDays
	if in.TargetDaysOverride > 0 {
		targetDays = in.TargetDaysOverride
	}

	dailyUsage := in.AnnualUsage / 365
	leadTimeDemand := dailyUsage * float64(in.LeadTimeDays)
	safetyFactor := p.safetyFactor + in.CV

	safetyStock := int64(math.Ceil(leadTimeDemand * safetyFactor))
	reorderPoint := int64(math.Ceil(leadTimeDemand + float64(safetyStock)))
	maxStock := int64(math.Ceil(float64(reorderPoint) + dailyUsage*float64(targetDays)))

	return Result{
		Status:           StatusComputed,
		SafetyStock:      safetyStock,
		ReorderPoint:     reorderPoint,
		MinStock:         safetyStock,
		MaxStock:         maxStock,
		TargetDaysSupply: targetDays,
		SafetyFactor:     safetyFactor,
	}
}
