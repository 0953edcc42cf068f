package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/materiales-api/internal/application/policy"
	"github.com/jhoicas/materiales-api/internal/domain/criticality"
)

// CriticalityFactorsDTO los seis factores ordinales de la evaluación (1..5;
// standby es booleano).
type CriticalityFactorsDTO struct {
	RiskHSE          int  `json:"risk_hse"`
	ImpactProduction int  `json:"impact_production"`
	ImpactQuality    int  `json:"impact_quality"`
	StandbyAvailable bool `json:"standby_available"`
	FailureFrequency int  `json:"failure_frequency"`
	RepairTime       int  `json:"repair_time"`
}

// RecalculateRequest cuerpo del recálculo de política de reposición.
type RecalculateRequest struct {
	Factors CriticalityFactorsDTO `json:"factors"`

	AnnualUsageOverride float64 `json:"annual_usage_override,omitempty"`
	TargetDaysOverride  int     `json:"target_days_override,omitempty"`

	// Apply en falso hace del recálculo una simulación de solo lectura.
	Apply bool `json:"apply"`
}

// ToInput convierte el request al insumo del orquestador.
func (r RecalculateRequest) ToInput() policy.RecalcInput {
	return policy.RecalcInput{
		Factors: criticality.Input{
			RiskHSE:          r.Factors.RiskHSE,
			ImpactProduction: r.Factors.ImpactProduction,
			ImpactQuality:    r.Factors.ImpactQuality,
			StandbyAvailable: r.Factors.StandbyAvailable,
			FailureFrequency: r.Factors.FailureFrequency,
			RepairTime:       r.Factors.RepairTime,
		},
		AnnualUsageOverride: r.AnnualUsageOverride,
		TargetDaysOverride:  r.TargetDaysOverride,
		Apply:               r.Apply,
	}
}

// ClassificationDTO resultado de la clasificación de criticidad.
type ClassificationDTO struct {
	Score                 int     `json:"score"`
	Class                 string  `json:"class"`
	CostClass             int     `json:"cost_class"`
	ServiceLevelTargetPct float64 `json:"service_level_target_pct"`
}

// DemandStatsDTO estadísticas de demanda de la ventana de 12 meses.
type DemandStatsDTO struct {
	MonthlyMean float64   `json:"monthly_mean"`
	CV          float64   `json:"cv"`
	AnnualUsage float64   `json:"annual_usage"`
	Buckets     []float64 `json:"monthly_buckets"`
}

// ReplenishmentDTO recomendación de parámetros de reposición.
type ReplenishmentDTO struct {
	Status           string  `json:"status"`
	SafetyStock      int64   `json:"safety_stock"`
	ReorderPoint     int64   `json:"reorder_point"`
	MinStock         int64   `json:"min_stock"`
	MaxStock         int64   `json:"max_stock"`
	TargetDaysSupply int     `json:"target_days_supply"`
	SafetyFactor     float64 `json:"safety_factor"`
}

// RecalculateResponse resultado completo del recálculo.
type RecalculateResponse struct {
	MaterialID     string            `json:"material_id"`
	WarehouseID    string            `json:"warehouse_id"`
	Classification ClassificationDTO `json:"classification"`
	Demand         DemandStatsDTO    `json:"demand"`
	Replenishment  ReplenishmentDTO  `json:"replenishment"`
	Applied        bool              `json:"applied"`
	CapitalImpact  decimal.Decimal   `json:"capital_impact"`
}

// NewRecalculateResponse mapea el resultado del orquestador a su representación HTTP.
func NewRecalculateResponse(materialID, warehouseID string, out *policy.RecalcOutcome) RecalculateResponse {
	buckets := make([]float64, len(out.Stats.Buckets))
	copy(buckets, out.Stats.Buckets[:])
	return RecalculateResponse{
		MaterialID:  materialID,
		WarehouseID: warehouseID,
		Classification: ClassificationDTO{
			Score:                 out.Classification.Score,
			Class:                 out.Classification.Class,
			CostClass:             out.Classification.CostClass,
			ServiceLevelTargetPct: out.Classification.ServiceLevelTargetPct,
		},
		Demand: DemandStatsDTO{
			MonthlyMean: out.Stats.MonthlyMean,
			CV:          out.Stats.CV,
			AnnualUsage: out.Stats.AnnualUsage(),
			Buckets:     buckets,
		},
		Replenishment: ReplenishmentDTO{
			Status:           out.Replenishment.Status,
			SafetyStock:      out.Replenishment.SafetyStock,
			ReorderPoint:     out.Replenishment.ReorderPoint,
			MinStock:         out.Replenishment.MinStock,
			MaxStock:         out.Replenishment.MaxStock,
			TargetDaysSupply: out.Replenishment.TargetDaysSupply,
			SafetyFactor:     out.Replenishment.SafetyFactor,
		},
		Applied:       out.Applied,
		CapitalImpact: out.CapitalImpact,
	}
}
