package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/materiales-api/internal/domain"
	"github.com/jhoicas/materiales-api/internal/domain/criticality"
	"github.com/jhoicas/materiales-api/internal/domain/demand"
	"github.com/jhoicas/materiales-api/internal/domain/entity"
	"github.com/jhoicas/materiales-api/internal/domain/replenishment"
	"github.com/jhoicas/materiales-api/internal/domain/repository"
)

// Orchestrator reencadena clasificación → estadísticas de demanda → cálculo de
// reposición y persiste la política resultante sobre el registro de stock,
// con su entrada de auditoría del impacto de capital. Se puede invocar cada
// vez que cambie un insumo de la política.
type Orchestrator struct {
	txRunner        TxRunner
	settings        SettingsProvider
	stockRepo       repository.WarehouseStockRepository
	consumptionRepo repository.ConsumptionRepository
	now             func() time.Time
}

// NewOrchestrator construye el orquestador de políticas.
func NewOrchestrator(
	txRunner TxRunner,
	settings SettingsProvider,
	stockRepo repository.WarehouseStockRepository,
	consumptionRepo repository.ConsumptionRepository,
) *Orchestrator {
	return &Orchestrator{
		txRunner:        txRunner,
		settings:        settings,
		stockRepo:       stockRepo,
		consumptionRepo: consumptionRepo,
		now:             time.Now,
	}
}

// RecalcInput insumos subjetivos y overrides del recálculo.
type RecalcInput struct {
	Factors criticality.Input

	// AnnualUsageOverride > 0 reemplaza la proyección anual derivada del
	// histórico (media mensual × 12).
	AnnualUsageOverride float64
	TargetDaysOverride  int

	// Apply persiste la recomendación; en falso el recálculo es solo lectura.
	Apply bool
}

// RecalcOutcome resultado del recálculo. Cuando el calculador no puede
// computar (histórico insuficiente, lead time ausente) Replenishment.Status
// lo nombra y nada se persiste: es un no-resultado definido, no un error.
type RecalcOutcome struct {
	Classification criticality.Result
	Stats          demand.Stats
	Replenishment  replenishment.Result
	Applied        bool
	CapitalImpact  decimal.Decimal
}

// Recalculate corre el ciclo completo para un material en una bodega.
// Computar nunca muta estado por sí solo; solo Apply escribe, y lo hace en
// una transacción que agrupa la actualización del stock y la auditoría.
func (o *Orchestrator) Recalculate(ctx context.Context, materialID, warehouseID, actor string, in RecalcInput) (*RecalcOutcome, error) {
	if materialID == "" || warehouseID == "" {
		return nil, fmt.Errorf("%w: material y bodega requeridos", domain.ErrValidation)
	}
	if in.Apply && actor == "" {
		return nil, fmt.Errorf("%w: actor requerido para aplicar", domain.ErrValidation)
	}

	stock, err := o.stockRepo.Get(materialID, warehouseID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}

	settings, err := o.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	cls, err := criticality.Classify(in.Factors, stock.Procurement.StandardPrice, *settings)
	if err != nil {
		return nil, err
	}

	now := o.now()
	since := now.AddDate(0, -demand.WindowMonths, 0)
	events, err := o.consumptionRepo.ListByMaterial(materialID, warehouseID, since)
	if err != nil {
		return nil, err
	}
	stats := demand.MonthlyStats(deref(events), now, warehouseID)

	annualUsage := stats.AnnualUsage()
	if in.AnnualUsageOverride > 0 {
		annualUsage = in.AnnualUsageOverride
	}

	calc := replenishment.Compute(replenishment.Input{
		Class:              cls.Class,
		AnnualUsage:        annualUsage,
		LeadTimeDays:       stock.Procurement.TotalLeadTimeDays(),
		CV:                 stats.CV,
		TargetDaysOverride: in.TargetDaysOverride,
	})

	outcome := &RecalcOutcome{
		Classification: cls,
		Stats:          stats,
		Replenishment:  calc,
	}
	if calc.Status != replenishment.StatusComputed || !in.Apply {
		return outcome, nil
	}

	err = o.txRunner.RunPolicy(ctx, func(
		stockRepo repository.WarehouseStockRepository,
		auditRepo repository.AuditRepository,
	) error {
		// Relectura fresca dentro de la transacción.
		s, err := stockRepo.GetForUpdate(materialID, warehouseID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: el stock desapareció antes de aplicar la política", domain.ErrDataIntegrity)
		}

		prevSafety := s.Inventory.SafetyStockQty
		s.Inventory.SafetyStockQty = calc.SafetyStock
		s.Inventory.ReorderPointQty = calc.ReorderPoint
		s.Inventory.MinStockLevel = calc.MinStock
		s.Inventory.MaxStockLevel = calc.MaxStock
		s.Inventory.CriticalityScore = cls.Score
		s.Inventory.CriticalityClass = cls.Class
		s.Inventory.CostClass = cls.CostClass
		s.Inventory.ServiceLevelTargetPct = cls.ServiceLevelTargetPct
		s.UpdatedAt = now
		if err := stockRepo.Update(s); err != nil {
			return err
		}

		// Impacto de capital: variación del stock de seguridad a precio estándar.
		impact := decimal.NewFromInt(calc.SafetyStock - prevSafety).Mul(s.Procurement.StandardPrice)
		outcome.CapitalImpact = impact

		return auditRepo.Append(&entity.AuditEntry{
			ID:            uuid.New().String(),
			Timestamp:     now,
			Actor:         actor,
			Category:      entity.AuditCategoryReplenishmentPolicy,
			MaterialID:    materialID,
			WarehouseID:   warehouseID,
			CapitalImpact: &impact,
			Details: fmt.Sprintf(
				"clase %s (puntaje %d, clase de costo %d), SS %d→%d, ROP %d, min %d, max %d, CSL %.1f%%",
				cls.Class, cls.Score, cls.CostClass,
				prevSafety, calc.SafetyStock, calc.ReorderPoint, calc.MinStock, calc.MaxStock,
				cls.ServiceLevelTargetPct,
			),
		})
	})
	if err != nil {
		return nil, err
	}
	outcome.Applied = true
	return outcome, nil
}

func deref(events []*entity.ConsumptionEvent) []entity.ConsumptionEvent {
	out := make([]entity.ConsumptionEvent, 0, len(events))
	for _, ev := range events {
		if ev != nil {
			out = append(out, *ev)
		}
	}
	return out
}
