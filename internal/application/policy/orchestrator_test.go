package policy_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/materiales-api/internal/application/policy"
	"github.com/jhoicas/materiales-api/internal/domain"
	"github.com/jhoicas/materiales-api/internal/domain/criticality"
	"github.com/jhoicas/materiales-api/internal/domain/entity"
	"github.com/jhoicas/materiales-api/internal/domain/replenishment"
	"github.com/jhoicas/materiales-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	mu     sync.Mutex
	stocks map[string]*entity.WarehouseStockRecord
}

func stockKey(materialID, warehouseID string) string { return materialID + "|" + warehouseID }

func (r *fakeStockRepo) Create(s *entity.WarehouseStockRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.stocks[stockKey(s.MaterialID, s.WarehouseID)] = &cp
	return nil
}

func (r *fakeStockRepo) Get(materialID, warehouseID string) (*entity.WarehouseStockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stocks[stockKey(materialID, warehouseID)]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStockRepo) GetForUpdate(materialID, warehouseID string) (*entity.WarehouseStockRecord, error) {
	return r.Get(materialID, warehouseID)
}

func (r *fakeStockRepo) Update(s *entity.WarehouseStockRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.stocks[stockKey(s.MaterialID, s.WarehouseID)] = &cp
	return nil
}

func (r *fakeStockRepo) Delete(materialID, warehouseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stocks, stockKey(materialID, warehouseID))
	return nil
}

func (r *fakeStockRepo) ListByMaterial(materialID string) ([]*entity.WarehouseStockRecord, error) {
	return nil, nil
}

type fakeConsumptionRepo struct{ events []*entity.ConsumptionEvent }

func (r *fakeConsumptionRepo) Create(ev *entity.ConsumptionEvent) error {
	r.events = append(r.events, ev)
	return nil
}

func (r *fakeConsumptionRepo) ListByMaterial(materialID, warehouseID string, since time.Time) ([]*entity.ConsumptionEvent, error) {
	var out []*entity.ConsumptionEvent
	for _, ev := range r.events {
		if ev.MaterialID == materialID && !ev.OccurredAt.Before(since) {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeSettingsProvider struct{ s entity.CriticalitySettings }

func (p *fakeSettingsProvider) Get(ctx context.Context) (*entity.CriticalitySettings, error) {
	cp := p.s
	return &cp, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*entity.AuditEntry
}

func (r *fakeAuditRepo) Append(e *entity.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.entries = append(r.entries, &cp)
	return nil
}

type fakeTxRunner struct {
	stockRepo *fakeStockRepo
	auditRepo *fakeAuditRepo
}

func (tx *fakeTxRunner) RunPolicy(ctx context.Context, fn func(
	stockRepo repository.WarehouseStockRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return fn(tx.stockRepo, tx.auditRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	matID = "mat-1"
	whID  = "wh-1"
)

// maxFactors todos los ordinales en 5 sin respaldo → puntaje 27, clase A.
var maxFactors = criticality.Input{
	RiskHSE:          5,
	ImpactProduction: 5,
	ImpactQuality:    5,
	FailureFrequency: 5,
	RepairTime:       5,
}

func newTestOrchestrator() (*policy.Orchestrator, *fakeStockRepo, *fakeAuditRepo, *fakeConsumptionRepo) {
	stockRepo := &fakeStockRepo{stocks: map[string]*entity.WarehouseStockRecord{}}
	auditRepo := &fakeAuditRepo{}
	consumptionRepo := &fakeConsumptionRepo{}
	settings := &fakeSettingsProvider{s: entity.DefaultCriticalitySettings()}
	orch := policy.NewOrchestrator(
		&fakeTxRunner{stockRepo: stockRepo, auditRepo: auditRepo},
		settings, stockRepo, consumptionRepo,
	)
	return orch, stockRepo, auditRepo, consumptionRepo
}

// seedStock registro con precio 120 (clase de costo 2) y lead time total 15 días.
func seedStock(stockRepo *fakeStockRepo) {
	stockRepo.stocks[stockKey(matID, whID)] = &entity.WarehouseStockRecord{
		MaterialID:   matID,
		MaterialCode: "MAT-00001",
		WarehouseID:  whID,
		Procurement: entity.ProcurementData{
			StandardPrice:            decimal.NewFromInt(120),
			PurchasingProcessingDays: 5,
			PlannedDeliveryDays:      10,
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Recalculate — validación y no encontrados
// ──────────────────────────────────────────────────────────────────────────────

func TestRecalculate_StockInexistente(t *testing.T) {
	orch, _, _, _ := newTestOrchestrator()
	_, err := orch.Recalculate(context.Background(), matID, whID, "planner", policy.RecalcInput{Factors: maxFactors})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecalculate_IDsRequeridos(t *testing.T) {
	orch, _, _, _ := newTestOrchestrator()
	_, err := orch.Recalculate(context.Background(), "", whID, "planner", policy.RecalcInput{Factors: maxFactors})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecalculate_ApplyRequiereActor(t *testing.T) {
	orch, stockRepo, _, _ := newTestOrchestrator()
	seedStock(stockRepo)
	_, err := orch.Recalculate(context.Background(), matID, whID, "", policy.RecalcInput{Factors: maxFactors, Apply: true})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecalculate_FactorFueraDeRango(t *testing.T) {
	orch, stockRepo, _, _ := newTestOrchestrator()
	seedStock(stockRepo)
	bad := maxFactors
	bad.RiskHSE = 7
	_, err := orch.Recalculate(context.Background(), matID, whID, "planner", policy.RecalcInput{Factors: bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Recalculate — simulación y aplicación
// ──────────────────────────────────────────────────────────────────────────────

// Con apply=false el recálculo es solo lectura: computa pero nada persiste.
func TestRecalculate_SimulacionNoPersiste(t *testing.T) {
	orch, stockRepo, auditRepo, _ := newTestOrchestrator()
	seedStock(stockRepo)

	out, err := orch.Recalculate(context.Background(), matID, whID, "planner", policy.RecalcInput{
		Factors:             maxFactors,
		AnnualUsageOverride: 3650,
	})
	require.NoError(t, err)

	assert.Equal(t, "A", out.Classification.Class)
	assert.Equal(t, 27, out.Classification.Score)
	assert.Equal(t, 2, out.Classification.CostClass, "precio 120 cae en clase de costo 2")
	assert.Equal(t, 99.0, out.Classification.ServiceLevelTargetPct, "celda A2 de la matriz por defecto")
	assert.Equal(t, replenishment.StatusComputed, out.Replenishment.Status)
	assert.False(t, out.Applied)

	persisted := stockRepo.stocks[stockKey(matID, whID)]
	assert.Zero(t, persisted.Inventory.SafetyStockQty, "la simulación no debe tocar el stock")
	assert.Empty(t, persisted.Inventory.CriticalityClass)
	assert.Empty(t, auditRepo.entries, "la simulación no audita")
}

// Con apply=true la política computada se persiste junto con su auditoría.
func TestRecalculate_ApplyPersisteYAudita(t *testing.T) {
	orch, stockRepo, auditRepo, _ := newTestOrchestrator()
	seedStock(stockRepo)

	out, err := orch.Recalculate(context.Background(), matID, whID, "planner", policy.RecalcInput{
		Factors:             maxFactors,
		AnnualUsageOverride: 3650, // 10/día → demanda en lead time 150
		Apply:               true,
	})
	require.NoError(t, err)
	require.True(t, out.Applied)

	// Clase A: factor 0.75 + CV 0 → SS ceil(150×0.75) = 113, ROP 263, max 263 + 10×90 = 1163.
	assert.Equal(t, int64(113), out.Replenishment.SafetyStock)
	assert.Equal(t, int64(263), out.Replenishment.ReorderPoint)
	assert.Equal(t, int64(113), out.Replenishment.MinStock)
	assert.Equal(t, int64(1163), out.Replenishment.MaxStock)

	persisted := stockRepo.stocks[stockKey(matID, whID)]
	assert.Equal(t, int64(113), persisted.Inventory.SafetyStockQty)
	assert.Equal(t, int64(263), persisted.Inventory.ReorderPointQty)
	assert.Equal(t, int64(113), persisted.Inventory.MinStockLevel)
	assert.Equal(t, int64(1163), persisted.Inventory.MaxStockLevel)
	assert.Equal(t, "A", persisted.Inventory.CriticalityClass)
	assert.Equal(t, 27, persisted.Inventory.CriticalityScore)
	assert.Equal(t, 2, persisted.Inventory.CostClass)
	assert.Equal(t, 99.0, persisted.Inventory.ServiceLevelTargetPct)

	// Impacto de capital: ΔSS × precio estándar = 113 × 120.
	assert.True(t, out.CapitalImpact.Equal(decimal.NewFromInt(13560)),
		"impacto de capital esperado 13560, obtenido %s", out.CapitalImpact)

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	assert.Equal(t, entity.AuditCategoryReplenishmentPolicy, entry.Category)
	assert.Equal(t, "planner", entry.Actor)
	assert.Equal(t, matID, entry.MaterialID)
	assert.Equal(t, whID, entry.WarehouseID)
	require.NotNil(t, entry.CapitalImpact)
	assert.True(t, entry.CapitalImpact.Equal(decimal.NewFromInt(13560)))
	assert.Contains(t, entry.Details, "clase A")
}

// El histórico real alimenta la proyección anual cuando no hay override.
func TestRecalculate_UsaHistoricoDeConsumo(t *testing.T) {
	orch, stockRepo, _, consumptionRepo := newTestOrchestrator()
	seedStock(stockRepo)

	// 120 unidades por mes durante los últimos 6 meses.
	now := time.Now().UTC()
	for i := 0; i < 6; i++ {
		consumptionRepo.events = append(consumptionRepo.events, &entity.ConsumptionEvent{
			ID:          "ev",
			MaterialID:  matID,
			WarehouseID: whID,
			Type:        entity.ConsumptionTypeIssue,
			Quantity:    decimal.NewFromInt(120),
			OccurredAt:  now.AddDate(0, -i, 0),
		})
	}

	out, err := orch.Recalculate(context.Background(), matID, whID, "planner", policy.RecalcInput{Factors: maxFactors})
	require.NoError(t, err)

	assert.Equal(t, replenishment.StatusComputed, out.Replenishment.Status)
	assert.InDelta(t, 60.0, out.Stats.MonthlyMean, 1e-9, "720 unidades sobre 12 cubetas")
	assert.InDelta(t, 720.0, out.Stats.AnnualUsage(), 1e-9)
	assert.Positive(t, out.Stats.CV, "consumo en la mitad de los meses tiene variabilidad")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Recalculate — no-resultados definidos
// ──────────────────────────────────────────────────────────────────────────────

// Sin histórico ni override el estado es insufficient_usage_data y nada se
// persiste aunque apply sea verdadero.
func TestRecalculate_SinHistoricoNoPersisteAunqueApply(t *testing.T) {
	orch, stockRepo, auditRepo, _ := newTestOrchestrator()
	seedStock(stockRepo)

	out, err := orch.Recalculate(context.Background(), matID, whID, "planner", policy.RecalcInput{
		Factors: maxFactors,
		Apply:   true,
	})
	require.NoError(t, err, "histórico insuficiente es un no-resultado, no un error")

	assert.Equal(t, replenishment.StatusInsufficientUsage, out.Replenishment.Status)
	assert.False(t, out.Applied)
	assert.Zero(t, stockRepo.stocks[stockKey(matID, whID)].Inventory.SafetyStockQty)
	assert.Empty(t, auditRepo.entries)
}

// Sin lead time configurado la política es incomputable.
func TestRecalculate_SinLeadTimeNoPersiste(t *testing.T) {
	orch, stockRepo, auditRepo, _ := newTestOrchestrator()
	stockRepo.stocks[stockKey(matID, whID)] = &entity.WarehouseStockRecord{
		MaterialID:   matID,
		MaterialCode: "MAT-00001",
		WarehouseID:  whID,
		Procurement: entity.ProcurementData{
			StandardPrice: decimal.NewFromInt(120), // sin componentes de lead time
		},
	}

	out, err := orch.Recalculate(context.Background(), matID, whID, "planner", policy.RecalcInput{
		Factors:             maxFactors,
		AnnualUsageOverride: 3650,
		Apply:               true,
	})
	require.NoError(t, err)

	assert.Equal(t, replenishment.StatusLeadTimeRequired, out.Replenishment.Status)
	assert.False(t, out.Applied)
	assert.Empty(t, auditRepo.entries)
}
