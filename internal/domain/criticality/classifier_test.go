package criticality_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/materiales-api/internal/domain"
	"github.com/jhoicas/materiales-api/internal/domain/criticality"
	"github.com/jhoicas/materiales-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests Classify — puntaje, clase y nivel de servicio
// ──────────────────────────────────────────────────────────────────────────────

// Todos los factores al máximo sin respaldo: 5×5 + 2 = 27 → clase A.
func TestClassify_PuntajeMaximoEsClaseA(t *testing.T) {
	in := criticality.Input{
		RiskHSE:          5,
		ImpactProduction: 5,
		ImpactQuality:    5,
		StandbyAvailable: false,
		FailureFrequency: 5,
		RepairTime:       5,
	}
	res, err := criticality.Classify(in, decimal.NewFromInt(50), entity.DefaultCriticalitySettings())
	require.NoError(t, err)

	assert.Equal(t, 27, res.Score, "5 factores en 5 más standby 'no' (2 puntos) suman 27")
	assert.Equal(t, "A", res.Class)
	assert.Equal(t, 1, res.CostClass, "precio 50 cae bajo el primer corte (100)")
	assert.Equal(t, 99.5, res.ServiceLevelTargetPct, "celda A1 de la matriz por defecto")
}

// Mismos insumos y configuración → mismo resultado (determinismo).
func TestClassify_Determinista(t *testing.T) {
	in := criticality.Input{RiskHSE: 3, ImpactProduction: 2, ImpactQuality: 4, StandbyAvailable: true, FailureFrequency: 1, RepairTime: 5}
	s := entity.DefaultCriticalitySettings()
	price := decimal.NewFromInt(2500)

	first, err := criticality.Classify(in, price, s)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := criticality.Classify(in, price, s)
		require.NoError(t, err)
		assert.Equal(t, first, again, "la clasificación no debe variar entre corridas")
	}
}

// El equipo de respaldo baja el puntaje respecto del mismo ítem sin respaldo.
func TestClassify_StandbyReducePuntaje(t *testing.T) {
	s := entity.DefaultCriticalitySettings()
	base := criticality.Input{RiskHSE: 3, ImpactProduction: 3, ImpactQuality: 3, FailureFrequency: 3, RepairTime: 3}

	sin := base
	sin.StandbyAvailable = false
	con := base
	con.StandbyAvailable = true

	resSin, err := criticality.Classify(sin, decimal.NewFromInt(10), s)
	require.NoError(t, err)
	resCon, err := criticality.Classify(con, decimal.NewFromInt(10), s)
	require.NoError(t, err)

	assert.Equal(t, resSin.Score-1, resCon.Score,
		"con respaldo (1 punto) debe puntuar uno menos que sin respaldo (2 puntos)")
}

// Ordinal fuera de 1..5 → ErrValidation antes de cualquier lookup.
func TestClassify_OrdinalFueraDeRango(t *testing.T) {
	s := entity.DefaultCriticalitySettings()
	cases := []criticality.Input{
		{RiskHSE: 0, ImpactProduction: 3, ImpactQuality: 3, FailureFrequency: 3, RepairTime: 3},
		{RiskHSE: 3, ImpactProduction: 6, ImpactQuality: 3, FailureFrequency: 3, RepairTime: 3},
		{RiskHSE: 3, ImpactProduction: 3, ImpactQuality: -1, FailureFrequency: 3, RepairTime: 3},
		{RiskHSE: 3, ImpactProduction: 3, ImpactQuality: 3, FailureFrequency: 9, RepairTime: 3},
		{RiskHSE: 3, ImpactProduction: 3, ImpactQuality: 3, FailureFrequency: 3, RepairTime: 0},
	}
	for _, in := range cases {
		_, err := criticality.Classify(in, decimal.NewFromInt(10), s)
		assert.ErrorIs(t, err, domain.ErrValidation, "ordinal fuera de rango debe fallar con ErrValidation")
	}
}

// Matriz sin la celda → objetivo por defecto 95%, nunca error.
func TestClassify_MatrizVaciaDegradaAlDefault(t *testing.T) {
	s := entity.DefaultCriticalitySettings()
	s.ServiceLevelMatrix = map[string]float64{}

	in := criticality.Input{RiskHSE: 1, ImpactProduction: 1, ImpactQuality: 1, FailureFrequency: 1, RepairTime: 1}
	res, err := criticality.Classify(in, decimal.NewFromInt(10), s)
	require.NoError(t, err)
	assert.Equal(t, criticality.DefaultServiceLevelPct, res.ServiceLevelTargetPct)
}

// Tabla de puntos corta aporta 0 para el ordinal no cubierto.
func TestClassify_TablaCortaAportaCero(t *testing.T) {
	s := entity.DefaultCriticalitySettings()
	s.RiskHSEPoints = []int{1, 2} // ordinales 3..5 sin cobertura

	in := criticality.Input{RiskHSE: 5, ImpactProduction: 1, ImpactQuality: 1, FailureFrequency: 1, RepairTime: 1}
	res, err := criticality.Classify(in, decimal.NewFromInt(10), s)
	require.NoError(t, err)
	// 0 (tabla corta) + 1 + 1 + 2 (sin respaldo) + 1 + 1
	assert.Equal(t, 6, res.Score)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CostClassFor — cortes monetarios
// ──────────────────────────────────────────────────────────────────────────────

func TestCostClassFor_Cortes(t *testing.T) {
	b := entity.DefaultCriticalitySettings().CostClassBoundaries

	tests := []struct {
		price string
		want  int
	}{
		{"0", 1},
		{"99.99", 1},
		{"100", 2}, // el corte es estricto: igual al límite pasa a la clase siguiente
		{"999.99", 2},
		{"1000", 3},
		{"9999.99", 3},
		{"10000", 4},
		{"500000", 4},
	}
	for _, tc := range tests {
		price, err := decimal.NewFromString(tc.price)
		require.NoError(t, err)
		assert.Equal(t, tc.want, criticality.CostClassFor(price, b),
			"precio %s debe caer en clase de costo %d", tc.price, tc.want)
	}
}

// Sin cortes configurados todo precio es clase 4.
func TestCostClassFor_SinCortes(t *testing.T) {
	assert.Equal(t, 4, criticality.CostClassFor(decimal.NewFromInt(1), nil))
}
