// Package demand agrega el historial de consumo en estadísticas mensuales:
// media aritmética y coeficiente de variación sobre una ventana fija de
// 12 meses calendario.
package demand

import (
	"math"
	"time"

	"github.com/jhoicas/materiales-api/internal/domain/entity"
)

// WindowMonths ventana de análisis: exactamente 12 cubetas mensuales que
// terminan en el mes corriente. Meses sin consumo valen cero, no se omiten.
const WindowMonths = 12

// Stats estadísticas de demanda de un material.
// Historial vacío o todo en cero es un resultado degenerado pero válido
// (media 0, CV 0), nunca NaN ni infinito.
type Stats struct {
	MonthlyMean float64
	CV          float64 // desviación estándar poblacional / media; 0 si media es 0
	Buckets     [WindowMonths]float64
}

// AnnualUsage proyección anual a partir de la media mensual.
func (s Stats) AnnualUsage() float64 {
	return s.MonthlyMean * 12
}

// MonthlyStats cubeta por mes calendario las cantidades de eventos ISSUE y
// calcula media y CV. warehouseID vacío considera todas las bodegas.
// Eventos de otro tipo o fuera de la ventana se ignoran.
func MonthlyStats(events []entity.ConsumptionEvent, now time.Time, warehouseID string) Stats {
	var st Stats

	// Primer mes de la ventana: 11 meses atrás del mes corriente.
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(WindowMonths - 1), 0)

	for _, ev := range events {
		if ev.Type != entity.ConsumptionTypeIssue {
			continue
		}
		if warehouseID != "" && ev.WarehouseID != warehouseID {
			continue
		}
		idx := monthIndex(first, ev.OccurredAt)
		if idx < 0 || idx >= WindowMonths {
			continue
		}
		st.Buckets[idx] += ev.Quantity.InexactFloat64()
	}

	var sum float64
	for _, q := range st.Buckets {
		sum += q
	}
	st.MonthlyMean = sum / WindowMonths

	if st.MonthlyMean > 0 {
		var sqDiff float64
		for _, q := range st.Buckets {
			d := q - st.MonthlyMean
			sqDiff += d * d
		}
		// Desviación estándar poblacional: divide por 12, no por 11.
		stdDev := math.Sqrt(sqDiff / WindowMonths)
		st.CV = stdDev / st.MonthlyMean
	}

	return st
}

// monthIndex meses calendario transcurridos entre el primer mes de la ventana
// y la fecha del evento.
func monthIndex(first, t time.Time) int {
	return (t.Year()-first.Year())*12 + int(t.Month()) - int(first.Month())
}
