// seed aprovisiona las secuencias de códigos por tipo de material y la fila
// de configuración de criticidad por defecto. El motor nunca crea contadores
// por su cuenta: un tipo sin contador aprovisionado es un error de datos.
//
// Uso: go run ./cmd/seed [typeCode...]
// Sin argumentos aprovisiona los tipos MAT y REP.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jhoicas/materiales-api/internal/domain/entity"
	"github.com/jhoicas/materiales-api/internal/infrastructure/postgres"
	"github.com/jhoicas/materiales-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	typeCodes := os.Args[1:]
	if len(typeCodes) == 0 {
		typeCodes = []string{"MAT", "REP"}
	}

	for _, tc := range typeCodes {
		_, err := pool.Exec(ctx, `
			INSERT INTO material_counters (type_code, last_value)
			VALUES ($1, 0)
			ON CONFLICT (type_code) DO NOTHING`, tc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Aprovisionar contador %s: %v\n", tc, err)
			os.Exit(1)
		}
		fmt.Printf("contador %s listo\n", tc)
	}

	settings := entity.DefaultCriticalitySettings()
	payload, err := json.Marshal(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Serializar configuración: %v\n", err)
		os.Exit(1)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO criticality_settings (id, payload, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO NOTHING`, payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Aprovisionar configuración de criticidad: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("configuración de criticidad lista")
}
